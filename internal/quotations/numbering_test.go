package quotations

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatNumber(t *testing.T) {
	require.Equal(t, "ITBIZ-QT-1001", FormatNumber(1001))
	require.Equal(t, "ITBIZ-QT-0012", FormatNumber(12))
	require.Equal(t, "ITBIZ-QT-9999", FormatNumber(9999))
	// the number widens past four digits rather than wrapping
	require.Equal(t, "ITBIZ-QT-10000", FormatNumber(10000))
}

func TestParseNumber(t *testing.T) {
	series, err := ParseNumber("ITBIZ-QT-1042")
	require.NoError(t, err)
	require.Equal(t, int64(1042), series)

	_, err = ParseNumber("QT-1042")
	require.Error(t, err)
	_, err = ParseNumber("ITBIZ-QT-abc")
	require.Error(t, err)
}

func TestNumberRoundTrip(t *testing.T) {
	for _, series := range []int64{1001, 1002, 9999, 10000, 123456} {
		parsed, err := ParseNumber(FormatNumber(series))
		require.NoError(t, err)
		require.Equal(t, series, parsed)
	}
}
