package document

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateProducesPDF(t *testing.T) {
	gen := NewGenerator(DefaultCompany, "", nil)

	out, name, err := gen.Generate(context.Background(), sampleData())
	require.NoError(t, err)
	require.Equal(t, "ITBIZ-QT-1001.pdf", name)
	require.NotEmpty(t, out)
	require.Equal(t, "%PDF-", string(out[:5]))
}

func TestGenerateAbortsOnCancel(t *testing.T) {
	gen := NewGenerator(DefaultCompany, "", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := gen.Generate(ctx, sampleData())
	require.ErrorIs(t, err, context.Canceled)
}

func TestFileNameFallback(t *testing.T) {
	require.Equal(t, "quotation.pdf", Data{}.FileName())
}
