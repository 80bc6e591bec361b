package quotations

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeTotals(t *testing.T) {
	cases := []struct {
		name     string
		prices   []float64
		percent  int
		subtotal float64
		discount float64
		total    float64
	}{
		{"two items", []float64{1000, 2000}, 10, 3000, 300, 2700},
		{"discount truncates", []float64{105}, 10, 105, 10, 95},
		{"truncates not rounds", []float64{99}, 10, 99, 9, 90},
		{"empty", nil, 10, 0, 0, 0},
		{"zero priced item", []float64{0, 500}, 10, 500, 50, 450},
		{"negative lowers subtotal", []float64{1000, -200}, 10, 800, 80, 720},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			services := make([]ServiceItem, 0, len(tc.prices))
			for _, p := range tc.prices {
				services = append(services, ServiceItem{Name: "svc", Price: p})
			}
			got := ComputeTotals(services, tc.percent)
			require.Equal(t, tc.subtotal, got.Subtotal)
			require.Equal(t, tc.discount, got.Discount)
			require.Equal(t, tc.total, got.Total)
			require.Equal(t, got.Subtotal-got.Discount, got.Total)
		})
	}
}

func TestCoercePrice(t *testing.T) {
	require.Equal(t, 1500.5, coercePrice(1500.5))
	require.Equal(t, float64(200), coercePrice(200))
	require.Equal(t, float64(300), coercePrice(" 300 "))
	require.Equal(t, float64(0), coercePrice("not a number"))
	require.Equal(t, float64(0), coercePrice(nil))
	require.Equal(t, float64(0), coercePrice(map[string]any{"amount": 5}))
}
