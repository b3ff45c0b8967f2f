package instrument

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlainVanillaPayoff(t *testing.T) {
	call := NewPlainVanilla(Call, 100)
	put := NewPlainVanilla(Put, 100)

	tests := []struct {
		name     string
		spot     float64
		wantCall float64
		wantPut  float64
	}{
		{"ITM call", 120, 20, 0},
		{"ATM", 100, 0, 0},
		{"ITM put", 80, 0, 20},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.wantCall, call.Value(test.spot))
			require.Equal(t, test.wantPut, put.Value(test.spot))
		})
	}
}

func TestAsianPayoffsApplyToAverage(t *testing.T) {
	arith := NewArithmeticAsian(Call, 100)
	geo := NewGeometricAsian(Put, 100)

	require.Equal(t, 5.0, arith.Value(105))
	require.Equal(t, 0.0, arith.Value(95))
	require.Equal(t, 5.0, geo.Value(95))
	require.Equal(t, 0.0, geo.Value(105))
}
