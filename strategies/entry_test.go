package strategies

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateRSIEntry(t *testing.T) {
	th := Thresholds{Cur: 40, P: 30, PP: 40}

	tests := []struct {
		name string
		rsi  RSITriple
		want bool
	}{
		{"dip and turn", RSITriple{PP: 35, P: 25, Cur: 32}, true},
		{"still falling", RSITriple{PP: 35, P: 25, Cur: 20}, false},
		{"p above its threshold", RSITriple{PP: 35, P: 31, Cur: 33}, false},
		{"cur above its threshold", RSITriple{PP: 35, P: 25, Cur: 41}, false},
		{"pp above its threshold", RSITriple{PP: 45, P: 25, Cur: 32}, false},
		{"flat", RSITriple{PP: 25, P: 25, Cur: 32}, false},
		{"nan", RSITriple{PP: math.NaN(), P: 25, Cur: 32}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, EvaluateRSIEntry(tc.rsi, th))
		})
	}
}

func TestEvaluateRSIShortEntry(t *testing.T) {
	th := Thresholds{Cur: 60, P: 70, PP: 60}

	tests := []struct {
		name string
		rsi  RSITriple
		want bool
	}{
		{"peak and turn", RSITriple{PP: 65, P: 75, Cur: 68}, true},
		{"still rising", RSITriple{PP: 65, P: 75, Cur: 80}, false},
		{"p below its threshold", RSITriple{PP: 65, P: 69, Cur: 66}, false},
		{"cur below its threshold", RSITriple{PP: 65, P: 75, Cur: 59}, false},
		{"nan", RSITriple{PP: 65, P: math.NaN(), Cur: 68}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, EvaluateRSIShortEntry(tc.rsi, th))
		})
	}
}

func TestSideFor(t *testing.T) {
	long, err := SideFor("long")
	require.NoError(t, err)
	require.Equal(t, "Long Signal", long.ChartTitle())

	short, err := SideFor("short")
	require.NoError(t, err)
	require.Equal(t, "Short Signal", short.ChartTitle())

	_, err = SideFor("both")
	require.ErrorIs(t, err, ErrUnknownSide)
}
