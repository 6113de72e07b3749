package constants

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCandleBodyType(t *testing.T) {
	require.Equal(t, CandleBodyType(4), CandleBodyClose)
	require.Equal(t, CandleBodyType(5), CandleBodyVolume)
	require.Equal(t, CandleBodyType(6), CandleBodyNothing)

	require.Equal(t, "Volume", CandleBodyVolume.String())
	require.Equal(t, "Nothing", CandleBodyNothing.String())
	require.Equal(t, "Unknown", CandleBodyType(42).String())
}
