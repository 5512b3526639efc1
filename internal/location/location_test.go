package location

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToInt(t *testing.T) {
	v, ok := toInt(int64(-4))
	require.True(t, ok)
	require.Equal(t, int64(-4), v)

	v, ok = toInt(uint64(12))
	require.True(t, ok)
	require.Equal(t, int64(12), v)

	_, ok = toInt("nope")
	require.False(t, ok)
}
