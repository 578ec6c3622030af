package ordercode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	gen := New("KH", 10)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code, err := gen.Generate()
		require.NoError(t, err)

		require.Len(t, code, 12)
		require.True(t, strings.HasPrefix(code, "KH"))
		for _, r := range code[2:] {
			require.Contains(t, alphabet, string(r))
		}
		seen[code] = struct{}{}
	}
	// 100 draws from a 36^10 space should never collide
	require.Len(t, seen, 100)
}
