package trace

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		Function:       "function",
		InlineFunction: "inline_function",
		Exception:      "exception",
		Corrupted:      "corrupted",
		Static:         "static",
		Kind(99):       "unknown",
	}
	for k, want := range cases {
		require.Equal(t, want, k.String())
	}
}
