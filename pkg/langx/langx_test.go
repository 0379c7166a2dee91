package langx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "english",
			text: "This is a perfectly ordinary English sentence about the weather today.",
			want: "eng",
		},
		{
			name: "german",
			text: "Der schnelle braune Fuchs springt über den faulen Hund im Garten.",
			want: "deu",
		},
		{
			name: "too short",
			text: "ok",
			want: "",
		},
		{
			name: "whitespace only",
			text: "   \n\t ",
			want: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Detect(tc.text))
		})
	}
}
