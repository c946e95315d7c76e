package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bare object",
			in:   `{"title":"x"}`,
			want: `{"title":"x"}`,
		},
		{
			name: "code fence",
			in:   "```json\n{\"title\":\"x\"}\n```",
			want: `{"title":"x"}`,
		},
		{
			name: "fence without language tag",
			in:   "```\n[1,2,3]\n```",
			want: `[1,2,3]`,
		},
		{
			name: "leading prose",
			in:   "Here is the result you asked for:\n{\"topics\":[]}",
			want: `{"topics":[]}`,
		},
		{
			name: "trailing prose",
			in:   "[{\"id\":1}]\nLet me know if you need changes.",
			want: `[{"id":1}]`,
		},
		{
			name: "array before object picks earlier opener",
			in:   `noise [ {"a":1} ] tail`,
			want: `[ {"a":1} ]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractJSONNoPayload(t *testing.T) {
	for _, in := range []string{"", "no brackets here", "only } closing", "only { opening"} {
		_, err := ExtractJSON(in)
		assert.ErrorIs(t, err, ErrNoJSONPayload, "input: %q", in)
	}
}
