package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "json fence",
			in:   "```json\n{\"name\":\"Pothos\"}\n```",
			want: `{"name":"Pothos"}`,
		},
		{
			name: "bare fence",
			in:   "```\n{\"name\":\"Pothos\"}\n```",
			want: `{"name":"Pothos"}`,
		},
		{
			name: "fence without newline",
			in:   "```json{\"name\":\"Pothos\"}```",
			want: `{"name":"Pothos"}`,
		},
		{
			name: "surrounding whitespace",
			in:   "  \n```JSON\n  {\"a\":1}  \n```\n\n",
			want: `{"a":1}`,
		},
		{
			name: "no fence",
			in:   ` {"a":1} `,
			want: `{"a":1}`,
		},
		{
			name: "doubled fences",
			in:   "```json\n```json\n{\"a\":1}\n```\n```",
			want: `{"a":1}`,
		},
		{
			name: "only fences",
			in:   "```json\n```",
			want: "",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
		{
			name: "inner backticks kept",
			in:   "```json\n{\"description\":\"use `mist` daily\"}\n```",
			want: "{\"description\":\"use `mist` daily\"}",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CleanResponse(tc.in))
		})
	}
}

func TestCleanResponseIsIdempotent(t *testing.T) {
	inputs := []string{
		"```json\n{\"name\":\"Pothos\"}\n```",
		"``````",
		"```python\nprint(1)\n```\n```",
		"plain text",
		"```",
		"\n\n```yaml\nname: x\n```   ",
	}

	for _, in := range inputs {
		once := CleanResponse(in)
		assert.Equal(t, once, CleanResponse(once), "input %q", in)
	}
}
