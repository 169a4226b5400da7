package render

import (
	"strings"
	"testing"
)

func TestToText(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain sentence is unchanged",
			in:   `This is a simulated response from Cohere for the prompt: "hello"`,
			want: `This is a simulated response from Cohere for the prompt: "hello"`,
		},
		{
			name: "empty stays empty",
			in:   "",
			want: "",
		},
		{
			name: "inline markup is dropped",
			in:   "Use **bold** and `code` and [links](https://example.com).",
			want: "Use bold and code and links.",
		},
		{
			name: "paragraphs are separated by a blank line",
			in:   "# Title\n\nFirst paragraph.\n\nSecond paragraph.",
			want: "Title\n\nFirst paragraph.\n\nSecond paragraph.",
		},
		{
			name: "list items are bulleted",
			in:   "Options:\n\n- one\n- two",
			want: "Options:\n\n" + Bullet + "one\n" + Bullet + "two",
		},
		{
			name: "code blocks are indented",
			in:   "Example:\n\n```go\nfmt.Println(1)\n```",
			want: "Example:\n\n    fmt.Println(1)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ToText(tt.in); got != tt.want {
				t.Errorf("ToText(%q)\n got: %q\nwant: %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToText_NestedList(t *testing.T) {
	t.Parallel()
	got := ToText("- outer\n  - inner")
	if !strings.Contains(got, Bullet+"outer") || !strings.Contains(got, "  "+Bullet+"inner") {
		t.Errorf("nested list not rendered: %q", got)
	}
}
