package command

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Command
	}{
		{
			name: "help",
			text: "/help",
			want: Command{Kind: Help, Verb: "/help"},
		},
		{
			name: "start is help",
			text: "/start",
			want: Command{Kind: Help, Verb: "/start"},
		},
		{
			name: "add with url",
			text: "/add https://example.com",
			want: Command{Kind: Add, Verb: "/add", Args: []string{"https://example.com"}},
		},
		{
			name: "verb is case insensitive",
			text: "/ADD https://example.com",
			want: Command{Kind: Add, Verb: "/add", Args: []string{"https://example.com"}},
		},
		{
			name: "remove alias",
			text: "/rm https://example.com",
			want: Command{Kind: Remove, Verb: "/rm", Args: []string{"https://example.com"}},
		},
		{
			name: "list alias",
			text: "/ls",
			want: Command{Kind: List, Verb: "/ls"},
		},
		{
			name: "interval alias with arg",
			text: "/int 600",
			want: Command{Kind: Interval, Verb: "/int", Args: []string{"600"}},
		},
		{
			name: "content alias",
			text: "/diff",
			want: Command{Kind: Content, Verb: "/diff"},
		},
		{
			name: "status",
			text: "/status",
			want: Command{Kind: Status, Verb: "/status"},
		},
		{
			name: "stop",
			text: "/stop",
			want: Command{Kind: Stop, Verb: "/stop"},
		},
		{
			name: "clear",
			text: "/clear",
			want: Command{Kind: Clear, Verb: "/clear"},
		},
		{
			name: "surrounding whitespace",
			text: "  /add   https://example.com  ",
			want: Command{Kind: Add, Verb: "/add", Args: []string{"https://example.com"}},
		},
		{
			name: "multiple args preserved",
			text: "/add https://example.com extra",
			want: Command{Kind: Add, Verb: "/add", Args: []string{"https://example.com", "extra"}},
		},
		{
			name: "unknown verb",
			text: "/bogus",
			want: Command{Kind: Unknown, Verb: "/bogus"},
		},
		{
			name: "empty input",
			text: "",
			want: Command{Kind: Unknown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.text)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
