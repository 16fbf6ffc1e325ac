// Package command parses and executes the control commands received from
// the configured chat.
package command

import "strings"

// Kind identifies a control command.
type Kind int

// The closed set of supported commands.
const (
	Unknown Kind = iota
	Help
	Add
	Remove
	List
	Clear
	Interval
	Content
	Status
	Stop
)

// Command is a parsed control command. Verb keeps the raw verb as typed for
// unknown-command replies.
type Command struct {
	Kind Kind
	Verb string
	Args []string
}

// Parse splits a slash-command line into a Command. The verb is the first
// whitespace-delimited token, matched case-insensitively; the remainder are
// space-separated arguments.
func Parse(text string) Command {
	parts := strings.Fields(strings.TrimSpace(text))
	if len(parts) == 0 {
		return Command{Kind: Unknown}
	}

	verb := strings.ToLower(parts[0])
	cmd := Command{Kind: Unknown, Verb: verb, Args: parts[1:]}

	switch verb {
	case "/start", "/help":
		cmd.Kind = Help
	case "/add":
		cmd.Kind = Add
	case "/remove", "/rm":
		cmd.Kind = Remove
	case "/list", "/ls":
		cmd.Kind = List
	case "/clear":
		cmd.Kind = Clear
	case "/interval", "/int":
		cmd.Kind = Interval
	case "/content", "/diff":
		cmd.Kind = Content
	case "/status":
		cmd.Kind = Status
	case "/stop":
		cmd.Kind = Stop
	}
	return cmd
}
