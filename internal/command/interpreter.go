package command

import (
	"fmt"
	"html"
	"log/slog"
	"strconv"
	"strings"

	"webwatch_bot/internal/model"
	"webwatch_bot/internal/storage"
)

const helpText = `🦅 <b>Webpage Monitor Commands</b>

<b>URL Management:</b>
• <code>/add &lt;url&gt;</code> - Add URL to monitor
• <code>/remove &lt;url&gt;</code> or <code>/rm &lt;url&gt;</code> - Remove URL
• <code>/list</code> or <code>/ls</code> - List monitored URLs
• <code>/clear</code> - Clear all URLs

<b>Settings:</b>
• <code>/interval &lt;seconds&gt;</code> - Set check interval (min 30s)
• <code>/content</code> or <code>/diff</code> - Toggle content storage for diffs
• <code>/status</code> - Show current status and settings

<b>Control:</b>
• <code>/stop</code> - Stop monitoring
• <code>/help</code> - Show this help

<b>Example:</b>
<code>/add https://example.com</code>
<code>/interval 600</code> (10 minutes)`

// Runtime exposes the control loop state the interpreter can read and flip.
type Runtime interface {
	Running() bool
	RequestStop()
}

// Interpreter executes parsed commands against the config store and the
// control loop's runtime state, producing a reply for the chat. Every
// command yields a reply; malformed input gets a usage hint, never a crash.
type Interpreter struct {
	cfg storage.ConfigStore
	run Runtime
	log *slog.Logger
}

// NewInterpreter creates an Interpreter.
func NewInterpreter(cfg storage.ConfigStore, run Runtime, log *slog.Logger) *Interpreter {
	return &Interpreter{cfg: cfg, run: run, log: log}
}

// Execute runs cmd and returns the reply text to send back to the chat.
func (in *Interpreter) Execute(cmd Command) string {
	switch cmd.Kind {
	case Help:
		return helpText
	case Add:
		return in.handleAdd(cmd.Args)
	case Remove:
		return in.handleRemove(cmd.Args)
	case List:
		return in.handleList()
	case Clear:
		return in.handleClear()
	case Interval:
		return in.handleInterval(cmd.Args)
	case Content:
		return in.handleContent()
	case Status:
		return in.StatusText()
	case Stop:
		return in.handleStop()
	default:
		return fmt.Sprintf("❌ Unknown command: %s\n\n%s", html.EscapeString(cmd.Verb), helpText)
	}
}

func (in *Interpreter) handleAdd(args []string) string {
	if len(args) == 0 {
		return "❌ Please provide a URL to add\n\nExample: <code>/add https://example.com</code>"
	}

	url := args[0]
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "❌ URL must start with http:// or https://"
	}

	added, err := in.cfg.AddURL(url)
	in.logPersist(err)
	if !added {
		return "⚠️ URL already being monitored:\n" + html.EscapeString(url)
	}
	return "✅ Added URL to monitor:\n" + html.EscapeString(url)
}

func (in *Interpreter) handleRemove(args []string) string {
	if len(args) == 0 {
		return "❌ Please provide a URL to remove\n\nExample: <code>/remove https://example.com</code>"
	}

	url := args[0]
	removed, err := in.cfg.RemoveURL(url)
	in.logPersist(err)
	if !removed {
		return "❌ URL not found in monitoring list:\n" + html.EscapeString(url)
	}
	return "✅ Removed URL from monitoring:\n" + html.EscapeString(url)
}

func (in *Interpreter) handleList() string {
	cfg := in.cfg.Current()
	if len(cfg.URLs) == 0 {
		return "📝 No URLs currently being monitored\n\nUse <code>/add &lt;url&gt;</code> to add some!"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 <b>Monitored URLs (%d):</b>", len(cfg.URLs))
	for _, u := range cfg.URLs {
		b.WriteString("\n• ")
		b.WriteString(html.EscapeString(u))
	}
	return b.String()
}

func (in *Interpreter) handleClear() string {
	count, err := in.cfg.Clear()
	in.logPersist(err)
	return fmt.Sprintf("🗑️ Cleared all URLs from monitoring (%d removed)", count)
}

func (in *Interpreter) handleInterval(args []string) string {
	if len(args) == 0 {
		cfg := in.cfg.Current()
		return fmt.Sprintf("⚙️ Current check interval: %d seconds (%d minutes)\n\nUse <code>/interval &lt;seconds&gt;</code> to change",
			cfg.Interval, cfg.Interval/60)
	}

	seconds, err := strconv.Atoi(args[0])
	if err != nil {
		return "❌ Please provide a valid number of seconds"
	}
	if seconds < model.MinInterval {
		return fmt.Sprintf("❌ Interval must be at least %d seconds", model.MinInterval)
	}

	applied, err := in.cfg.SetInterval(seconds)
	in.logPersist(err)
	return fmt.Sprintf("✅ Check interval set to %d seconds (%d minutes)", applied, applied/60)
}

func (in *Interpreter) handleContent() string {
	enabled, err := in.cfg.ToggleContentRetention()
	in.logPersist(err)
	if enabled {
		return "📄 Content storage for diffs: ENABLED\n\n✅ Will show detailed changes in notifications"
	}
	return "📄 Content storage for diffs: DISABLED\n\nℹ️ Will only show hash changes"
}

// StatusText renders the current monitor status. It is also embedded in the
// startup notification.
func (in *Interpreter) StatusText() string {
	cfg := in.cfg.Current()

	running := "🔴 STOPPED"
	if in.run.Running() {
		running = "🟢 ACTIVE"
	}
	retention := "❌ Disabled"
	if cfg.StoreContent {
		retention = "✅ Enabled"
	}
	lastUpdated := "never"
	if !cfg.LastUpdated.IsZero() {
		lastUpdated = cfg.LastUpdated.Format("2006-01-02 15:04:05")
	}

	var b strings.Builder
	b.WriteString("📊 <b>Webpage Monitor Status</b>\n\n")
	fmt.Fprintf(&b, "<b>Monitoring:</b> %s\n", running)
	fmt.Fprintf(&b, "<b>URLs:</b> %d\n", len(cfg.URLs))
	fmt.Fprintf(&b, "<b>Check Interval:</b> %ds (%dmin)\n", cfg.Interval, cfg.Interval/60)
	fmt.Fprintf(&b, "<b>Content Storage:</b> %s\n", retention)
	fmt.Fprintf(&b, "<b>Last Config Update:</b> %s\n", lastUpdated)
	b.WriteString("\n")
	if len(cfg.URLs) == 0 {
		b.WriteString("<b>URLs:</b> None")
	} else {
		b.WriteString(in.handleList())
	}
	return b.String()
}

func (in *Interpreter) handleStop() string {
	in.run.RequestStop()
	return "🛑 Monitoring stopped. Restart the process to resume."
}

// logPersist reports a failed config save. The in-memory mutation stands and
// the user still gets the normal reply; losing one save is preferable to
// rejecting the command.
func (in *Interpreter) logPersist(err error) {
	if err != nil {
		in.log.Error("persist config", "error", err)
	}
}
