// Package monitor runs the single-threaded control loop that interleaves
// URL sweeps with inbound command processing.
package monitor

import (
	"context"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"webwatch_bot/internal/command"
	"webwatch_bot/internal/detector"
	"webwatch_bot/internal/storage"
)

// Notifier sends notification texts to the configured chat.
type Notifier interface {
	Notify(text string)
}

// Receiver polls inbound updates after a cursor.
type Receiver interface {
	Poll(cursor int) ([]tgbotapi.Update, error)
}

// RunState is the control loop's mutable runtime state. It is owned by the
// Monitor and shared with the command interpreter by reference; nothing is
// persisted, so the update cursor resets to zero on restart.
type RunState struct {
	running      bool
	lastUpdateID int
}

// Running reports whether the loop should keep going.
func (r *RunState) Running() bool { return r.running }

// RequestStop asks the loop to exit at the next boundary.
func (r *RunState) RequestStop() { r.running = false }

// Cursor returns the highest update ID seen so far.
func (r *RunState) Cursor() int { return r.lastUpdateID }

// Monitor is the control loop tying together the change detector, the
// command interpreter, and the Telegram transport. All state is touched from
// the single goroutine running Run.
type Monitor struct {
	cfg      storage.ConfigStore
	detector *detector.Detector
	interp   *command.Interpreter
	notifier Notifier
	receiver Receiver
	chatID   int64
	run      RunState
	log      *slog.Logger

	idleWait  time.Duration // wait window when no URLs are configured
	pollPause time.Duration // pause between poll iterations
}

// New creates a Monitor. chatID is the only identity whose commands are
// honored.
func New(cfg storage.ConfigStore, det *detector.Detector, notifier Notifier, receiver Receiver, chatID int64, log *slog.Logger) *Monitor {
	m := &Monitor{
		cfg:       cfg,
		detector:  det,
		notifier:  notifier,
		receiver:  receiver,
		chatID:    chatID,
		log:       log,
		idleWait:  60 * time.Second,
		pollPause: time.Second,
	}
	m.interp = command.NewInterpreter(cfg, &m.run, log)
	return m
}

// State returns the loop's runtime state.
func (m *Monitor) State() *RunState { return &m.run }

// Run starts the control loop and blocks until the /stop command or ctx
// cancellation. A "started" notification is sent on entry and a "stopped"
// one, best-effort, on exit.
func (m *Monitor) Run(ctx context.Context) {
	m.run.running = true

	cfg := m.cfg.Current()
	m.log.Info("monitor started",
		"urls", len(cfg.URLs),
		"interval_seconds", cfg.Interval,
		"store_content", cfg.StoreContent,
	)
	m.notifier.Notify("🟢 <b>Webpage Monitor Started</b>\n\n" + m.interp.StatusText())

	for m.run.running && ctx.Err() == nil {
		m.sweep(ctx)
		m.waitAndPoll(ctx)
	}

	m.run.running = false
	m.notifier.Notify("🔴 <b>Webpage Monitor Stopped</b>")
	m.log.Info("monitor stopped")
}

// sweep checks every configured URL in order, aborting early when a stop was
// requested. A failed check is logged and does not stop the sweep.
func (m *Monitor) sweep(ctx context.Context) {
	cfg := m.cfg.Current()
	for _, url := range cfg.URLs {
		if !m.run.running || ctx.Err() != nil {
			return
		}
		m.log.Debug("checking url", "url", url)

		note, err := m.detector.Check(ctx, url, cfg.StoreContent)
		if err != nil {
			m.log.Error("check url", "url", url, "error", err)
			continue
		}
		if note != "" {
			m.notifier.Notify(note)
		}
	}
}

// waitAndPoll drains inbound commands until the next sweep is due. With an
// empty URL set it still polls on the idle cadence so commands keep working.
func (m *Monitor) waitAndPoll(ctx context.Context) {
	cfg := m.cfg.Current()
	wait := time.Duration(cfg.Interval) * time.Second
	if len(cfg.URLs) == 0 {
		wait = m.idleWait
	}
	deadline := time.Now().Add(wait)

	for m.run.running && ctx.Err() == nil && time.Now().Before(deadline) {
		m.drainUpdates(ctx)
		if !m.run.running {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(m.pollPause):
		}
	}
}

// drainUpdates fetches pending updates and dispatches authorized commands.
// The cursor advances past every update seen, authorized or not, so nothing
// is redelivered.
func (m *Monitor) drainUpdates(ctx context.Context) {
	updates, err := m.receiver.Poll(m.run.lastUpdateID)
	if err != nil {
		m.log.Error("poll updates", "error", err)
		return
	}

	for _, u := range updates {
		if ctx.Err() != nil {
			return
		}
		if u.UpdateID > m.run.lastUpdateID {
			m.run.lastUpdateID = u.UpdateID
		}

		// Commands may arrive as direct messages or channel posts.
		msg := u.Message
		if msg == nil {
			msg = u.ChannelPost
		}
		if msg == nil || msg.Chat == nil {
			continue
		}
		if msg.Chat.ID != m.chatID {
			m.log.Debug("ignoring message from unauthorized chat", "chat_id", msg.Chat.ID)
			continue
		}

		text := strings.TrimSpace(msg.Text)
		if !strings.HasPrefix(text, "/") {
			continue
		}

		m.log.Debug("command received", "text", text)
		if reply := m.interp.Execute(command.Parse(text)); reply != "" {
			m.notifier.Notify(reply)
		}
	}
}
