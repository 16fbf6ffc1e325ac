// Package detector fetches monitored pages and classifies changes against
// their stored snapshots.
package detector

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"webwatch_bot/internal/fetcher"
	"webwatch_bot/internal/model"
	"webwatch_bot/internal/storage"
)

const shortHashLen = 16

// Detector checks monitored URLs for content and status changes.
type Detector struct {
	fetcher *fetcher.Fetcher
	snaps   storage.SnapshotStore
	log     *slog.Logger
}

// New creates a Detector using the given fetcher and snapshot store.
func New(f *fetcher.Fetcher, snaps storage.SnapshotStore, log *slog.Logger) *Detector {
	return &Detector{
		fetcher: f,
		snaps:   snaps,
		log:     log,
	}
}

// Fingerprint returns the SHA-256 digest of body as lowercase hex.
func Fingerprint(body []byte) string {
	h := sha256.Sum256(body)
	return hex.EncodeToString(h[:])
}

// Check fetches url and compares the result against the stored snapshot.
// It returns the notification text to send, or "" when nothing changed.
// On fetch failure no state is mutated and the error is returned for the
// caller to log.
func (d *Detector) Check(ctx context.Context, url string, retain bool) (string, error) {
	body, status, err := d.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}

	hash := Fingerprint(body)
	now := time.Now().UTC()

	prev, ok := d.snaps.Get(url)
	if !ok {
		snap := model.Snapshot{Hash: hash, StatusCode: status, LastChecked: now}
		if retain {
			snap.Content = string(body)
		}
		d.put(url, snap)
		return formatFirstObservation(url, status, hash), nil
	}

	contentChanged := hash != prev.Hash
	statusChanged := status != prev.StatusCode

	if !contentChanged && !statusChanged {
		prev.LastChecked = now
		d.put(url, prev)
		return "", nil
	}

	msg := formatChange(changeReport{
		url:            url,
		at:             now,
		contentChanged: contentChanged,
		statusChanged:  statusChanged,
		oldStatus:      prev.StatusCode,
		newStatus:      status,
		oldHash:        prev.Hash,
		newHash:        hash,
		oldContent:     prev.Content,
		newContent:     string(body),
		retain:         retain,
	})

	next := model.Snapshot{
		Hash:        hash,
		StatusCode:  status,
		LastChecked: now,
		Content:     prev.Content,
	}
	if retain {
		next.Content = string(body)
	}
	d.put(url, next)

	return msg, nil
}

func (d *Detector) put(url string, snap model.Snapshot) {
	if err := d.snaps.Put(url, snap); err != nil {
		d.log.Error("save snapshot", "url", url, "error", err)
	}
}

type changeReport struct {
	url            string
	at             time.Time
	contentChanged bool
	statusChanged  bool
	oldStatus      int
	newStatus      int
	oldHash        string
	newHash        string
	oldContent     string
	newContent     string
	retain         bool
}

func formatFirstObservation(url string, status int, hash string) string {
	return fmt.Sprintf("🆕 <b>Started monitoring:</b>\n%s\n\nStatus: %d\nHash: %s...",
		html.EscapeString(url), status, shortHash(hash))
}

func formatChange(r changeReport) string {
	var b strings.Builder
	b.WriteString("🔔 <b>PAGE CHANGE DETECTED!</b>\n\n")
	fmt.Fprintf(&b, "<b>URL:</b> %s\n", html.EscapeString(r.url))
	fmt.Fprintf(&b, "<b>Time:</b> %s\n", r.at.Format("2006-01-02 15:04:05"))

	if r.statusChanged {
		fmt.Fprintf(&b, "<b>Status Code:</b> %d → %d\n", r.oldStatus, r.newStatus)
	} else {
		fmt.Fprintf(&b, "<b>Status Code:</b> %d\n", r.newStatus)
	}

	if r.contentChanged {
		fmt.Fprintf(&b, "<b>Old hash:</b> %s...\n", shortHash(r.oldHash))
		fmt.Fprintf(&b, "<b>New hash:</b> %s...\n", shortHash(r.newHash))
	}

	switch {
	case r.contentChanged && r.retain && r.oldContent != "":
		diff := truncateRunes(Diff(r.oldContent, r.newContent), maxDiffRunes)
		fmt.Fprintf(&b, "\n<b>Content Changes:</b>\n<code>%s</code>", html.EscapeString(diff))
	case r.statusChanged && !r.contentChanged:
		b.WriteString("\n<b>Note:</b> Only status code changed, content remains the same")
	}

	return b.String()
}

func shortHash(h string) string {
	if len(h) > shortHashLen {
		return h[:shortHashLen]
	}
	return h
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
