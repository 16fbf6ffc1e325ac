package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    *Config
		wantErr bool
	}{
		{
			name:    "missing token",
			env:     map[string]string{"TELEGRAM_CHAT_ID": "42"},
			wantErr: true,
		},
		{
			name:    "missing chat id",
			env:     map[string]string{"TELEGRAM_BOT_TOKEN": "token"},
			wantErr: true,
		},
		{
			name: "non-numeric chat id",
			env: map[string]string{
				"TELEGRAM_BOT_TOKEN": "token",
				"TELEGRAM_CHAT_ID":   "not-a-number",
			},
			wantErr: true,
		},
		{
			name: "defaults applied",
			env: map[string]string{
				"TELEGRAM_BOT_TOKEN": "token",
				"TELEGRAM_CHAT_ID":   "42",
			},
			want: &Config{
				TelegramBotToken: "token",
				ChatID:           42,
				ConfigPath:       "./data/monitor_config.json",
				SnapshotsPath:    "./data/page_snapshots.json",
				LogLevel:         "info",
			},
		},
		{
			name: "overrides respected",
			env: map[string]string{
				"TELEGRAM_BOT_TOKEN": "token",
				"TELEGRAM_CHAT_ID":   "-100123",
				"CONFIG_PATH":        "/tmp/cfg.json",
				"SNAPSHOTS_PATH":     "/tmp/snaps.json",
				"LOG_LEVEL":          "debug",
			},
			want: &Config{
				TelegramBotToken: "token",
				ChatID:           -100123,
				ConfigPath:       "/tmp/cfg.json",
				SnapshotsPath:    "/tmp/snaps.json",
				LogLevel:         "debug",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "CONFIG_PATH", "SNAPSHOTS_PATH", "LOG_LEVEL"} {
				t.Setenv(key, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			got, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
