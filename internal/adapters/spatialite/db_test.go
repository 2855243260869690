package spatialite

import "testing"

func TestConfigDSN(t *testing.T) {
	cfg := Config{Path: "/var/lib/puntu/puntu.db", BusyTimeout: 5}

	want := "file:/var/lib/puntu/puntu.db?_busy_timeout=5000&_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestConfigDSNRelativePath(t *testing.T) {
	cfg := Config{Path: "./data/puntu.db", BusyTimeout: 30}

	got := cfg.DSN()
	if got != "file:./data/puntu.db?_busy_timeout=30000&_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on" {
		t.Errorf("unexpected DSN: %q", got)
	}
}
