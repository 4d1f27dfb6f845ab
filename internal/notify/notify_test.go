package notify

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/autoclick/autoclick/internal/logging"
)

type sent struct {
	title, message, icon string
}

func recordingNotifier(iconPath string, err error) (*Notifier, *[]sent) {
	var calls []sent
	n := NewNotifier(iconPath, nil)
	n.send = func(title, message, icon string) error {
		calls = append(calls, sent{title, message, icon})
		return err
	}
	return n, &calls
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly10c", 10, "exactly10c"},
		{"this is a long string", 10, "this is..."},
		{"", 10, ""},
		{"abc", 3, "abc"},
		{"abcd", 3, "..."},
		{"防休眠程序运行中", 8, "防休眠程序运行中"},
		{"防休眠程序运行中", 6, "防休眠..."},
	}

	for _, tt := range tests {
		result := truncate(tt.input, tt.maxLen)
		if result != tt.expected {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, result, tt.expected)
		}
	}
}

func TestNewNotifier(t *testing.T) {
	n := NewNotifier("", nil)
	if n == nil {
		t.Fatal("NewNotifier returned nil")
	}
	if n.logger == nil || n.send == nil {
		t.Error("NewNotifier(nil logger) should install a no-op logger and a sender")
	}
}

func TestBalloonSendsTitleMessageAndIcon(t *testing.T) {
	n, calls := recordingNotifier(`C:\apps\kitty.ico`, nil)

	n.Balloon("开始工作", "防休眠模式已开启")

	if len(*calls) != 1 {
		t.Fatalf("send called %d times, want 1", len(*calls))
	}
	got := (*calls)[0]
	if got.title != "开始工作" || got.message != "防休眠模式已开启" {
		t.Errorf("sent %+v", got)
	}
	if got.icon != `C:\apps\kitty.ico` {
		t.Errorf("icon = %q, want configured path", got.icon)
	}
}

func TestBalloonLogsFailure(t *testing.T) {
	var buf bytes.Buffer
	n := NewNotifier("", logging.NewLogger(&buf))
	n.send = func(string, string, string) error { return errors.New("no notification service") }

	// Must not panic or return anything
	n.Balloon("title", "message")

	if !strings.Contains(buf.String(), "Failed to show balloon notification") {
		t.Errorf("expected warning in log, got %q", buf.String())
	}
}

func TestBalloonTruncatesLongText(t *testing.T) {
	n, calls := recordingNotifier("", nil)

	n.Balloon(strings.Repeat("t", 100), strings.Repeat("m", 300))

	got := (*calls)[0]
	if len([]rune(got.title)) != maxTitleLen {
		t.Errorf("title length = %d, want %d", len([]rune(got.title)), maxTitleLen)
	}
	if len([]rune(got.message)) != maxMessageLen {
		t.Errorf("message length = %d, want %d", len([]rune(got.message)), maxMessageLen)
	}
}
