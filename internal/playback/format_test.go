package playback

import (
	"testing"
	"time"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00"},
		{ms(600), "0:00"},
		{ms(999), "0:00"},
		{ms(1000), "0:01"},
		{ms(9999), "0:09"},
		{ms(59999), "0:59"},
		{ms(60000), "1:00"},
		{ms(65000), "1:05"},
		{ms(600000), "10:00"},
		{ms(3725000), "62:05"},
	}

	for _, tt := range tests {
		got := FormatTime(tt.in)
		if got != tt.want {
			t.Errorf("FormatTime(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
