// ABOUTME: Tests for shared CLI styles
// ABOUTME: Verifies bar geometry and status glyph selection

package styles

import (
	"strings"
	"testing"
)

func TestRateBar_Width(t *testing.T) {
	tests := []struct {
		percent float64
		filled  int
	}{
		{0, 0},
		{50, 5},
		{100, 10},
		{150, 10},
		{-10, 0},
	}

	for _, tt := range tests {
		bar := RateBar(tt.percent, 10)
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("RateBar(%v): expected %d filled, got %d", tt.percent, tt.filled, got)
		}
		if got := strings.Count(bar, "█") + strings.Count(bar, "░"); got != 10 {
			t.Errorf("RateBar(%v): expected width 10, got %d", tt.percent, got)
		}
	}
}

func TestStatusText_ContainsIconAndText(t *testing.T) {
	out := StatusText("Delivery rate is low", LevelCritical)
	if !strings.Contains(out, "✗") {
		t.Error("Expected critical icon")
	}
	if !strings.Contains(out, "Delivery rate is low") {
		t.Error("Expected message text")
	}
}

func TestSigned_KeepsText(t *testing.T) {
	for _, v := range []float64{-1, 0, 1} {
		if out := Signed(v, "1,234"); !strings.Contains(out, "1,234") {
			t.Errorf("Signed(%v): expected text preserved, got %q", v, out)
		}
	}
}
