package model

import "testing"

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"08:30", 510},
		{"23:59", 1439},
	}
	for _, c := range cases {
		got, err := ParseClock(c.in)
		if err != nil {
			t.Fatalf("ParseClock(%q) error: %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("ParseClock(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseClockInvalid(t *testing.T) {
	if _, err := ParseClock("not-a-time"); err == nil {
		t.Error("expected error for malformed clock string")
	}
}

func TestFormatClockRoundTrip(t *testing.T) {
	for _, hhmm := range []string{"00:00", "08:30", "23:59"} {
		mins, err := ParseClock(hhmm)
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", hhmm, err)
		}
		if got := FormatClock(mins); got != hhmm {
			t.Errorf("FormatClock(%d) = %q, want %q", mins, got, hhmm)
		}
	}
}

func TestOrderTotalQuantity(t *testing.T) {
	o := &Order{Items: []OrderItem{{ProductID: "P1", Quantity: 3}, {ProductID: "P2", Quantity: 2}}}
	if got := o.TotalQuantity(); got != 5 {
		t.Errorf("TotalQuantity() = %d, want 5", got)
	}
}
