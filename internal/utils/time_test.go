package utils

import (
	"testing"
	"time"
)

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		from, to string
		want     int
	}{
		{"2024-01-01", "2024-01-01", 0},
		{"2024-01-01", "2024-01-02", 1},
		{"2024-01-01", "2024-01-03", 2},
		{"2024-01-03", "2024-01-01", -2},
		{"2024-02-28", "2024-03-01", 2},
		{"2023-12-31", "2024-01-01", 1},
	}
	for _, tt := range tests {
		got, err := DaysBetween(tt.from, tt.to)
		if err != nil {
			t.Fatalf("DaysBetween(%s, %s): %v", tt.from, tt.to, err)
		}
		if got != tt.want {
			t.Errorf("DaysBetween(%s, %s) = %d, want %d", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestDaysBetweenInvalid(t *testing.T) {
	if _, err := DaysBetween("2024-13-01", "2024-01-01"); err == nil {
		t.Fatal("expected error for invalid month")
	}
	if _, err := DaysBetween("2024-01-01", "yesterday"); err == nil {
		t.Fatal("expected error for non-date")
	}
}

func TestDateIn(t *testing.T) {
	ts := time.Date(2024, 5, 1, 23, 30, 0, 0, time.UTC)
	if got := DateIn(ts, nil); got != "2024-05-01" {
		t.Fatalf("UTC date = %s", got)
	}
	tokyo := time.FixedZone("JST", 9*3600)
	if got := DateIn(ts, tokyo); got != "2024-05-02" {
		t.Fatalf("JST date = %s", got)
	}
}

func TestDateRange(t *testing.T) {
	days, err := DateRange("2024-01-30", "2024-02-02")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2024-01-30", "2024-01-31", "2024-02-01", "2024-02-02"}
	if len(days) != len(want) {
		t.Fatalf("got %v", days)
	}
	for i := range want {
		if days[i] != want[i] {
			t.Fatalf("day %d = %s, want %s", i, days[i], want[i])
		}
	}

	empty, err := DateRange("2024-02-02", "2024-01-30")
	if err != nil || empty != nil {
		t.Fatalf("reversed range: %v, %v", empty, err)
	}
}

func TestLoadLocationFallback(t *testing.T) {
	if loc := LoadLocation("", time.UTC); loc != time.UTC {
		t.Fatalf("empty name should fall back, got %v", loc)
	}
	if loc := LoadLocation("Not/AZone", time.UTC); loc != time.UTC {
		t.Fatalf("unknown zone should fall back, got %v", loc)
	}
}

func TestTimeToMinutes(t *testing.T) {
	m, err := TimeToMinutes("08:30")
	if err != nil || m != 510 {
		t.Fatalf("TimeToMinutes(08:30) = %d, %v", m, err)
	}
	if _, err := TimeToMinutes("25:00"); err == nil {
		t.Fatal("expected error for 25:00")
	}
}
