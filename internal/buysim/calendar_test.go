package buysim

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewCalendarReferenceTimeline(t *testing.T) {
	cal := NewCalendar(date(2025, time.August, 1), date(2025, time.August, 15))

	if !cal.Planning.Equal(date(2025, time.June, 5)) {
		t.Fatalf("planning: got %v", cal.Planning)
	}
	if !cal.Buy.Equal(date(2025, time.June, 15)) {
		t.Fatalf("buy: got %v", cal.Buy)
	}
	if !cal.CreativeSubmit.Equal(date(2025, time.June, 20)) {
		t.Fatalf("creative submit: got %v", cal.CreativeSubmit)
	}
	if !cal.PreFlight.Equal(date(2025, time.July, 30)) {
		t.Fatalf("pre-flight: got %v", cal.PreFlight)
	}
	if !cal.Optimization.Equal(date(2025, time.August, 8)) {
		t.Fatalf("optimization: got %v", cal.Optimization)
	}
	if !cal.Completion.Equal(date(2025, time.August, 16)) {
		t.Fatalf("completion: got %v", cal.Completion)
	}
}

func TestNewCalendarApprovalChecksFollowSubmission(t *testing.T) {
	cal := NewCalendar(date(2025, time.August, 1), date(2025, time.August, 15))

	if len(cal.ApprovalChecks) != 3 {
		t.Fatalf("expected 3 approval checks, got %d", len(cal.ApprovalChecks))
	}
	for i, check := range cal.ApprovalChecks {
		want := cal.CreativeSubmit.AddDate(0, 0, i+1)
		if !check.Equal(want) {
			t.Fatalf("check %d: want %v, got %v", i, want, check)
		}
	}
}

func TestNewCalendarMonitoringDays(t *testing.T) {
	start := date(2025, time.August, 1)
	cal := NewCalendar(start, date(2025, time.August, 15))

	want := []time.Time{
		start,
		start.AddDate(0, 0, 2),
		start.AddDate(0, 0, 5),
		start.AddDate(0, 0, 8),
	}
	if len(cal.Monitoring) != len(want) {
		t.Fatalf("expected %d monitoring days, got %d", len(want), len(cal.Monitoring))
	}
	for i := range want {
		if !cal.Monitoring[i].Equal(want[i]) {
			t.Fatalf("monitoring day %d: want %v, got %v", i, want[i], cal.Monitoring[i])
		}
	}
	for i := 1; i < len(cal.Monitoring); i++ {
		if cal.Monitoring[i].Before(cal.Monitoring[i-1]) {
			t.Fatalf("monitoring days out of order at %d", i)
		}
	}
}
