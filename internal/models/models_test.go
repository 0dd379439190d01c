package models

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestReportExpiry(t *testing.T) {
	tests := []struct {
		name string
		sent time.Time
		want time.Time
	}{
		{"mid-month", date(2025, time.March, 15), date(2025, time.September, 15)},
		{"year rollover", date(2025, time.October, 1), date(2026, time.April, 1)},
		{"aug 31 clamps to feb 28", date(2025, time.August, 31), date(2026, time.February, 28)},
		{"aug 31 clamps to feb 29 in leap year", date(2023, time.August, 31), date(2024, time.February, 29)},
		{"oct 31 clamps to apr 30", date(2025, time.October, 31), date(2026, time.April, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReportExpiry(tt.sent)
			if !got.Equal(tt.want) {
				t.Errorf("ReportExpiry(%v) = %v, want %v", tt.sent, got, tt.want)
			}
		})
	}
}

func TestReportExpiryKeepsClock(t *testing.T) {
	sent := time.Date(2025, time.January, 10, 14, 30, 45, 0, time.UTC)
	got := ReportExpiry(sent)
	want := time.Date(2025, time.July, 10, 14, 30, 45, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ReportExpiry(%v) = %v, want %v", sent, got, want)
	}
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusInProgress, true},
		{StatusPending, StatusCompleted, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusPending, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusInProgress, false},
		{StatusCompleted, StatusCompleted, false},
		{StatusPending, StatusPending, false},
		{StatusPending, Status("bogus"), false},
		{Status("bogus"), StatusCompleted, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("CanTransitionTo(%q -> %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestStatusDisplay(t *testing.T) {
	if d := StatusCompleted.Display(); d.Dimmed {
		t.Error("completed badge should not be dimmed")
	}
	if d := StatusPending.Display(); !d.Dimmed {
		t.Error("pending badge should be dimmed")
	}
	if d := StatusInProgress.Display(); !d.Dimmed {
		t.Error("inProgress badge should be dimmed")
	}

	// Unknown statuses must still render something
	if d := Status("typo").Display(); d.Label == "" {
		t.Error("unknown status should fall back to a styled badge")
	}
}

func TestNeedsReconciliation(t *testing.T) {
	now := time.Now()

	stale := EvaluationResult{Status: StatusPending, CompletionDate: &now}
	if !stale.NeedsReconciliation() {
		t.Error("pending record with completion date should need reconciliation")
	}

	pending := EvaluationResult{Status: StatusPending}
	if pending.NeedsReconciliation() {
		t.Error("pending record without completion date should not need reconciliation")
	}

	completed := EvaluationResult{Status: StatusCompleted, CompletionDate: &now}
	if completed.NeedsReconciliation() {
		t.Error("completed record should not need reconciliation")
	}
}

func TestDerive(t *testing.T) {
	sent := date(2025, time.August, 31)
	r := EvaluationResult{SentDate: sent}
	r.Derive()
	if !r.ReportExpiryDate.Equal(date(2026, time.February, 28)) {
		t.Errorf("Derive set ReportExpiryDate = %v", r.ReportExpiryDate)
	}
}

func TestAllSections(t *testing.T) {
	opts := AllSections()
	if !opts.GeneralEvaluation || !opts.Strengths || !opts.InterviewQuestions ||
		!opts.WhyTheseQuestions || !opts.DevelopmentSuggestions {
		t.Error("AllSections should enable every flag")
	}
}
