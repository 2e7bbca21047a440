package workflow

import (
	"testing"
	"time"
)

func TestClassifyDeadline(t *testing.T) {
	tests := []struct {
		days     int
		expected Severity
		label    string
	}{
		{-30, SeverityCritical, "Vencido"},
		{-1, SeverityCritical, "Vencido"},
		{0, SeverityCritical, "Vence hoy"},
		{1, SeverityWarning, "Por vencer"},
		{3, SeverityWarning, "Por vencer"},
		{5, SeverityWarning, "Por vencer"},
		{6, SeverityInfo, "Próximo a vencer"},
		{7, SeverityInfo, "Próximo a vencer"},
		{8, SeverityNeutral, "En plazo"},
		{30, SeverityNeutral, "En plazo"},
	}

	for _, tt := range tests {
		got := ClassifyDeadline(tt.days)
		if got != tt.expected {
			t.Errorf("ClassifyDeadline(%d): expected %s, got %s", tt.days, tt.expected, got)
		}
		if again := ClassifyDeadline(tt.days); again != got {
			t.Errorf("ClassifyDeadline(%d) not idempotent: %s then %s", tt.days, got, again)
		}
		if label := DeadlineLabel(tt.days); label != tt.label {
			t.Errorf("DeadlineLabel(%d): expected '%s', got '%s'", tt.days, tt.label, label)
		}
	}
}

func TestDaysRemaining(t *testing.T) {
	loc := time.FixedZone("CLT", -3*60*60)
	now := time.Date(2024, 3, 10, 23, 30, 0, 0, loc)

	tests := []struct {
		name     string
		deadline time.Time
		expected int
	}{
		{"same day", time.Date(2024, 3, 10, 8, 0, 0, 0, loc), 0},
		{"tomorrow", time.Date(2024, 3, 11, 0, 5, 0, 0, loc), 1},
		{"overdue", time.Date(2024, 3, 7, 18, 0, 0, 0, loc), -3},
		{"month boundary", time.Date(2024, 4, 1, 12, 0, 0, 0, loc), 22},
		{"four centuries ahead", time.Date(2424, 3, 10, 12, 0, 0, 0, loc), 146097},
		{"four centuries ago", time.Date(1624, 3, 10, 12, 0, 0, 0, loc), -146097},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DaysRemaining(tt.deadline, now)
			if got != tt.expected {
				t.Errorf("Expected %d days, got %d", tt.expected, got)
			}
		})
	}
}

func TestDaysRemainingUsesDeadlineLocation(t *testing.T) {
	loc := time.FixedZone("CLT", -3*60*60)
	deadline := time.Date(2024, 3, 11, 10, 0, 0, 0, loc)
	// 01:00 UTC on the 11th is still the 10th in CLT.
	now := time.Date(2024, 3, 11, 1, 0, 0, 0, time.UTC)

	if got := DaysRemaining(deadline, now); got != 1 {
		t.Errorf("Expected 1 day, got %d", got)
	}
}

func TestEvaluateDeadline(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	status := EvaluateDeadline(now.AddDate(0, 0, 3), now)

	if status.DaysRemaining != 3 {
		t.Errorf("Expected 3 days, got %d", status.DaysRemaining)
	}
	if status.Severity != SeverityWarning {
		t.Errorf("Expected warning, got %s", status.Severity)
	}
	if status.Label != "Por vencer" {
		t.Errorf("Expected 'Por vencer', got '%s'", status.Label)
	}
}
