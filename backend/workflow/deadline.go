package workflow

import "time"

// Severity drives alert banners and badge colouring.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
	SeverityNeutral  Severity = "neutral"
)

// Thresholds shared by every badge and header.
const (
	WarningWithinDays = 5
	InfoWithinDays    = 7
)

// ClassifyDeadline maps days remaining (negative when overdue) to a severity.
func ClassifyDeadline(daysRemaining int) Severity {
	switch {
	case daysRemaining <= 0:
		return SeverityCritical
	case daysRemaining <= WarningWithinDays:
		return SeverityWarning
	case daysRemaining <= InfoWithinDays:
		return SeverityInfo
	default:
		return SeverityNeutral
	}
}

// DeadlineLabel is the badge text for the same table.
func DeadlineLabel(daysRemaining int) string {
	switch {
	case daysRemaining < 0:
		return "Vencido"
	case daysRemaining == 0:
		return "Vence hoy"
	case daysRemaining <= WarningWithinDays:
		return "Por vencer"
	case daysRemaining <= InfoWithinDays:
		return "Próximo a vencer"
	default:
		return "En plazo"
	}
}

// DaysRemaining counts calendar days from now until deadline, evaluated in
// the deadline's location. It is negative once the deadline has passed.
func DaysRemaining(deadline, now time.Time) int {
	loc := deadline.Location()
	dy, dm, dd := deadline.Date()
	ny, nm, nd := now.In(loc).Date()
	d := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	n := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return int((d.Unix() - n.Unix()) / 86400)
}

// DeadlineStatus bundles the derived deadline fields of a record.
type DeadlineStatus struct {
	DaysRemaining int      `json:"days_remaining"`
	Severity      Severity `json:"severity"`
	Label         string   `json:"label"`
}

// EvaluateDeadline derives the deadline fields for a due date.
func EvaluateDeadline(deadline, now time.Time) DeadlineStatus {
	days := DaysRemaining(deadline, now)
	return DeadlineStatus{
		DaysRemaining: days,
		Severity:      ClassifyDeadline(days),
		Label:         DeadlineLabel(days),
	}
}
