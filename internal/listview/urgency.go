package listview

import (
	"fmt"
	"math"
	"time"
)

// Urgency classifies how close a target date is.
type Urgency string

const (
	UrgencyOverdue    Urgency = "overdue"
	UrgencyDueSoon    Urgency = "due_soon"
	UrgencyOnSchedule Urgency = "on_schedule"
	// UrgencyUnknown is reported when the target date is missing or unparseable.
	UrgencyUnknown Urgency = "unknown"
)

// DueSoonDays is the last day count still considered due soon.
const DueSoonDays = 7

// Label is the display text of the urgency.
func (u Urgency) Label() string {
	switch u {
	case UrgencyOverdue:
		return "Overdue"
	case UrgencyDueSoon:
		return "Due Soon"
	case UrgencyOnSchedule:
		return "On Schedule"
	default:
		return "Unknown"
	}
}

// Badge renders the urgency as a status badge.
func (u Urgency) Badge() Badge {
	switch u {
	case UrgencyOverdue:
		return Badge{Kind: BadgeError, Label: u.Label()}
	case UrgencyDueSoon:
		return Badge{Kind: BadgeWarning, Label: u.Label()}
	case UrgencyOnSchedule:
		return Badge{Kind: BadgeSuccess, Label: u.Label()}
	default:
		return Badge{Kind: BadgeNeutral, Label: u.Label()}
	}
}

// DaysRemaining returns ceil((target - now) / 24h).
func DaysRemaining(target, now time.Time) int {
	days := math.Ceil(float64(target.Sub(now)) / float64(24*time.Hour))
	return int(days)
}

// ClassifyUrgency classifies target relative to now.
func ClassifyUrgency(target, now time.Time) Urgency {
	return urgencyForDays(DaysRemaining(target, now))
}

// ClassifyUrgencyString parses raw and classifies it, returning UrgencyUnknown
// when raw is not a date.
func ClassifyUrgencyString(raw string, now time.Time) Urgency {
	target, ok := ParseDate(raw)
	if !ok {
		return UrgencyUnknown
	}
	return ClassifyUrgency(target, now)
}

func urgencyForDays(days int) Urgency {
	switch {
	case days < 0:
		return UrgencyOverdue
	case days <= DueSoonDays:
		return UrgencyDueSoon
	default:
		return UrgencyOnSchedule
	}
}

// DueLabel describes a day count the way the schedule card shows it.
func DueLabel(days int) string {
	switch {
	case days < 0:
		return "Overdue"
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	default:
		return fmt.Sprintf("In %d days", days)
	}
}
