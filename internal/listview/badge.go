package listview

import (
	"slices"
	"strings"
)

// BadgeKind is the closed set of status badge colors.
type BadgeKind string

const (
	BadgeSuccess BadgeKind = "success"
	BadgeWarning BadgeKind = "warning"
	BadgeError   BadgeKind = "error"
	BadgeNeutral BadgeKind = "neutral"
)

// Badge is a derived classification rendered next to a record.
type Badge struct {
	Kind  BadgeKind `json:"kind"`
	Label string    `json:"label"`
}

// UnknownBadge is returned for any status a table does not recognize.
var UnknownBadge = Badge{Kind: BadgeNeutral, Label: "Unknown"}

// StatusTable maps raw status strings to badges.
type StatusTable struct {
	badges map[string]Badge
}

// NewStatusTable builds a table from status to badge. Keys match case-insensitively.
func NewStatusTable(entries map[string]Badge) StatusTable {
	badges := make(map[string]Badge, len(entries))
	for status, b := range entries {
		badges[normalizeStatus(status)] = b
	}
	return StatusTable{badges: badges}
}

// Classify returns the badge for status, falling back to UnknownBadge.
func (t StatusTable) Classify(status string) Badge {
	if b, ok := t.badges[normalizeStatus(status)]; ok {
		return b
	}
	return UnknownBadge
}

// Statuses returns the recognized statuses in sorted order.
func (t StatusTable) Statuses() []string {
	out := make([]string, 0, len(t.badges))
	for s := range t.badges {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

func normalizeStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// DefaultStatuses is the vehicle lifecycle table shared across the dashboard.
var DefaultStatuses = NewStatusTable(map[string]Badge{
	"active":      {Kind: BadgeSuccess, Label: "Active"},
	"maintenance": {Kind: BadgeWarning, Label: "Maintenance"},
	"inactive":    {Kind: BadgeError, Label: "Inactive"},
})

// ClassifyStatus maps a raw status to a badge kind using DefaultStatuses.
// Unrecognized values are neutral.
func ClassifyStatus(status string) BadgeKind {
	return DefaultStatuses.Classify(status).Kind
}
