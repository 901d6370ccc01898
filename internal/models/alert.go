package models

import "time"

const (
	AlertPending      = "pending"
	AlertAcknowledged = "acknowledged"
	AlertEscalated    = "escalated"
	AlertResolved     = "resolved"
)

// alertTransitions lists the statuses reachable from each alert status.
// Resolved is terminal.
var alertTransitions = map[string][]string{
	AlertPending:      {AlertAcknowledged, AlertEscalated, AlertResolved},
	AlertAcknowledged: {AlertEscalated, AlertResolved},
	AlertEscalated:    {AlertResolved},
	AlertResolved:     nil,
}

// Alert is a triage item opened against an unsafe inspection.
type Alert struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	InspectionID uint        `gorm:"not null;index" json:"inspection_id"`
	Status       string      `gorm:"not null;size:20;default:'pending';index:idx_alerts_status" json:"status"`
	Response     *string     `gorm:"size:200" json:"response"`
	CreatedAt    time.Time   `gorm:"index:idx_alerts_created_at" json:"created_at"`
	Inspection   *Inspection `gorm:"foreignKey:InspectionID;constraint:OnUpdate:CASCADE" json:"-"`
}

func ValidAlertStatus(status string) bool {
	_, ok := alertTransitions[status]
	return ok
}

// CanTransition reports whether an alert may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range alertTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses an alert in the given status may move to.
func NextStatuses(from string) []string {
	return alertTransitions[from]
}
