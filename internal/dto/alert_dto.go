package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/models"
)

// AlertRow is an alert flattened together with the inspection it was
// opened against, produced by a single joined query.
type AlertRow struct {
	AlertID          uint      `json:"alert_id"`
	InspectionID     uint      `json:"inspection_id"`
	Status           string    `json:"status"`
	Response         *string   `json:"response"`
	CreatedAt        time.Time `json:"created_at"`
	Plate            *string   `json:"plate"`
	Location         string    `json:"location"`
	Camera           *string   `json:"camera"`
	InspectionStatus string    `json:"inspection_status"`
	Confidence       int       `json:"confidence"`
	Defects          *string   `json:"defects"`
	Timestamp        time.Time `json:"timestamp"`
}

func (r AlertRow) PlateLabel() string {
	return models.Inspection{Plate: r.Plate}.PlateLabel()
}

func (r AlertRow) DefectList() []string {
	return models.Inspection{Defects: r.Defects}.DefectList()
}

func (r AlertRow) NextStatuses() []string {
	return models.NextStatuses(r.Status)
}

type UpdateAlertRequest struct {
	Status   string `json:"status" form:"status"`
	Response string `json:"response" form:"response"`
}
