package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/models"
)

type DashboardStats struct {
	Total         int64   `json:"total"`
	Safe          int64   `json:"safe"`
	Unsafe        int64   `json:"unsafe"`
	PendingAlerts int64   `json:"pending_alerts"`
	PassRate      float64 `json:"pass_rate"`
}

type RecordInspectionRequest struct {
	Timestamp  *time.Time `json:"timestamp"`
	Plate      *string    `json:"plate"`
	Location   string     `json:"location"`
	Camera     *string    `json:"camera"`
	Status     string     `json:"status"`
	Confidence int        `json:"confidence"`
	Defects    []string   `json:"defects"`
}

type RecordInspectionResponse struct {
	Inspection models.Inspection `json:"inspection"`
	DefectList []string          `json:"defect_list"`
	AlertID    *uint             `json:"alert_id,omitempty"`
}

// PredictResponse is returned by the placeholder prediction endpoint.
type PredictResponse struct {
	Success    bool        `json:"success"`
	Prediction interface{} `json:"prediction"`
	Message    string      `json:"message"`
}
