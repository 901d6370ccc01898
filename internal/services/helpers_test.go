package services

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var baseTime = time.Date(2026, 2, 13, 14, 48, 33, 0, time.UTC)

func strPtr(s string) *string { return &s }

func createInspection(t *testing.T, db *gorm.DB, offsetMinutes int, plate, status string) *models.Inspection {
	t.Helper()

	insp := &models.Inspection{
		Timestamp:  baseTime.Add(-time.Duration(offsetMinutes) * time.Minute),
		Location:   "Route 66 East - Checkpoint A",
		Camera:     strPtr("CAM-003"),
		Status:     status,
		Confidence: 90,
	}
	if plate != "" {
		insp.Plate = strPtr(plate)
	}
	if status == models.StatusUnsafe {
		insp.Defects = strPtr("Tread Wear,Bulge")
	}
	require.NoError(t, db.Create(insp).Error)
	return insp
}

func createAlert(t *testing.T, db *gorm.DB, inspectionID uint, status string, createdAt time.Time) *models.Alert {
	t.Helper()

	alert := &models.Alert{InspectionID: inspectionID, Status: status, CreatedAt: createdAt}
	require.NoError(t, db.Create(alert).Error)
	return alert
}
