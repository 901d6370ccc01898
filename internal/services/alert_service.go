package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/models"
	"gorm.io/gorm"
)

const maxResponseLength = 200

// AlertFilter narrows the joined alert list. Zero values match everything.
type AlertFilter struct {
	Status       string
	InspectionID uint
	Limit        int
}

type AlertService struct {
	db *gorm.DB
}

func NewAlertService(db *gorm.DB) *AlertService {
	return &AlertService{db: db}
}

// WithInspection returns alerts joined with their inspection in one
// query, newest alert first. Alerts whose inspection is missing are
// excluded by the inner join.
func (s *AlertService) WithInspection(filter AlertFilter) ([]dto.AlertRow, error) {
	query := s.db.Table("alerts").
		Select(`alerts.id AS alert_id,
			alerts.inspection_id AS inspection_id,
			alerts.status AS status,
			alerts.response AS response,
			alerts.created_at AS created_at,
			inspections.plate AS plate,
			inspections.location AS location,
			inspections.camera AS camera,
			inspections.status AS inspection_status,
			inspections.confidence AS confidence,
			inspections.defects AS defects,
			inspections.timestamp AS timestamp`).
		Joins("JOIN inspections ON inspections.id = alerts.inspection_id")

	if filter.Status != "" {
		query = query.Where("alerts.status = ?", filter.Status)
	}
	if filter.InspectionID != 0 {
		query = query.Where("alerts.inspection_id = ?", filter.InspectionID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	rows := []dto.AlertRow{}
	if err := query.Order("alerts.created_at DESC").Order("alerts.id DESC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return rows, nil
}

// ForInspection lists one inspection's alerts, newest first.
func (s *AlertService) ForInspection(inspectionID uint) ([]models.Alert, error) {
	alerts := []models.Alert{}
	if err := s.db.Where("inspection_id = ?", inspectionID).
		Order("created_at DESC").Order("id DESC").
		Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("failed to list inspection alerts: %w", err)
	}
	return alerts, nil
}

func (s *AlertService) CountByStatus(status string) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Alert{}).Where("status = ?", status).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count alerts: %w", err)
	}
	return count, nil
}

// UpdateStatus moves an alert along its workflow and optionally records
// the operator's response note.
func (s *AlertService) UpdateStatus(id uint, req *dto.UpdateAlertRequest) (*models.Alert, error) {
	target := strings.ToLower(strings.TrimSpace(req.Status))
	if !models.ValidAlertStatus(target) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, req.Status)
	}

	var alert models.Alert
	if err := s.db.First(&alert, id).Error; err != nil {
		return nil, classifyDBError(err)
	}
	if !models.CanTransition(alert.Status, target) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, alert.Status, target)
	}

	updates := map[string]interface{}{"status": target}
	if response := truncate(strings.TrimSpace(req.Response), maxResponseLength); response != "" {
		updates["response"] = response
	}

	// The status guard rejects a concurrent transition made since the read.
	result := s.db.Model(&models.Alert{}).
		Where("id = ? AND status = ?", alert.ID, alert.Status).
		Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update alert: %w", classifyDBError(result.Error))
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: alert %d changed concurrently", ErrInvalidTransition, alert.ID)
	}

	if err := s.db.First(&alert, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &alert, nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
