package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/models"
	"gorm.io/gorm"
)

// InspectionFilter narrows the inspection history. Zero values match everything.
type InspectionFilter struct {
	Status string
	Plate  string
	Limit  int
}

type InspectionService struct {
	db *gorm.DB
}

func NewInspectionService(db *gorm.DB) *InspectionService {
	return &InspectionService{db: db}
}

// Recent returns at most n inspections, newest first. Ties on timestamp
// are broken by id, newest first.
func (s *InspectionService) Recent(n int) ([]models.Inspection, error) {
	if n <= 0 {
		return []models.Inspection{}, nil
	}
	return s.List(InspectionFilter{Limit: n})
}

func (s *InspectionService) List(filter InspectionFilter) ([]models.Inspection, error) {
	query := s.db.Model(&models.Inspection{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if plate := strings.TrimSpace(filter.Plate); plate != "" {
		query = query.Where("LOWER(plate) LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(plate))+"%")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	inspections := []models.Inspection{}
	if err := query.Order("timestamp DESC").Order("id DESC").Find(&inspections).Error; err != nil {
		return nil, fmt.Errorf("failed to list inspections: %w", err)
	}
	return inspections, nil
}

// Get loads one inspection or returns ErrNotFound.
func (s *InspectionService) Get(id uint) (*models.Inspection, error) {
	var inspection models.Inspection
	if err := s.db.First(&inspection, id).Error; err != nil {
		return nil, classifyDBError(err)
	}
	return &inspection, nil
}

// Record stores an inspection event. An unsafe verdict opens a pending
// alert in the same transaction.
func (s *InspectionService) Record(req *dto.RecordInspectionRequest) (*models.Inspection, *models.Alert, error) {
	inspection, err := newInspection(req)
	if err != nil {
		return nil, nil, err
	}

	var alert *models.Alert
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(inspection).Error; err != nil {
			return classifyDBError(err)
		}
		if !inspection.IsUnsafe() {
			return nil
		}
		alert = &models.Alert{
			InspectionID: inspection.ID,
			Status:       models.AlertPending,
			CreatedAt:    time.Now().UTC(),
		}
		return classifyDBError(tx.Create(alert).Error)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to record inspection: %w", err)
	}
	return inspection, alert, nil
}

func newInspection(req *dto.RecordInspectionRequest) (*models.Inspection, error) {
	location := strings.TrimSpace(req.Location)
	if location == "" {
		return nil, fmt.Errorf("%w: location is required", ErrInvalidInspection)
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if !models.ValidInspectionStatus(status) {
		return nil, fmt.Errorf("%w: status must be safe or unsafe", ErrInvalidInspection)
	}
	if !models.ValidConfidence(req.Confidence) {
		return nil, fmt.Errorf("%w: confidence must be between 0 and 100", ErrInvalidInspection)
	}

	timestamp := time.Now().UTC()
	if req.Timestamp != nil && !req.Timestamp.IsZero() {
		timestamp = req.Timestamp.UTC()
	}

	return &models.Inspection{
		Timestamp:  timestamp,
		Plate:      trimmedOrNil(req.Plate),
		Location:   location,
		Camera:     trimmedOrNil(req.Camera),
		Status:     status,
		Confidence: req.Confidence,
		Defects:    models.JoinDefects(req.Defects),
	}, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
