package models

import (
	"strings"
	"time"
)

const (
	StatusSafe   = "safe"
	StatusUnsafe = "unsafe"
)

// Inspection is a single tire scan event with its safety verdict.
type Inspection struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Timestamp  time.Time `gorm:"not null;index:idx_inspections_timestamp" json:"timestamp"`
	Plate      *string   `gorm:"size:20;index" json:"plate"`
	Location   string    `gorm:"not null;size:200" json:"location"`
	Camera     *string   `gorm:"size:20" json:"camera"`
	Status     string    `gorm:"not null;size:10;index:idx_inspections_status" json:"status"`
	Confidence int       `gorm:"not null" json:"confidence"`
	Defects    *string   `gorm:"size:300" json:"defects"`
}

// DefectList splits the stored defect text on commas, trimming each
// entry and dropping empty ones.
func (i Inspection) DefectList() []string {
	if i.Defects == nil {
		return []string{}
	}
	return ParseDefects(*i.Defects)
}

// PlateLabel returns the plate or "Unknown" when it could not be read.
func (i Inspection) PlateLabel() string {
	return labelOr(i.Plate, "Unknown")
}

func (i Inspection) CameraLabel() string {
	return labelOr(i.Camera, "-")
}

func (i Inspection) IsUnsafe() bool {
	return i.Status == StatusUnsafe
}

// ParseDefects is the comma-separated parser behind DefectList.
func ParseDefects(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// JoinDefects is the inverse of ParseDefects. It returns nil when no
// named defect remains, so the column is stored as NULL.
func JoinDefects(defects []string) *string {
	cleaned := ParseDefects(strings.Join(defects, ","))
	if len(cleaned) == 0 {
		return nil
	}
	s := strings.Join(cleaned, ",")
	return &s
}

func ValidInspectionStatus(status string) bool {
	return status == StatusSafe || status == StatusUnsafe
}

func ValidConfidence(confidence int) bool {
	return confidence >= 0 && confidence <= 100
}

func labelOr(s *string, fallback string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return fallback
	}
	return *s
}
