package services

import (
	"fmt"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/models"
	"gorm.io/gorm"
)

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// Stats computes the dashboard cards: inspection totals by verdict, the
// pending alert count and the pass rate.
func (s *DashboardService) Stats() (*dto.DashboardStats, error) {
	var counts []struct {
		Status string
		Count  int64
	}
	if err := s.db.Model(&models.Inspection{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("failed to count inspections: %w", err)
	}

	stats := &dto.DashboardStats{}
	for _, c := range counts {
		stats.Total += c.Count
		switch c.Status {
		case models.StatusSafe:
			stats.Safe = c.Count
		case models.StatusUnsafe:
			stats.Unsafe = c.Count
		}
	}

	if err := s.db.Model(&models.Alert{}).
		Where("status = ?", models.AlertPending).
		Count(&stats.PendingAlerts).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending alerts: %w", err)
	}

	stats.PassRate = PassRate(stats.Safe, stats.Total)
	return stats, nil
}

// PassRate is safe/total as a percentage rounded to one decimal, or 0
// when there are no inspections. Exact ties round to the even digit, so
// 6.25 becomes 6.2.
func PassRate(safe, total int64) float64 {
	if total <= 0 {
		return 0
	}
	x := float64(safe) / float64(total) * 100
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 1, 64), 64)
	if err != nil {
		return x
	}
	return rounded
}
