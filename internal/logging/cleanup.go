package logging

import (
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/models"
	"gorm.io/gorm"
)

// StartCleanup runs a daily goroutine that deletes system_logs older
// than retentionDays.
func StartCleanup(db *gorm.DB, retentionDays int, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				deleted, err := Prune(db, retentionDays, time.Now())
				if err != nil {
					slog.Error("log cleanup failed", "error", err)
				} else if deleted > 0 {
					slog.Info("log cleanup completed", "deleted", deleted)
				}
			case <-done:
				return
			}
		}
	}()
}

// Prune deletes system_logs rows older than retentionDays before now.
func Prune(db *gorm.DB, retentionDays int, now time.Time) (int64, error) {
	cutoff := now.UTC().AddDate(0, 0, -retentionDays)
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}
