// Package seed loads the deterministic demo dataset: operator accounts,
// inspections and the alerts opened against them.
package seed

import (
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/services"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Result reports what a run inserted. Skipped is set when the store
// already held users, or another run claimed the store first.
type Result struct {
	Skipped     bool
	Users       int
	Inspections int
	Alerts      int
}

// Run inserts the fixture set once. It is safe to call repeatedly and
// from concurrent processes: the first fixture user is inserted with
// ON CONFLICT DO NOTHING inside the transaction, and a run that inserts
// nothing backs off.
func Run(db *gorm.DB) (*Result, error) {
	users, err := buildUsers()
	if err != nil {
		return nil, err
	}

	res := &Result{}
	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		if count > 0 {
			res.Skipped = true
			return nil
		}

		claim := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).Create(&users[0])
		if claim.Error != nil {
			return fmt.Errorf("failed to claim seed run: %w", claim.Error)
		}
		if claim.RowsAffected == 0 {
			res.Skipped = true
			return nil
		}

		rest := users[1:]
		if err := tx.Create(&rest).Error; err != nil {
			return fmt.Errorf("failed to insert users: %w", err)
		}

		inspections := buildInspections()
		if err := tx.Create(&inspections).Error; err != nil {
			return fmt.Errorf("failed to insert inspections: %w", err)
		}

		alerts, err := buildAlerts(inspections)
		if err != nil {
			return err
		}
		if err := tx.Create(&alerts).Error; err != nil {
			return fmt.Errorf("failed to insert alerts: %w", err)
		}

		res.Users = len(users)
		res.Inspections = len(inspections)
		res.Alerts = len(alerts)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// buildUsers hashes passwords before the transaction opens; bcrypt is
// slow and must not hold the write lock.
func buildUsers() ([]models.User, error) {
	users := make([]models.User, 0, len(userFixtures))
	for _, f := range userFixtures {
		hash, err := services.HashPassword(f.password)
		if err != nil {
			return nil, err
		}
		users = append(users, models.User{Email: f.email, Password: hash, Role: f.role})
	}
	return users, nil
}

func buildInspections() []models.Inspection {
	inspections := make([]models.Inspection, 0, len(inspectionFixtures))
	for _, f := range inspectionFixtures {
		inspections = append(inspections, models.Inspection{
			Timestamp:  fixtureBase.Add(-time.Duration(f.offsetMin) * time.Minute),
			Plate:      nullable(f.plate),
			Location:   f.location,
			Camera:     nullable(f.camera),
			Status:     f.status,
			Confidence: f.confidence,
			Defects:    nullable(f.defects),
		})
	}
	return inspections
}

// buildAlerts needs the inspections' assigned IDs. Each alert is dated
// at its inspection's timestamp.
func buildAlerts(inspections []models.Inspection) ([]models.Alert, error) {
	alerts := make([]models.Alert, 0, len(alertFixtures))
	for _, f := range alertFixtures {
		if f.index < 0 || f.index >= len(inspections) {
			return nil, fmt.Errorf("alert fixture references inspection %d of %d", f.index, len(inspections))
		}
		insp := inspections[f.index]
		alerts = append(alerts, models.Alert{
			InspectionID: insp.ID,
			Status:       f.status,
			Response:     nullable(f.response),
			CreatedAt:    insp.Timestamp,
		})
	}
	return alerts, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
