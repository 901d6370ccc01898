package services

import (
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// HashPassword returns the bcrypt hash stored in users.password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CreateUser inserts an operator account. A duplicate email fails with
// ErrConstraintViolation.
func CreateUser(db *gorm.DB, email, password, role string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrConstraintViolation)
	}
	if role == "" {
		role = models.DefaultRole
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{Email: email, Password: hash, Role: role}
	if err := db.Create(&user).Error; err != nil {
		return nil, classifyDBError(err)
	}
	return &user, nil
}

// FindUserByEmail looks up a user by exact email.
func FindUserByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, classifyDBError(err)
	}
	return &user, nil
}
