// services/auth_service.go - Admin authentication
package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"hackreg/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenLifetime = 24 * time.Hour

type AuthService struct {
	db        *gorm.DB
	jwtSecret []byte
}

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{db: db, jwtSecret: []byte(jwtSecret)}
}

// Login verifies admin credentials and issues a signed session token.
// The token path is a legacy surface; the shared secret gates admin routes.
func (s *AuthService) Login(email, password string) (token string, expiresAt int64, err error) {
	var admin models.AdminUser
	if err := s.db.Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", 0, ErrInvalidCredentials
		}
		return "", 0, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", 0, ErrInvalidCredentials
	}

	s.db.Model(&admin).Update("last_login", time.Now())

	expiry := time.Now().Add(tokenLifetime)
	claims := jwt.MapClaims{
		"admin_id": admin.ID,
		"email":    admin.Email,
		"is_admin": true,
		"exp":      expiry.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiry.Unix(), nil
}

// EnsureAdminUser provisions the admin login if it does not exist yet.
// Idempotent; safe to run at every startup.
func (s *AuthService) EnsureAdminUser(email, password string) error {
	if email == "" || password == "" {
		log.Println("⚠️  ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var n int64
	if err := s.db.Model(&models.AdminUser{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.AdminUser{
		Email:        email,
		PasswordHash: string(hash),
		Role:         "admin",
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", email)
	return nil
}
