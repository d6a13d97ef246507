package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sayajuli/money-management/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService handles registration, authentication, sessions and profile
// edits.
type UserService struct {
	db         *gorm.DB
	bcryptCost int
}

func NewUserService(db *gorm.DB, bcryptCost int) *UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = 12
	}
	return &UserService{db: db, bcryptCost: bcryptCost}
}

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	DisplayName     string
}

// Register creates a new user. Duplicate usernames or emails fail with
// ErrConflict; username uniqueness is case-insensitive.
func (s *UserService) Register(in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if !usernameRe.MatchString(in.Username) {
		return nil, fmt.Errorf("%w: username must be 3-20 letters, digits or underscores", ErrInvalidArgument)
	}
	if !emailRe.MatchString(in.Email) {
		return nil, fmt.Errorf("%w: invalid email address", ErrInvalidArgument)
	}
	if !isStrongPassword(in.Password) {
		return nil, fmt.Errorf("%w: password must be 8-32 characters with upper case, lower case and a digit", ErrInvalidArgument)
	}
	if in.Password != in.ConfirmPassword {
		return nil, fmt.Errorf("%w: passwords do not match", ErrInvalidArgument)
	}

	var count int64
	if err := s.db.Model(&models.User{}).
		Where("LOWER(username) = LOWER(?) OR email = ?", in.Username, in.Email).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: username or email already registered", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(in.DisplayName),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// isStrongPassword checks 8-32 characters with upper, lower and digit.
func isStrongPassword(pwd string) bool {
	if len(pwd) < 8 || len(pwd) > 32 {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range pwd {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}

// Authenticate checks the credentials and records the login. The error does
// not reveal whether the username or the password was wrong.
func (s *UserService) Authenticate(username, password, ip string) (*models.User, error) {
	var user models.User
	err := s.db.Where("LOWER(username) = LOWER(?)", strings.TrimSpace(username)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLoginAt = &now
	user.LastLoginIP = ip
	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("record login: %w", err)
	}
	return &user, nil
}

// CreateSession stores a revocable login session.
func (s *UserService) CreateSession(userID uint, ttl time.Duration) (*models.Session, error) {
	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &session, nil
}

// RevokeSession marks a session revoked (logout).
func (s *UserService) RevokeSession(sessionID string, userID uint) error {
	result := s.db.Model(&models.Session{}).
		Where("id = ? AND user_id = ?", sessionID, userID).
		Update("revoked", true)
	if result.Error != nil {
		return fmt.Errorf("revoke session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: session", ErrNotFound)
	}
	return nil
}

// GetByID loads one user.
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &user, nil
}

// UpdateProfile changes the display name and risk profile.
func (s *UserService) UpdateProfile(userID uint, displayName string, riskProfile models.RiskProfile) (*models.User, error) {
	switch riskProfile {
	case "", models.RiskConservative, models.RiskModerate, models.RiskAggressive:
	default:
		return nil, fmt.Errorf("%w: unknown risk profile %q", ErrInvalidArgument, riskProfile)
	}

	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.DisplayName = strings.TrimSpace(displayName)
	user.RiskProfile = riskProfile
	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

// ChangePassword verifies the old password and stores a new hash.
func (s *UserService) ChangePassword(userID uint, oldPassword, newPassword, confirmPassword string) error {
	user, err := s.GetByID(userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return fmt.Errorf("%w: current password is incorrect", ErrInvalidArgument)
	}
	if !isStrongPassword(newPassword) {
		return fmt.Errorf("%w: password must be 8-32 characters with upper case, lower case and a digit", ErrInvalidArgument)
	}
	if newPassword != confirmPassword {
		return fmt.Errorf("%w: passwords do not match", ErrInvalidArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.db.Model(user).Update("password_hash", string(hash)).Error; err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
