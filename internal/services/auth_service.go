package services

import (
	"errors"
	"strings"
	"time"

	"investment-service/internal/models"
	"investment-service/pkg/common"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	DB        *gorm.DB
	JwtSecret []byte
	TokenTTL  time.Duration
}

func NewAuthService(db *gorm.DB, jwtSecret []byte) *AuthService {
	return &AuthService{DB: db, JwtSecret: jwtSecret, TokenTTL: 24 * time.Hour}
}

type SignupDTO struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phone_number" binding:"required,phone"`
	Password    string `json:"password" binding:"required,min=8"`
}

type LoginDTO struct {
	Identity string `json:"identity" binding:"required"` // username or email
	Password string `json:"password" binding:"required"`
}

// Signup creates the user and, explicitly in the same transaction, the
// profile row that carries the withdrawal gate. No save-hook magic.
func (s *AuthService) Signup(data SignupDTO) (models.User, error) {
	if !common.IsValidPhoneNumber(data.PhoneNumber) {
		return models.User{}, common.NewValidationError("phone_number",
			"Enter a valid phone number. Examples: +1 801 234 5678, 08012345678, or 2348012345678")
	}

	var count int64
	if err := s.DB.Model(&models.User{}).Where("username = ?", data.Username).Count(&count).Error; err != nil {
		return models.User{}, err
	}
	if count > 0 {
		return models.User{}, common.NewValidationError("username", "A user with this username already exists.")
	}

	if err := s.DB.Model(&models.User{}).Where("email = ?", data.Email).Count(&count).Error; err != nil {
		return models.User{}, err
	}
	if count > 0 {
		return models.User{}, common.NewValidationError("email", "A user with this email already exists.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		Username:     data.Username,
		Email:        data.Email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := models.UserProfile{
			UserId:            user.ID,
			PhoneNumber:       data.PhoneNumber,
			WithdrawalEnabled: true,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

// Login accepts a username or an email as identity and returns a signed JWT.
func (s *AuthService) Login(data LoginDTO) (string, models.User, error) {
	var user models.User
	query := s.DB.Where("username = ?", data.Identity)
	if strings.Contains(data.Identity, "@") {
		query = s.DB.Where("email = ?", data.Identity)
	}
	if err := query.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", models.User{}, common.NewValidationError("identity", "Invalid username/email or password.")
		}
		return "", models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(data.Password)); err != nil {
		return "", models.User{}, common.NewValidationError("identity", "Invalid username/email or password.")
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return "", models.User{}, err
	}
	return token, user, nil
}

// IssueToken signs a JWT carrying the user id and role.
func (s *AuthService) IssueToken(user models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.JwtSecret)
}

type ChangePasswordDTO struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

func (s *AuthService) ChangePassword(userId int, data ChangePasswordDTO) error {
	var user models.User
	if err := s.DB.First(&user, userId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &common.NotFoundError{Resource: "user"}
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(data.OldPassword)); err != nil {
		return common.NewValidationError("old_password", "Current password is incorrect.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.DB.Model(&user).Update("password_hash", string(hash)).Error
}

// GetOrCreateProfile fetches the user's profile, creating it when a legacy
// user predates profile rows. Readers of the withdrawal gate go through
// this rather than assuming the row exists.
func (s *AuthService) GetOrCreateProfile(userId int) (models.UserProfile, error) {
	var profile models.UserProfile
	err := s.DB.Where(models.UserProfile{UserId: userId}).
		Attrs(models.UserProfile{WithdrawalEnabled: true}).
		FirstOrCreate(&profile).Error
	return profile, err
}

// SetWithdrawalGate flips a user's withdrawal permission. Enabling clears
// any stored reason; disabling keeps the one supplied.
func (s *AuthService) SetWithdrawalGate(userId int, enabled bool, reason string) (models.UserProfile, error) {
	profile, err := s.GetOrCreateProfile(userId)
	if err != nil {
		return models.UserProfile{}, err
	}

	if enabled {
		reason = ""
	}
	err = s.DB.Model(&profile).Updates(map[string]interface{}{
		"withdrawal_enabled":         enabled,
		"withdrawal_disabled_reason": reason,
	}).Error
	if err != nil {
		return models.UserProfile{}, err
	}

	profile.WithdrawalEnabled = enabled
	profile.WithdrawalDisabledReason = reason
	return profile, nil
}

type UpdateProfileDTO struct {
	PhoneNumber string `json:"phone_number" binding:"required,phone"`
}

func (s *AuthService) UpdateProfile(userId int, data UpdateProfileDTO) (models.UserProfile, error) {
	if !common.IsValidPhoneNumber(data.PhoneNumber) {
		return models.UserProfile{}, common.NewValidationError("phone_number",
			"Enter a valid phone number. Examples: +1 801 234 5678, 08012345678, or 2348012345678")
	}

	profile, err := s.GetOrCreateProfile(userId)
	if err != nil {
		return models.UserProfile{}, err
	}
	if err := s.DB.Model(&profile).Update("phone_number", data.PhoneNumber).Error; err != nil {
		return models.UserProfile{}, err
	}
	profile.PhoneNumber = data.PhoneNumber
	return profile, nil
}
