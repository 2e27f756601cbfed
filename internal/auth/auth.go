package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (*LoginResult, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetAuthUser(userID int64) (*User, error)
	SetupTOTP(userID int64) (*TOTPSetupResult, error)
	VerifyTOTP(userID int64, code string) error
}

type RepositoryAPI interface {
	GetCredentialsByEmail(email string) (userID int64, passwordHash string, isActive bool, err error)
	GetAuthUserByID(userID int64) (*User, error)
	SetTOTPSecret(userID int64, secret string) error
	EnableTOTP(userID int64) error
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(userID int64) (string, error)
	GenerateRefreshToken(userID int64) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// User is the authenticated caller attached to request context. It carries
// only what authorization and enrollment need, not the full user record.
type User struct {
	ID          int64  `json:"id"`
	EmployeeID  string `json:"employee_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	TOTPSecret  string `json:"-"`
	TOTPEnabled bool   `json:"totp_enabled"`
	IsActive    bool   `json:"is_active"`
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

func (u *User) IsManager() bool {
	return u.Role == "manager" || u.Role == "admin"
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResult pairs the tokens with the user payload the admin UI renders
// after login.
type LoginResult struct {
	Tokens AuthTokens `json:"tokens"`
	User   *User      `json:"user"`
}

// TOTPSetupResult carries the raw secret and a scannable enrollment image.
type TOTPSetupResult struct {
	Secret  string `json:"secret"`
	QRCode  string `json:"qr_code"`
	Message string `json:"message"`
}

type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserInactive       = errors.New("user is inactive")
	ErrTOTPNotSetup       = errors.New("totp not setup")
	ErrInvalidTOTPCode    = errors.New("invalid totp code")
)

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
