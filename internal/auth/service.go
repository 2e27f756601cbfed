package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/frahmantamala/attendance-tracker/internal/totp"
)

// Service is the main auth service with dependencies
type Service struct {
	repo            RepositoryAPI
	tokenGenerator  TokenGeneratorAPI
	totpIssuer      string
	totpWindowSteps uint
	logger          *slog.Logger
}

func NewService(repo RepositoryAPI, tokenGen TokenGeneratorAPI, totpIssuer string, totpWindowSteps uint, logger *slog.Logger) *Service {
	return &Service{
		repo:            repo,
		tokenGenerator:  tokenGen,
		totpIssuer:      totpIssuer,
		totpWindowSteps: totpWindowSteps,
		logger:          logger,
	}
}

func NewJWTTokenGenerator(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTTokenGenerator {
	if accessTTL == 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL == 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &JWTTokenGenerator{
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
	}
}

// Authenticate validates credentials and returns tokens plus the user payload.
func (s *Service) Authenticate(dto LoginDTO) (*LoginResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	userID, storedHash, isActive, err := s.repo.GetCredentialsByEmail(dto.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !isActive {
		return nil, ErrUserInactive
	}

	if err := VerifyPassword(storedHash, dto.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokenGenerator.GenerateAccessToken(userID)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(userID)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.GetAuthUserByID(userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user authenticated", "user_id", userID)

	return &LoginResult{
		Tokens: AuthTokens{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
		User: u,
	}, nil
}

// RefreshTokens validates refresh token and returns new tokens
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.ValidateToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	accessToken, err := s.tokenGenerator.GenerateAccessToken(claims.UserID)
	if err != nil {
		return AuthTokens{}, err
	}

	newRefreshToken, err := s.tokenGenerator.GenerateRefreshToken(claims.UserID)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// ValidateAccessToken validates access token and returns claims
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

func (s *Service) GetAuthUser(userID int64) (*User, error) {
	return s.repo.GetAuthUserByID(userID)
}

// SetupTOTP generates a fresh secret for the user and persists it with the
// enabled flag still off. The flag only flips in VerifyTOTP, so a secret the
// user never captured in their authenticator app cannot gate the kiosk.
func (s *Service) SetupTOTP(userID int64) (*TOTPSetupResult, error) {
	u, err := s.repo.GetAuthUserByID(userID)
	if err != nil {
		return nil, err
	}

	secret, otpauthURL, err := totp.GenerateSecret(s.totpIssuer, u.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("generate totp secret: %w", err)
	}

	qr, err := totp.QRDataURL(otpauthURL)
	if err != nil {
		return nil, fmt.Errorf("render enrollment qr: %w", err)
	}

	if err := s.repo.SetTOTPSecret(userID, secret); err != nil {
		s.logger.Error("failed to persist totp secret", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("totp setup started", "user_id", userID)

	return &TOTPSetupResult{
		Secret:  secret,
		QRCode:  qr,
		Message: "Scan this QR code with your authenticator app",
	}, nil
}

// VerifyTOTP completes enrollment: one good code against the stored secret
// flips the enabled flag.
func (s *Service) VerifyTOTP(userID int64, code string) error {
	u, err := s.repo.GetAuthUserByID(userID)
	if err != nil {
		return err
	}

	if u.TOTPSecret == "" {
		return ErrTOTPNotSetup
	}

	if !totp.Verify(u.TOTPSecret, code, s.totpWindowSteps) {
		return ErrInvalidTOTPCode
	}

	if err := s.repo.EnableTOTP(userID); err != nil {
		s.logger.Error("failed to enable totp", "error", err, "user_id", userID)
		return err
	}

	s.logger.Info("totp enabled", "user_id", userID)
	return nil
}

// GenerateAccessToken creates a new access token
func (j *JWTTokenGenerator) GenerateAccessToken(userID int64) (string, error) {
	return j.signToken(userID, j.AccessTokenTTL, j.AccessTokenSecret)
}

// GenerateRefreshToken creates a new refresh token
func (j *JWTTokenGenerator) GenerateRefreshToken(userID int64) (string, error) {
	return j.signToken(userID, j.RefreshTokenTTL, j.RefreshTokenSecret)
}

func (j *JWTTokenGenerator) signToken(userID int64, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken validates a JWT token and returns claims
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		// refresh tokens outlive the access TTL, so pick the secret by
		// remaining lifetime
		if claims, ok := token.Claims.(*Claims); ok {
			if time.Until(claims.ExpiresAt.Time) > j.AccessTokenTTL {
				return j.RefreshTokenSecret, nil
			}
		}
		return j.AccessTokenSecret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
