// Package service contains the application's business logic.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"miniblog/internal/config"
	"miniblog/internal/middleware"
	"miniblog/internal/models"
	"miniblog/internal/repository"
	"miniblog/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles signup, login and token issuance.
type AuthService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

type SignupInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{userRepo: userRepo, cfg: cfg}
}

// Signup registers a new account and returns the user with a fresh token.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, string, error) {
	var fields []models.FieldError
	if err := validation.ValidateUsername(in.Username); err != nil {
		fields = append(fields, models.FieldError{Field: "username", Message: err.Error()})
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		fields = append(fields, models.FieldError{Field: "email", Message: err.Error()})
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		fields = append(fields, models.FieldError{Field: "password", Message: err.Error()})
	}
	if len(fields) > 0 {
		return nil, "", models.NewValidationError("Validation failed", fields...)
	}

	if existing, err := s.userRepo.GetByEmail(ctx, in.Email); err != nil {
		return nil, "", err
	} else if existing != nil {
		return nil, "", models.NewConflictError("email", "Email already registered")
	}
	if existing, err := s.userRepo.GetByUsername(ctx, in.Username); err != nil {
		return nil, "", err
	} else if existing != nil {
		return nil, "", models.NewConflictError("username", "Username already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hashed),
	}
	// The pre-checks race with concurrent signups; the repository translates
	// the unique-index violation into the same conflict shape.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}

	middleware.Logger.InfoContext(ctx, "user registered",
		slog.Uint64("user_id", uint64(user.ID)),
		slog.String("username", user.Username),
	)

	return user, token, nil
}

// Login authenticates by email and password. Unknown email and wrong password
// are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", models.NewAuthenticationError("Invalid credentials")
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); cmpErr != nil {
		return nil, "", models.NewAuthenticationError("Invalid credentials")
	}

	token, err := s.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}

	middleware.Logger.InfoContext(ctx, "user logged in",
		slog.Uint64("user_id", uint64(user.ID)),
	)

	return user, token, nil
}

// GenerateToken creates a signed JWT for the given user.
func (s *AuthService) GenerateToken(userID uint, username string) (string, error) {
	if s.cfg.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	expiry := time.Duration(s.cfg.JWTExpiresHours) * time.Hour
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10), // Subject (user ID as string)
		"username": username,                               // Username (cached in token)
		"iss":      "miniblog-api",                         // Issuer
		"aud":      "miniblog-client",                      // Audience
		"exp":      now.Add(expiry).Unix(),                 // Expiration
		"iat":      now.Unix(),                             // Issued at
		"nbf":      now.Unix(),                             // Not before
		"jti":      generateJTI(),                          // JWT ID (unique identifier)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks.
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}

// VerifyToken validates a signed token and returns the embedded user id. The
// exact failure reason is logged server-side only; callers get one generic
// authentication error regardless of cause.
func (s *AuthService) VerifyToken(ctx context.Context, tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithIssuer("miniblog-api"), jwt.WithAudience("miniblog-client"))
	if err != nil || !token.Valid {
		reason := "malformed token"
		if errors.Is(err, jwt.ErrTokenExpired) {
			reason = "expired token"
		}
		middleware.Logger.WarnContext(ctx, "token verification failed",
			slog.String("reason", reason),
		)
		return 0, models.NewAuthenticationError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, models.NewAuthenticationError("Invalid or expired token")
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, models.NewAuthenticationError("Invalid or expired token")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, models.NewAuthenticationError("Invalid or expired token")
	}
	return uint(userID), nil
}
