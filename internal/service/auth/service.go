package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mamadbah2/farmreg/internal/domain/models"
	"github.com/mamadbah2/farmreg/internal/repository/mongodb"
)

const resetTokenTTL = time.Hour

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Service handles staff sign-in, account registration, and password resets.
// Sessions are stateless JWTs signed with the configured secret.
type Service struct {
	users  mongodb.UserStore
	secret []byte
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new auth service instance.
func NewService(users mongodb.UserStore, secret string, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Service{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Login verifies the credentials and issues a session token. Bad email and
// bad password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (models.Session, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, models.ErrNotFound) {
		return models.Session{}, models.ErrAuth
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.Session{}, models.ErrAuth
	}

	expires := s.now().Add(s.ttl)
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name,
		"exp":   expires.Unix(),
		"iat":   s.now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return models.Session{}, fmt.Errorf("sign session token: %w", err)
	}

	s.logger.Info("user logged in", zap.String("email", user.Email))
	return models.Session{Token: token, ExpiresAt: expires, User: user}, nil
}

// Registration is the staff account sign-up form.
type Registration struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phoneNumber"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// RegisterUser validates the form, hashes the password, and stores the
// account.
func (s *Service) RegisterUser(ctx context.Context, reg Registration) (models.User, error) {
	if err := validateRegistration(reg); err != nil {
		return models.User{}, err
	}

	email := strings.ToLower(strings.TrimSpace(reg.Email))
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		verr := models.NewValidationError()
		verr.Add("email", "An account with this email already exists.")
		return models.User{}, verr
	} else if !errors.Is(err, models.ErrNotFound) {
		return models.User{}, fmt.Errorf("register user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:         strings.TrimSpace(reg.Name),
		Email:        email,
		PhoneNumber:  strings.TrimSpace(reg.PhoneNumber),
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}

	id, err := s.users.Insert(ctx, user)
	if err != nil {
		return models.User{}, fmt.Errorf("register user: %w", err)
	}
	user.ID = id

	s.logger.Info("user registered", zap.String("email", user.Email))
	return user, nil
}

// RequestPasswordReset issues a one-hour reset token for the account. An
// unknown email returns ErrNotFound so the HTTP layer can decide what to
// disclose.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", fmt.Errorf("request password reset: %w", err)
	}

	token := uuid.NewString()
	fields := map[string]any{
		"resetToken":        token,
		"resetTokenExpires": s.now().Add(resetTokenTTL).UTC(),
	}
	if err := s.users.UpdateMerge(ctx, user.ID, fields); err != nil {
		return "", fmt.Errorf("store reset token: %w", err)
	}

	s.logger.Info("password reset requested", zap.String("email", user.Email))
	return token, nil
}

// ConfirmPasswordReset redeems a pending token and installs the new
// password. Expired or unknown tokens fail with ErrAuth.
func (s *Service) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 6 {
		verr := models.NewValidationError()
		verr.Add("password", "Password must be at least 6 characters.")
		return verr
	}

	user, err := s.users.FindByResetToken(ctx, token)
	if errors.Is(err, models.ErrNotFound) {
		return models.ErrAuth
	}
	if err != nil {
		return fmt.Errorf("confirm password reset: %w", err)
	}

	if s.now().After(user.ResetTokenExpires) {
		return models.ErrAuth
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	fields := map[string]any{
		"passwordHash":      string(hash),
		"resetToken":        "",
		"resetTokenExpires": time.Time{},
	}
	if err := s.users.UpdateMerge(ctx, user.ID, fields); err != nil {
		return fmt.Errorf("install new password: %w", err)
	}

	s.logger.Info("password reset completed", zap.String("email", user.Email))
	return nil
}

// VerifyToken parses and validates a session token, returning its subject
// claims.
func (s *Service) VerifyToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, models.ErrAuth
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, models.ErrAuth
	}
	return claims, nil
}

func validateRegistration(reg Registration) error {
	verr := models.NewValidationError()

	if strings.TrimSpace(reg.Name) == "" {
		verr.Add("name", "Full name is required.")
	}
	if !emailPattern.MatchString(strings.TrimSpace(reg.Email)) {
		verr.Add("email", "Enter a valid email.")
	}
	if len(reg.Password) < 6 {
		verr.Add("password", "Password must be at least 6 characters.")
	}
	if reg.Password != reg.ConfirmPassword {
		verr.Add("confirmPassword", "Passwords do not match")
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}
