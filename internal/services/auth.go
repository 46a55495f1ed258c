package services

import (
	"context"
	"errors"

	"github.com/sbilibin2017/gw-cambio/internal/logger"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

// Error variables
var (
	ErrAdminNotConfigured = errors.New("admin password not configured")
	ErrInvalidCredentials = errors.New("invalid password")
)

// JWTGenerator defines an interface for generating admin JWT tokens.
type JWTGenerator interface {
	Generate(ctx context.Context) (string, error)
}

// AdminAuthService checks the administrator password and issues tokens.
type AdminAuthService struct {
	passwordHash []byte
	jwt          JWTGenerator
}

// NewAdminAuthService hashes the configured admin password.
// An empty password leaves login disabled.
func NewAdminAuthService(password string, jwt JWTGenerator) (*AdminAuthService, error) {
	svc := &AdminAuthService{jwt: jwt}
	if password == "" {
		logger.Log.Warnw("admin password not configured, rate updates are disabled")
		return svc, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	svc.passwordHash = hash
	return svc, nil
}

// Login authenticates the administrator and returns a JWT token.
func (svc *AdminAuthService) Login(ctx context.Context, password string) (string, error) {
	if len(svc.passwordHash) == 0 {
		logger.Log.Errorw("admin login attempted without configured password")
		return "", ErrAdminNotConfigured
	}

	if err := bcrypt.CompareHashAndPassword(svc.passwordHash, []byte(password)); err != nil {
		logger.Log.Errorw("invalid admin credentials")
		return "", ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	return token, nil
}
