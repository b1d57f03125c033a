package service

import (
	"crypto/rand"
	"math/big"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/abonnet/univ-edt-api/internal/dto"
	"github.com/abonnet/univ-edt-api/internal/models"
	"github.com/abonnet/univ-edt-api/internal/store"
	appErrors "github.com/abonnet/univ-edt-api/pkg/errors"
)

const tokenLength = 25

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// AuthService issues and revokes opaque session tokens.
type AuthService struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(s *store.Store, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{store: s, validator: validate, logger: logger}
}

// Login checks the credentials and registers a fresh session token.
// Passwords are stored and compared in clear, the dataset is a disposable
// training fixture without real accounts.
func (s *AuthService) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	token, err := generateToken()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session token")
	}

	s.store.Lock()
	defer s.store.Unlock()

	user, ok := s.store.GetUser(req.Username)
	if !ok || user.Password != req.Password {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	s.store.InsertToken(token, user.Username)
	s.logger.Info("session opened", zap.String("username", user.Username))

	return &dto.LoginResponse{
		Token: token,
		User: dto.LoginUser{
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Kind:      string(user.Kind.Role()),
		},
	}, nil
}

// Logout drops the session token.
func (s *AuthService) Logout(token string) error {
	s.store.Lock()
	defer s.store.Unlock()

	if !s.store.RemoveToken(token) {
		return appErrors.Clone(appErrors.ErrUnauthorized, "unknown session token")
	}
	return nil
}

// Resolve maps a session token back to its account.
func (s *AuthService) Resolve(token string) (models.User, error) {
	s.store.Lock()
	defer s.store.Unlock()

	username, ok := s.store.UsernameForToken(token)
	if !ok {
		return models.User{}, appErrors.Clone(appErrors.ErrUnauthorized, "unknown session token")
	}

	user, ok := s.store.GetUser(username)
	if !ok {
		return models.User{}, appErrors.Clone(appErrors.ErrUnauthorized, "session user no longer exists")
	}
	return user, nil
}

// generateToken draws an alphanumeric session token from crypto/rand.
func generateToken() (string, error) {
	max := big.NewInt(int64(len(tokenAlphabet)))
	out := make([]byte, tokenLength)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = tokenAlphabet[n.Int64()]
	}
	return string(out), nil
}
