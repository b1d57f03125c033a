package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/abonnet/univ-edt-api/internal/dto"
	"github.com/abonnet/univ-edt-api/internal/models"
	"github.com/abonnet/univ-edt-api/internal/store"
	appErrors "github.com/abonnet/univ-edt-api/pkg/errors"
)

// ProfileService lets authenticated users manage their own account.
type ProfileService struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProfileService constructs ProfileService.
func NewProfileService(s *store.Store, validate *validator.Validate, logger *zap.Logger) *ProfileService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{store: s, validator: validate, logger: logger}
}

// Update edits the calling user's own account, reporting whether anything
// changed. Only administrators may change their names. A password change
// carries both the old and the new password; the old one must match.
func (s *ProfileService) Update(username string, req dto.UpdateProfileRequest) (bool, error) {
	s.store.Lock()
	defer s.store.Unlock()

	user, ok := s.store.GetUser(username)
	if !ok {
		return false, appErrors.Clone(appErrors.ErrUnauthorized, "unknown session user")
	}

	if _, admin := user.Kind.(models.Administrator); !admin {
		if req.FirstName != nil || req.LastName != nil {
			return false, appErrors.Clone(appErrors.ErrUnauthorized, "only administrators may change their name")
		}
	}

	modified := false

	switch {
	case req.OldPassword != nil && req.Password != nil:
		if user.Password != *req.OldPassword {
			return false, appErrors.Clone(appErrors.ErrForbidden, "invalid old password")
		}
		user.Password = *req.Password
		modified = true
	case req.OldPassword != nil || req.Password != nil:
		return false, appErrors.Clone(appErrors.ErrValidation, "password changes need both the old and the new password")
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
		modified = true
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
		modified = true
	}

	if modified {
		s.store.UpdateUser(user)
	}
	return modified, nil
}
