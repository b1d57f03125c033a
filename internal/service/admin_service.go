package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/abonnet/univ-edt-api/internal/store"
	appErrors "github.com/abonnet/univ-edt-api/pkg/errors"
)

// AdminService exposes the operational endpoints: state dump, full reset
// and the artificial response delay.
type AdminService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewAdminService constructs AdminService.
func NewAdminService(s *store.Store, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{store: s, logger: logger}
}

// Dump returns the full store state as indented JSON.
func (s *AdminService) Dump() ([]byte, error) {
	s.store.Lock()
	defer s.store.Unlock()

	data, err := s.store.DumpJSON()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to dump store")
	}
	return data, nil
}

// Reset drops every table and reruns the seed procedure.
func (s *AdminService) Reset() {
	s.store.Lock()
	defer s.store.Unlock()

	s.store.Reset()
	s.logger.Warn("store reset to seeded state")
}

// Delay returns the configured artificial response delay.
func (s *AdminService) Delay() time.Duration {
	s.store.Lock()
	defer s.store.Unlock()
	return s.store.DelayGet()
}

// SetDelay stores the artificial response delay applied after each request.
func (s *AdminService) SetDelay(d time.Duration) error {
	if d < 0 {
		return appErrors.Clone(appErrors.ErrValidation, "delay must not be negative")
	}

	s.store.Lock()
	defer s.store.Unlock()

	s.store.DelaySet(d)
	s.logger.Info("artificial delay updated", zap.Duration("delay", d))
	return nil
}
