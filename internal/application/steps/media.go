package steps

import (
	"context"

	"bsdsetup/internal/domain/constants"
	"bsdsetup/internal/domain/entities"
	"bsdsetup/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// EnableMediaServiceStep enables and starts the media server. The host is
// usable without it, so failures only warn.
type EnableMediaServiceStep struct {
	services interfaces.ServiceManager
	logger   *logrus.Logger
}

// NewEnableMediaServiceStep creates a new EnableMediaServiceStep.
func NewEnableMediaServiceStep(services interfaces.ServiceManager, logger *logrus.Logger) *EnableMediaServiceStep {
	return &EnableMediaServiceStep{
		services: services,
		logger:   logger,
	}
}

func (s *EnableMediaServiceStep) Name() string {
	return "enable-media-service"
}

func (s *EnableMediaServiceStep) Policy() entities.FailurePolicy {
	return entities.PolicyWarn
}

// Run enables the service and starts it when not already running.
func (s *EnableMediaServiceStep) Run(ctx context.Context) error {
	if err := s.services.Enable(ctx, constants.ServicePlex); err != nil {
		return err
	}

	if s.services.IsRunning(ctx, constants.ServicePlex) {
		s.logger.Debug("Media service already running")
		return nil
	}

	if err := s.services.Start(ctx, constants.ServicePlex); err != nil {
		return err
	}

	s.logger.Info("Media service enabled and started")
	return nil
}
