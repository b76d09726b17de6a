package steps

import (
	"bytes"
	"context"
	"path/filepath"

	"bsdsetup/internal/domain/constants"
	"bsdsetup/internal/domain/entities"
	"bsdsetup/internal/domain/errors"
	"bsdsetup/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// SetTimezoneStep installs the configured zoneinfo file as /etc/localtime
// when it differs from the current one.
type SetTimezoneStep struct {
	fileSystem interfaces.FileSystem
	logger     *logrus.Logger
	timezone   string
}

// NewSetTimezoneStep creates a new SetTimezoneStep.
func NewSetTimezoneStep(fs interfaces.FileSystem, logger *logrus.Logger, timezone string) *SetTimezoneStep {
	return &SetTimezoneStep{
		fileSystem: fs,
		logger:     logger,
		timezone:   timezone,
	}
}

func (s *SetTimezoneStep) Name() string {
	return "set-timezone"
}

func (s *SetTimezoneStep) Policy() entities.FailurePolicy {
	return entities.PolicyWarn
}

// Run copies the zoneinfo file into place when needed.
func (s *SetTimezoneStep) Run(ctx context.Context) error {
	source := filepath.Join(constants.ZoneinfoDir, s.timezone)
	zoneinfo, err := s.fileSystem.ReadFile(source)
	if err != nil {
		return errors.NewNotFoundError("unknown timezone " + s.timezone)
	}

	if s.fileSystem.Exists(constants.LocaltimePath) {
		current, err := s.fileSystem.ReadFile(constants.LocaltimePath)
		if err == nil && bytes.Equal(current, zoneinfo) {
			s.logger.WithField("timezone", s.timezone).Debug("Timezone already set")
			return nil
		}
	}

	if err := s.fileSystem.WriteFile(constants.LocaltimePath, zoneinfo, constants.ConfigFilePermission); err != nil {
		return errors.NewSystemError("cannot write /etc/localtime", err)
	}

	s.logger.WithField("timezone", s.timezone).Info("Timezone configured")
	return nil
}
