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

// maintenanceScript runs from periodic(8) weekly: refresh the package
// catalogue, apply upgrades, drop orphaned dependencies.
const maintenanceScript = `#!/bin/sh
# Generated by bsdsetup. Manual edits will be overwritten on the next run.
pkg update -f
pkg upgrade -y
pkg autoremove -y
`

const maintenanceScriptName = "510.bsdsetup-pkg-maintenance"

// ConfigurePeriodicStep installs the weekly package-maintenance script and
// makes sure cron is enabled so periodic(8) actually fires.
type ConfigurePeriodicStep struct {
	fileSystem interfaces.FileSystem
	backup     interfaces.BackupService
	services   interfaces.ServiceManager
	logger     *logrus.Logger
}

// NewConfigurePeriodicStep creates a new ConfigurePeriodicStep.
func NewConfigurePeriodicStep(
	fs interfaces.FileSystem,
	backup interfaces.BackupService,
	services interfaces.ServiceManager,
	logger *logrus.Logger,
) *ConfigurePeriodicStep {
	return &ConfigurePeriodicStep{
		fileSystem: fs,
		backup:     backup,
		services:   services,
		logger:     logger,
	}
}

func (s *ConfigurePeriodicStep) Name() string {
	return "configure-periodic"
}

func (s *ConfigurePeriodicStep) Policy() entities.FailurePolicy {
	return entities.PolicyWarn
}

// Run installs the maintenance script and enables cron.
func (s *ConfigurePeriodicStep) Run(ctx context.Context) error {
	path := filepath.Join(constants.PeriodicWeeklyDir, maintenanceScriptName)

	if s.fileSystem.Exists(path) {
		current, err := s.fileSystem.ReadFile(path)
		if err == nil && bytes.Equal(current, []byte(maintenanceScript)) {
			s.logger.Debug("Maintenance script already installed")
			return s.services.Enable(ctx, constants.ServiceCron)
		}
	}

	// An operator-edited script must survive as a backup before the
	// generated one replaces it.
	if _, err := s.backup.Backup(ctx, path); err != nil {
		return err
	}

	if err := s.fileSystem.WriteFile(path, []byte(maintenanceScript), constants.ScriptPermission); err != nil {
		return errors.NewSystemError("cannot install maintenance script", err)
	}

	if err := s.services.Enable(ctx, constants.ServiceCron); err != nil {
		return err
	}

	s.logger.WithField("path", path).Info("Weekly maintenance configured")
	return nil
}
