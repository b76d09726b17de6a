package steps

import (
	"context"

	"bsdsetup/internal/domain/entities"
	"bsdsetup/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// BootstrapPackagesStep refreshes the package catalogue and installs the
// configured package list. A failed catalogue refresh or a single failed
// package only warns: every other package still gets its chance, and later
// steps decide for themselves whether their tools are present.
type BootstrapPackagesStep struct {
	packages interfaces.PackageManager
	logger   *logrus.Logger
	list     []string
}

// NewBootstrapPackagesStep creates a new BootstrapPackagesStep.
func NewBootstrapPackagesStep(
	packages interfaces.PackageManager,
	logger *logrus.Logger,
	list []string,
) *BootstrapPackagesStep {
	return &BootstrapPackagesStep{
		packages: packages,
		logger:   logger,
		list:     list,
	}
}

func (s *BootstrapPackagesStep) Name() string {
	return "bootstrap-packages"
}

func (s *BootstrapPackagesStep) Policy() entities.FailurePolicy {
	return entities.PolicyWarn
}

// Run updates the catalogue and installs missing packages.
func (s *BootstrapPackagesStep) Run(ctx context.Context) error {
	if err := s.packages.Update(ctx); err != nil {
		s.logger.WithError(err).Warn("Package catalogue update failed, installing from cached catalogue")
	}

	installed := 0
	failed := 0
	for _, name := range s.list {
		if s.packages.IsInstalled(ctx, name) {
			s.logger.WithField("package", name).Debug("Package already installed")
			continue
		}
		if err := s.packages.Install(ctx, name); err != nil {
			failed++
			s.logger.WithError(err).WithField("package", name).Warn("Package installation failed")
			continue
		}
		installed++
	}

	s.logger.WithFields(logrus.Fields{
		"requested": len(s.list),
		"installed": installed,
		"failed":    failed,
	}).Info("Package installation finished")

	return nil
}
