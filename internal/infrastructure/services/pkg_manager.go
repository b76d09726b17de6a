package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"bsdsetup/internal/domain/errors"
	"bsdsetup/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// PkgManager drives pkg(8). Install runs with a fetch-job count so pkg can
// download packages concurrently; that parallelism is internal to pkg and
// opaque to the pipeline.
type PkgManager struct {
	executor interfaces.CommandExecutor
	logger   *logrus.Logger
	timeout  time.Duration
	jobs     int
}

// NewPkgManager creates a new PkgManager.
func NewPkgManager(
	executor interfaces.CommandExecutor,
	logger *logrus.Logger,
	timeout time.Duration,
	jobs int,
) interfaces.PackageManager {
	return &PkgManager{
		executor: executor,
		logger:   logger,
		timeout:  timeout,
		jobs:     jobs,
	}
}

// Update refreshes the repository catalogue.
func (m *PkgManager) Update(ctx context.Context) error {
	if _, err := m.executor.ExecuteWithTimeout(ctx, m.timeout, "pkg", "update", "-f"); err != nil {
		return errors.NewNetworkError("pkg catalogue update failed", err)
	}
	m.logger.Debug("Package catalogue updated")
	return nil
}

// IsInstalled reports whether a package is already installed. `pkg info`
// exits non-zero for unknown packages.
func (m *PkgManager) IsInstalled(ctx context.Context, name string) bool {
	_, err := m.executor.ExecuteWithTimeout(ctx, m.timeout, "pkg", "info", "-e", name)
	return err == nil
}

// Install installs a single package.
func (m *PkgManager) Install(ctx context.Context, name string) error {
	args := []string{"-o", "FETCH_JOBS=" + strconv.Itoa(m.jobs), "install", "-y", name}
	if _, err := m.executor.ExecuteWithTimeout(ctx, m.timeout, "pkg", args...); err != nil {
		return errors.NewSystemError(fmt.Sprintf("cannot install package %s", name), err)
	}
	m.logger.WithField("package", name).Info("Package installed")
	return nil
}
