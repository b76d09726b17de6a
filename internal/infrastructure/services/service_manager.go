package services

import (
	"context"
	"fmt"
	"time"

	"bsdsetup/internal/domain/errors"
	"bsdsetup/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// RCServiceManager controls FreeBSD rc.d services via sysrc(8) and
// service(8).
type RCServiceManager struct {
	executor interfaces.CommandExecutor
	logger   *logrus.Logger
	timeout  time.Duration
}

// NewRCServiceManager creates a new RCServiceManager.
func NewRCServiceManager(
	executor interfaces.CommandExecutor,
	logger *logrus.Logger,
	timeout time.Duration,
) interfaces.ServiceManager {
	return &RCServiceManager{
		executor: executor,
		logger:   logger,
		timeout:  timeout,
	}
}

// Enable persists the rc.conf enable flag for the service.
func (m *RCServiceManager) Enable(ctx context.Context, service string) error {
	flag := fmt.Sprintf("%s_enable=YES", service)
	if _, err := m.executor.ExecuteWithTimeout(ctx, m.timeout, "sysrc", flag); err != nil {
		return errors.NewSystemError(fmt.Sprintf("cannot enable service %s", service), err)
	}
	m.logger.WithField("service", service).Debug("Service enabled in rc.conf")
	return nil
}

// IsRunning reports whether the service is currently running. `service X
// status` exits non-zero when the service is stopped or unknown.
func (m *RCServiceManager) IsRunning(ctx context.Context, service string) bool {
	_, err := m.executor.ExecuteWithTimeout(ctx, m.timeout, "service", service, "status")
	return err == nil
}

// Start starts a stopped service.
func (m *RCServiceManager) Start(ctx context.Context, service string) error {
	if _, err := m.executor.ExecuteWithTimeout(ctx, m.timeout, "service", service, "start"); err != nil {
		return errors.NewSystemError(fmt.Sprintf("cannot start service %s", service), err)
	}
	m.logger.WithField("service", service).Info("Service started")
	return nil
}

// Restart restarts the service.
func (m *RCServiceManager) Restart(ctx context.Context, service string) error {
	if _, err := m.executor.ExecuteWithTimeout(ctx, m.timeout, "service", service, "restart"); err != nil {
		return errors.NewSystemError(fmt.Sprintf("cannot restart service %s", service), err)
	}
	m.logger.WithField("service", service).Info("Service restarted")
	return nil
}

// Reload asks a running service to reload its configuration.
func (m *RCServiceManager) Reload(ctx context.Context, service string) error {
	if _, err := m.executor.ExecuteWithTimeout(ctx, m.timeout, "service", service, "reload"); err != nil {
		return errors.NewSystemError(fmt.Sprintf("cannot reload service %s", service), err)
	}
	m.logger.WithField("service", service).Info("Service reloaded")
	return nil
}
