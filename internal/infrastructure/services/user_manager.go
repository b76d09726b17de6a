package services

import (
	"context"
	"fmt"
	"time"

	"bsdsetup/internal/domain/errors"
	"bsdsetup/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// PWUserManager manages local accounts via pw(8).
type PWUserManager struct {
	executor interfaces.CommandExecutor
	logger   *logrus.Logger
	timeout  time.Duration
}

// NewPWUserManager creates a new PWUserManager.
func NewPWUserManager(
	executor interfaces.CommandExecutor,
	logger *logrus.Logger,
	timeout time.Duration,
) interfaces.UserManager {
	return &PWUserManager{
		executor: executor,
		logger:   logger,
		timeout:  timeout,
	}
}

// Exists reports whether the account exists. `pw usershow` exits non-zero
// for unknown accounts.
func (m *PWUserManager) Exists(ctx context.Context, name string) bool {
	_, err := m.executor.ExecuteWithTimeout(ctx, m.timeout, "pw", "usershow", name)
	return err == nil
}

// Create creates the account with home directory and wheel membership.
func (m *PWUserManager) Create(ctx context.Context, name, shell, home string) error {
	args := []string{
		"useradd", name,
		"-m",
		"-d", home,
		"-s", shell,
		"-G", "wheel",
		"-c", "provisioned account",
	}
	if _, err := m.executor.ExecuteWithTimeout(ctx, m.timeout, "pw", args...); err != nil {
		return errors.NewSystemError(fmt.Sprintf("cannot create user %s", name), err)
	}
	m.logger.WithFields(logrus.Fields{
		"user":  name,
		"shell": shell,
	}).Info("User account created")
	return nil
}

// SetPassword sets the account password from plain text. pw reads the
// password from fd 0 when -h 0 is given, so it never appears in the
// process arguments.
func (m *PWUserManager) SetPassword(ctx context.Context, name, password string) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	if _, err := m.executor.ExecuteWithInput(ctx, password, "pw", "usermod", name, "-h", "0"); err != nil {
		return errors.NewSystemError(fmt.Sprintf("cannot set password for %s", name), err)
	}
	m.logger.WithField("user", name).Info("Initial password set")
	return nil
}

// ChownRecursive hands a directory tree to the account.
func (m *PWUserManager) ChownRecursive(ctx context.Context, name, path string) error {
	owner := fmt.Sprintf("%s:%s", name, name)
	if _, err := m.executor.ExecuteWithTimeout(ctx, m.timeout, "chown", "-R", owner, path); err != nil {
		return errors.NewSystemError(fmt.Sprintf("cannot chown %s to %s", path, name), err)
	}
	m.logger.WithFields(logrus.Fields{
		"user": name,
		"path": path,
	}).Debug("Ownership fixed")
	return nil
}
