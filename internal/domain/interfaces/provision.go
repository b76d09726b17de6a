package interfaces

import (
	"context"

	"bsdsetup/internal/domain/entities"
)

// Step is a single named provisioning action. Steps are stateless between
// runs and must check current system state before acting, so re-running
// the whole pipeline is always safe.
type Step interface {
	// Name returns the step identifier used in logs and metrics.
	Name() string

	// Policy returns what a failure of this step means for the pipeline.
	Policy() entities.FailurePolicy

	// Run executes the step.
	Run(ctx context.Context) error
}

// ServiceManager controls rc.d services.
type ServiceManager interface {
	// Enable persists the service's enable flag (sysrc name_enable=YES).
	Enable(ctx context.Context, service string) error

	// IsRunning reports whether the service is currently running.
	IsRunning(ctx context.Context, service string) bool

	// Start starts a stopped service.
	Start(ctx context.Context, service string) error

	// Restart restarts the service.
	Restart(ctx context.Context, service string) error

	// Reload asks a running service to reload its configuration.
	Reload(ctx context.Context, service string) error
}

// PackageManager drives the system package manager.
type PackageManager interface {
	// Update refreshes the package repository catalogue.
	Update(ctx context.Context) error

	// IsInstalled reports whether a package is already installed.
	IsInstalled(ctx context.Context, name string) bool

	// Install installs a single package.
	Install(ctx context.Context, name string) error
}

// UserManager manages local user accounts.
type UserManager interface {
	// Exists reports whether the account exists.
	Exists(ctx context.Context, name string) bool

	// Create creates the account with the given login shell and home,
	// adding it to the wheel group.
	Create(ctx context.Context, name, shell, home string) error

	// SetPassword sets the account password from plain text.
	SetPassword(ctx context.Context, name, password string) error

	// ChownRecursive hands a directory tree to the account.
	ChownRecursive(ctx context.Context, name, path string) error
}

// RouteDetector finds the interface carrying the default route.
type RouteDetector interface {
	// DefaultInterface returns the default-route interface name.
	DefaultInterface(ctx context.Context) (entities.InterfaceName, error)
}

// BackupService preserves prior versions of generated config files.
type BackupService interface {
	// Backup copies the current content of path into the backup
	// directory with a timestamp suffix. A missing original is not an
	// error. Returns the backup path, or "" when nothing was backed up.
	Backup(ctx context.Context, path string) (string, error)
}
