package interfaces

import (
	"context"
	"os"
	"time"
)

// CommandExecutor runs system commands.
type CommandExecutor interface {
	// Execute runs a command and returns its stdout.
	Execute(ctx context.Context, command string, args ...string) ([]byte, error)

	// ExecuteWithTimeout runs a command under a deadline.
	ExecuteWithTimeout(ctx context.Context, timeout time.Duration, command string, args ...string) ([]byte, error)

	// ExecuteWithInput runs a command with the given stdin content.
	ExecuteWithInput(ctx context.Context, input string, command string, args ...string) ([]byte, error)
}

// FileSystem abstracts filesystem operations.
type FileSystem interface {
	// ReadFile reads a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating parent directories.
	WriteFile(path string, data []byte, perm os.FileMode) error

	// Exists reports whether a file or directory exists.
	Exists(path string) bool

	// MkdirAll creates a directory tree.
	MkdirAll(path string, perm os.FileMode) error

	// Remove deletes a file or empty directory.
	Remove(path string) error

	// ListFiles returns the names of regular files in a directory.
	ListFiles(path string) ([]string, error)
}

// Clock abstracts time for testable backup naming and durations.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// PrivilegeChecker reports the privileges of the current process.
type PrivilegeChecker interface {
	// IsRoot reports whether the process runs with effective UID 0.
	IsRoot() bool
}

// ReachabilityProber checks basic outbound network reachability.
type ReachabilityProber interface {
	// Probe performs a cheap request against the configured endpoint.
	// A failure means "likely offline", never aborts provisioning.
	Probe(ctx context.Context) error
}
