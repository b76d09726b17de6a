package adapters

import (
	"os"

	"bsdsetup/internal/domain/interfaces"
)

// RealPrivilegeChecker inspects the effective UID of the process.
type RealPrivilegeChecker struct{}

// NewRealPrivilegeChecker creates a new RealPrivilegeChecker.
func NewRealPrivilegeChecker() interfaces.PrivilegeChecker {
	return &RealPrivilegeChecker{}
}

// IsRoot reports whether the process runs with effective UID 0.
func (c *RealPrivilegeChecker) IsRoot() bool {
	return os.Geteuid() == 0
}
