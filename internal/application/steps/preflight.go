package steps

import (
	"context"

	"bsdsetup/internal/domain/errors"
	"bsdsetup/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// Preflight runs before the pipeline. Missing root privileges are fatal
// before anything is installed or modified; an unreachable network only
// warns, since each step attempts its own network operations anyway.
type Preflight struct {
	privileges interfaces.PrivilegeChecker
	prober     interfaces.ReachabilityProber
	logger     *logrus.Logger
}

// NewPreflight creates a new Preflight.
func NewPreflight(
	privileges interfaces.PrivilegeChecker,
	prober interfaces.ReachabilityProber,
	logger *logrus.Logger,
) *Preflight {
	return &Preflight{
		privileges: privileges,
		prober:     prober,
		logger:     logger,
	}
}

// Check validates the execution environment.
func (p *Preflight) Check(ctx context.Context) error {
	if !p.privileges.IsRoot() {
		return errors.NewPrivilegeError("provisioning requires root privileges")
	}

	if err := p.prober.Probe(ctx); err != nil {
		p.logger.WithError(err).Warn("Network unreachable, steps needing downloads will likely fail")
	} else {
		p.logger.Debug("Network reachability confirmed")
	}

	return nil
}
