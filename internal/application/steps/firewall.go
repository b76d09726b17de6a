package steps

import (
	"context"

	"bsdsetup/internal/domain/entities"
	"bsdsetup/internal/domain/interfaces"
	"bsdsetup/internal/infrastructure/firewall"

	"github.com/sirupsen/logrus"
)

// ConfigureFirewallStep detects the external interface, renders the pf
// ruleset for it, and activates pf. Fatal: a host with a half-applied
// firewall is worse than an aborted run.
type ConfigureFirewallStep struct {
	routes       interfaces.RouteDetector
	configurator *firewall.PFConfigurator
	logger       *logrus.Logger
	tcpPorts     []int
	udpPorts     []int
}

// NewConfigureFirewallStep creates a new ConfigureFirewallStep.
func NewConfigureFirewallStep(
	routes interfaces.RouteDetector,
	configurator *firewall.PFConfigurator,
	logger *logrus.Logger,
	tcpPorts, udpPorts []int,
) *ConfigureFirewallStep {
	return &ConfigureFirewallStep{
		routes:       routes,
		configurator: configurator,
		logger:       logger,
		tcpPorts:     tcpPorts,
		udpPorts:     udpPorts,
	}
}

func (s *ConfigureFirewallStep) Name() string {
	return "configure-firewall"
}

func (s *ConfigureFirewallStep) Policy() entities.FailurePolicy {
	return entities.PolicyFatal
}

// Run writes the ruleset for the default-route interface and activates pf.
func (s *ConfigureFirewallStep) Run(ctx context.Context) error {
	iface, err := s.routes.DefaultInterface(ctx)
	if err != nil {
		return err
	}

	policy := entities.FirewallPolicy{
		Interface: iface,
		TCPPorts:  s.tcpPorts,
		UDPPorts:  s.udpPorts,
	}

	if err := s.configurator.Configure(ctx, policy); err != nil {
		return err
	}
	if err := s.configurator.Activate(ctx); err != nil {
		return err
	}

	s.logger.WithField("interface", iface.String()).Info("Firewall configured")
	return nil
}
