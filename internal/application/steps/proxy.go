package steps

import (
	"context"

	"bsdsetup/internal/domain/entities"
	"bsdsetup/internal/infrastructure/proxy"

	"github.com/sirupsen/logrus"
)

// DeployProxyStep writes the Caddyfile and brings the reverse proxy up.
// Fatal: the proxy is the public face of the host, and a reload failure
// means the configuration on disk is not the one serving traffic.
type DeployProxyStep struct {
	configurator *proxy.CaddyConfigurator
	logger       *logrus.Logger
	site         proxy.Site
}

// NewDeployProxyStep creates a new DeployProxyStep.
func NewDeployProxyStep(configurator *proxy.CaddyConfigurator, logger *logrus.Logger, site proxy.Site) *DeployProxyStep {
	return &DeployProxyStep{
		configurator: configurator,
		logger:       logger,
		site:         site,
	}
}

func (s *DeployProxyStep) Name() string {
	return "deploy-proxy"
}

func (s *DeployProxyStep) Policy() entities.FailurePolicy {
	return entities.PolicyFatal
}

// Run writes the Caddyfile and activates caddy.
func (s *DeployProxyStep) Run(ctx context.Context) error {
	if err := s.configurator.Configure(ctx, s.site); err != nil {
		return err
	}
	if err := s.configurator.Activate(ctx); err != nil {
		return err
	}

	s.logger.WithField("hostnames", s.site.Hostnames).Info("Reverse proxy deployed")
	return nil
}
