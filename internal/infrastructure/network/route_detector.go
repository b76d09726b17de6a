package network

import (
	"bufio"
	"context"
	"strings"
	"time"

	"bsdsetup/internal/domain/entities"
	"bsdsetup/internal/domain/errors"
	"bsdsetup/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// DefaultRouteDetector finds the interface carrying the default route by
// querying the routing table. Primary source is `route -n get default`;
// `netstat -rn` is the fallback when the route command yields nothing.
type DefaultRouteDetector struct {
	executor interfaces.CommandExecutor
	logger   *logrus.Logger
	timeout  time.Duration
}

// NewDefaultRouteDetector creates a new DefaultRouteDetector.
func NewDefaultRouteDetector(
	executor interfaces.CommandExecutor,
	logger *logrus.Logger,
	timeout time.Duration,
) interfaces.RouteDetector {
	return &DefaultRouteDetector{
		executor: executor,
		logger:   logger,
		timeout:  timeout,
	}
}

// DefaultInterface returns the default-route interface name. The firewall
// cannot be generated without it, so callers treat failure as fatal.
func (d *DefaultRouteDetector) DefaultInterface(ctx context.Context) (entities.InterfaceName, error) {
	if name, ok := d.fromRouteGet(ctx); ok {
		return d.validated(name)
	}

	d.logger.Debug("route -n get default gave no interface, falling back to netstat")

	if name, ok := d.fromNetstat(ctx); ok {
		return d.validated(name)
	}

	return entities.InterfaceName{}, errors.NewNotFoundError(
		"default-route interface detection failed: no default route in the routing table")
}

// fromRouteGet parses the `interface:` line of `route -n get default`.
func (d *DefaultRouteDetector) fromRouteGet(ctx context.Context) (string, bool) {
	output, err := d.executor.ExecuteWithTimeout(ctx, d.timeout, "route", "-n", "get", "default")
	if err != nil {
		return "", false
	}

	scanner := bufio.NewScanner(strings.NewReader(string(output)))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if value, found := strings.CutPrefix(line, "interface:"); found {
			if name := strings.TrimSpace(value); name != "" {
				return name, true
			}
		}
	}

	return "", false
}

// fromNetstat picks the interface column of the IPv4 default route in
// `netstat -rn` output.
func (d *DefaultRouteDetector) fromNetstat(ctx context.Context) (string, bool) {
	output, err := d.executor.ExecuteWithTimeout(ctx, d.timeout, "netstat", "-rn", "-f", "inet")
	if err != nil {
		return "", false
	}

	scanner := bufio.NewScanner(strings.NewReader(string(output)))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) >= 4 && fields[0] == "default" {
			return fields[3], true
		}
	}

	return "", false
}

func (d *DefaultRouteDetector) validated(name string) (entities.InterfaceName, error) {
	iface, err := entities.NewInterfaceName(name)
	if err != nil {
		return entities.InterfaceName{}, errors.NewValidationError(
			"default-route interface detection returned an unusable name: "+name, err)
	}
	d.logger.WithField("interface", iface.String()).Info("Default-route interface detected")
	return iface, nil
}
