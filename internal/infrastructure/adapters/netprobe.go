package adapters

import (
	"context"
	"net/http"
	"time"

	"bsdsetup/internal/domain/errors"
	"bsdsetup/internal/domain/interfaces"
)

// HTTPReachabilityProber checks outbound reachability with a single HEAD
// request against the package mirror.
type HTTPReachabilityProber struct {
	client   *http.Client
	endpoint string
	timeout  time.Duration
}

// NewHTTPReachabilityProber creates a prober for the given endpoint.
func NewHTTPReachabilityProber(endpoint string, timeout time.Duration) interfaces.ReachabilityProber {
	return &HTTPReachabilityProber{
		client:   &http.Client{},
		endpoint: endpoint,
		timeout:  timeout,
	}
}

// Probe performs the reachability check. Any HTTP status counts as
// reachable; only transport-level failures are reported.
func (p *HTTPReachabilityProber) Probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.endpoint, nil)
	if err != nil {
		return errors.NewNetworkError("build reachability request", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return errors.NewNetworkError("network reachability probe failed", err)
	}
	defer resp.Body.Close()

	return nil
}
