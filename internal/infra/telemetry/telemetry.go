package telemetry

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/CoreDX1/File-Explorer-2/internal/infra/config"
)

// Provider represents a telemetry provider handle. HTTP traffic is
// counted by the request middleware, so only security counters live here.
type Provider struct {
	loginFailures prometheus.Counter
	lockouts      prometheus.Counter
}

// Attach configures telemetry exporters and returns a provider handle.
func Attach(_ context.Context, cfg *config.AppConfig) (*Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	return &Provider{
		loginFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "filex",
			Name:      "login_failures_total",
			Help:      "Total number of failed credential checks",
		}),
		lockouts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "filex",
			Name:      "account_lockouts_total",
			Help:      "Total number of accounts locked by the failure threshold",
		}),
	}, nil
}

// LoginFailures exposes the failed-login metric.
func (p *Provider) LoginFailures() prometheus.Counter {
	if p == nil {
		return prometheus.NewCounter(prometheus.CounterOpts{})
	}
	return p.loginFailures
}

// Lockouts exposes the account-lockout metric.
func (p *Provider) Lockouts() prometheus.Counter {
	if p == nil {
		return prometheus.NewCounter(prometheus.CounterOpts{})
	}
	return p.lockouts
}
