package resolvers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"eventbook/internal/store"
	"eventbook/pkg/auth"
	"eventbook/pkg/logging"
)

// GraphQLMetrics holds the custom metrics recorded per operation
type GraphQLMetrics struct {
	Operations *prometheus.CounterVec   // labels: operation, status
	Duration   *prometheus.HistogramVec // labels: operation
}

// Resolver implements the GraphQL operations against the entity store.
// Resolver methods are self-contained and safe to invoke concurrently;
// all shared state lives in the store.
type Resolver struct {
	Store   store.Store
	Logger  logging.Logger
	Metrics *GraphQLMetrics

	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
}

// Config carries the resolver dependencies and credential settings.
type Config struct {
	Store      store.Store
	Logger     logging.Logger
	Metrics    *GraphQLMetrics
	JWTSecret  []byte
	TokenTTL   time.Duration
	BcryptCost int
}

// NewResolver creates a new resolver
func NewResolver(cfg Config) *Resolver {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = auth.DefaultTokenTTL
	}
	if cfg.BcryptCost <= 0 {
		cfg.BcryptCost = auth.DefaultPasswordCost
	}
	return &Resolver{
		Store:      cfg.Store,
		Logger:     cfg.Logger,
		Metrics:    cfg.Metrics,
		jwtSecret:  cfg.JWTSecret,
		tokenTTL:   cfg.TokenTTL,
		bcryptCost: cfg.BcryptCost,
	}
}

// observe records per-operation metrics; safe with nil Metrics.
func (r *Resolver) observe(operation string, start time.Time, err error) {
	if r.Metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	r.Metrics.Operations.WithLabelValues(operation, status).Inc()
	r.Metrics.Duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
