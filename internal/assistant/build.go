package assistant

import (
	"context"
	"errors"
	"fmt"

	"nexus/internal/cache"
	"nexus/internal/client"
	"nexus/internal/config"
	"nexus/internal/intent"
	"nexus/internal/logging"
	"nexus/internal/metrics"
	"nexus/internal/ratelimit"
	"nexus/internal/resolver"
	"nexus/internal/robustness"
	"nexus/internal/search"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Services is a fully wired assistant and the resources it owns.
type Services struct {
	Assistant *Assistant
	Metrics   *metrics.Metrics
	Registry  *prometheus.Registry

	closers []func() error
}

// Build wires clients, breakers, cache and adapters from cfg. An
// unreachable cache is logged and skipped.
func Build(ctx context.Context, cfg *config.Config) (*Services, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	s := &Services{Metrics: m, Registry: reg}

	classifierClient, err := client.NewClient(ctx, cfg, client.RoleClassifier)
	if err != nil {
		return nil, fmt.Errorf("create classifier client: %w", err)
	}
	s.closers = append(s.closers, classifierClient.Close)

	searchClient, err := client.NewClient(ctx, cfg, client.RoleSearch)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("create search client: %w", err)
	}
	s.closers = append(s.closers, searchClient.Close)

	if cfg.RateLimit.Enabled {
		// One quota per Gemini key.
		limiter := ratelimit.NewLimiter(cfg.RateLimit)
		searchClient = ratelimit.Limit(searchClient, limiter)
		if cfg.Model.Provider == config.ProviderGemini {
			classifierClient = ratelimit.Limit(classifierClient, limiter)
		}
	}

	if cfg.Breaker.Enabled {
		classifierClient = guard(classifierClient, "classifier", cfg.Breaker, m)
		searchClient = guard(searchClient, "search", cfg.Breaker, m)
	}

	store, err := cache.New(ctx, cfg.Cache)
	if err != nil {
		logging.Warn("lookup cache unavailable, continuing without it", "backend", cfg.Cache.Backend, "error", err)
		store = nil
	}
	if store != nil {
		s.closers = append(s.closers, store.Close)
	}

	res := resolver.New(resolver.Options{
		Searcher:      search.NewSearcher(searchClient, store, m),
		Videos:        search.NewVideoFinder(searchClient, store, m),
		SearchTimeout: cfg.Timeouts.Search,
		VideoTimeout:  cfg.Timeouts.VideoLookup,
	})
	classifier := intent.NewClassifier(classifierClient, cfg.Timeouts.Classify, m)

	s.Assistant = New(classifier, res, m)
	return s, nil
}

func guard(c client.Client, name string, cfg config.BreakerConfig, m *metrics.Metrics) client.Client {
	m.SetBreakerState(name, int(robustness.StateClosed))
	breaker := robustness.NewCircuitBreaker(robustness.Settings{
		Name:             name,
		FailureThreshold: cfg.FailureThreshold,
		Cooldown:         cfg.Cooldown,
		OnStateChange: func(name string, _, to robustness.State) {
			m.SetBreakerState(name, int(to))
		},
	})
	return robustness.Guard(c, breaker)
}

// Close releases clients and the cache.
func (s *Services) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
