package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"housing-credit/config"
	"housing-credit/repository"
	"housing-credit/service"
)

const defaultSQLitePath = "housing-credit.db"

// app bundles the configured service with the resources it owns.
type app struct {
	cfg     config.Config
	service *service.HousingCreditService
	closers []func() error
}

func loadApp() (*app, error) {
	cfg, err := config.Load(config.Path(flagConfig))
	if err != nil {
		return nil, err
	}
	return newApp(cfg)
}

func newApp(cfg config.Config) (*app, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	ttl, err := config.ParseDuration(cfg.Cache.TTL, time.Hour)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}

	repo, err := a.planRepository()
	if err != nil {
		return nil, err
	}
	cache, err := a.cacheRepository()
	if err != nil {
		a.Close()
		return nil, err
	}

	a.service = service.NewHousingCreditService(opts, repo, cache, ttl)
	return a, nil
}

func (a *app) planRepository() (repository.PlanRepository, error) {
	switch a.cfg.Storage.Backend {
	case "", "memory":
		return repository.NewPlanRepositoryMemory(), nil
	case "sqlite":
		path := a.cfg.Storage.SQLitePath
		if path == "" {
			path = defaultSQLitePath
		}
		repo, err := repository.OpenSQLitePlanRepository(path)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, repo.Close)
		return repo, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", a.cfg.Storage.Backend)
}

// cacheRepository returns nil when caching is disabled or redis is down.
func (a *app) cacheRepository() (repository.CacheRepository, error) {
	switch a.cfg.Cache.Backend {
	case "none":
		return nil, nil
	case "", "memory":
		return repository.NewMockCache(), nil
	case "redis":
		cache := repository.NewRedisCache(a.cfg.Cache.RedisAddr, a.cfg.Cache.Prefix)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := cache.Ping(ctx); err != nil {
			// El cache no es crítico
			log.Printf("Warning: redis at %s unavailable, caching disabled: %v", a.cfg.Cache.RedisAddr, err)
			cache.Close()
			return nil, nil
		}
		a.closers = append(a.closers, cache.Close)
		return cache, nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", a.cfg.Cache.Backend)
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Printf("Warning: closing resource: %v", err)
		}
	}
	a.closers = nil
}
