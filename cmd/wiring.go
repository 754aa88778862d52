package main

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"gitlab.com/codejudge.net/internal/adapter/catalog/builtin"
	"gitlab.com/codejudge.net/internal/adapter/catalog/yamlfile"
	"gitlab.com/codejudge.net/internal/adapter/jsruntime"
	"gitlab.com/codejudge.net/internal/adapter/postgres/problemrepository"
	"gitlab.com/codejudge.net/internal/adapter/redis/resultport"
	"gitlab.com/codejudge.net/internal/config"
	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/core/services/judge"
	"gitlab.com/codejudge.net/internal/core/services/problem"
	"gitlab.com/codejudge.net/internal/core/services/submission"
	"gitlab.com/codejudge.net/internal/static/errs"
)

// application holds the wired services and whatever must be closed on exit
type application struct {
	catalog       *problem.Catalog
	submissionSvc *submission.SubmissionService
	closers       []func() error
}

func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
}

func buildApplication(ctx context.Context, cfg *config.AppConfig, withResults bool, logger primary.Logger) (*application, error) {
	app := &application{}

	source, err := problemSource(ctx, cfg, app, logger)
	if err != nil {
		app.Close()
		return nil, err
	}
	catalog, err := problem.NewCatalogFromSource(ctx, source)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.catalog = catalog
	logger.Info("Problem catalog ready", "source", cfg.CatalogConfig.Source, "problems", catalog.Len())

	var resultRepo secondary.ResultRepository
	if withResults && cfg.RedisConfig.Enabled {
		redisClient := setupRedis(cfg.RedisConfig)
		app.closers = append(app.closers, redisClient.Close)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis unreachable, submission results may not be stored", "addr", cfg.RedisConfig.Url, "error", err)
		}
		resultRepo = resultport.NewResultRepository(redisClient, cfg.RedisConfig.ResultTTL, logger)
	}

	executor := jsruntime.NewExecutor(cfg.ExecutorConfig, logger)
	judgeSvc := judge.NewJudgeService(executor, cfg.ExecutorConfig, logger)
	app.submissionSvc = submission.NewSubmissionService(catalog, judgeSvc, resultRepo, cfg.JudgeSvcCfg, logger)
	return app, nil
}

func problemSource(ctx context.Context, cfg *config.AppConfig, app *application, logger primary.Logger) (secondary.ProblemSource, error) {
	switch cfg.CatalogConfig.Source {
	case config.CatalogSourceBuiltin:
		return builtin.NewSource(), nil
	case config.CatalogSourceYaml:
		return yamlfile.NewSource(cfg.CatalogConfig.File, logger), nil
	case config.CatalogSourcePostgres:
		db, err := setupDatabase(ctx, cfg.PostgresConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to set up database: %w", err)
		}
		app.closers = append(app.closers, db.Close)
		repo := problemrepository.NewProblemRepository(db, cfg.PostgresConfig.Schema, logger)
		if err := repo.EnsureTables(ctx, builtin.Problems()); err != nil {
			return nil, err
		}
		return repo, nil
	}
	return nil, fmt.Errorf("%w: %q", errs.UnknownCatalogKind, cfg.CatalogConfig.Source)
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(ctx context.Context, cfg *config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Url)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// setupRedis sets up the Redis connection
func setupRedis(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Url,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}
