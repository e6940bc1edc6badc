package container

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"teakwood/storefront/internal/client"
	"teakwood/storefront/internal/config"
	"teakwood/storefront/internal/repository"
	"teakwood/storefront/internal/richtext"
	"teakwood/storefront/internal/server"
	"teakwood/storefront/internal/service"
	"teakwood/storefront/internal/state"
	"teakwood/storefront/internal/view"

	"github.com/benbjohnson/clock"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const sweepInterval = time.Minute

// Container holds all initialized components
type Container struct {
	Config *config.Config
	Client client.StorefrontClient
	Intake client.IntakeClient
	Leads  repository.LeadRepository
	Store  state.TransientStore

	Service *service.Service
	Server  *server.Server

	memory *state.MemoryTransientStore
	db     *pgxpool.Pool
	redis  *redis.Client
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}
	clk := clock.New()

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("✅ Connected to Redis successfully")

		container.redis = rdb
		container.Store = state.NewRedisTransientStore(rdb)
	} else {
		log.Info("Redis disabled, keeping notices in memory")
		container.memory = state.NewMemoryTransientStore(clk)
		container.Store = container.memory
	}

	if cfg.Database.Enabled {
		db, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			container.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		container.db = db

		leads := repository.NewLeadRepository(db)
		if err := leads.EnsureSchema(ctx); err != nil {
			container.Close()
			return nil, err
		}
		log.Info("✅ Lead archive ready")
		container.Leads = leads
	}

	container.Client = client.NewStorefrontClient(cfg.API)
	container.Intake = client.NewIntakeClient(cfg.Intake)

	container.Service = service.NewService(
		container.Client,
		container.Intake,
		container.Leads,
		container.Store,
		clk,
		view.Links{
			SiteURL:        cfg.Contact.SiteURL,
			WhatsAppNumber: cfg.Contact.WhatsAppNumber,
		},
	)

	srv, err := server.New(
		cfg.Server,
		cfg.Contact,
		view.Assets{
			BaseURL:         cfg.API.BaseURL,
			Fallback:        cfg.Assets.FallbackImage,
			ProductFallback: cfg.Assets.ProductFallbackImage,
		},
		container.Service,
		richtext.NewRenderer(),
	)
	if err != nil {
		container.Close()
		return nil, err
	}
	container.Server = srv

	return container, nil
}

// Run serves the storefront until ctx is cancelled
func (c *Container) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return c.Server.Run(ctx)
	})

	if c.memory != nil {
		g.Go(func() error {
			return c.memory.RunSweeper(ctx, sweepInterval)
		})
	}

	return g.Wait()
}

// Close performs cleanup when shutting down
func (c *Container) Close() {
	log.Info("Shutting down container...")

	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.WithError(err).Warn("Failed to close Redis client")
		}
	}

	log.Info("Container shut down successfully")
}
