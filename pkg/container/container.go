// Package container wires the application object graph in one place so
// main stays small and the dependency flow stays visible.
package container

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/config"
	authorhandler "bookcatalog-backend/internal/domains/author/handler"
	authorrepo "bookcatalog-backend/internal/domains/author/repository"
	authorservice "bookcatalog-backend/internal/domains/author/service"
	bookhandler "bookcatalog-backend/internal/domains/book/handler"
	bookrepo "bookcatalog-backend/internal/domains/book/repository"
	bookservice "bookcatalog-backend/internal/domains/book/service"
	"bookcatalog-backend/internal/domains/rbac"
	reporthandler "bookcatalog-backend/internal/domains/report/handler"
	reportrepo "bookcatalog-backend/internal/domains/report/repository"
	reportservice "bookcatalog-backend/internal/domains/report/service"
	subhandler "bookcatalog-backend/internal/domains/subscription/handler"
	subrepo "bookcatalog-backend/internal/domains/subscription/repository"
	subservice "bookcatalog-backend/internal/domains/subscription/service"
	userhandler "bookcatalog-backend/internal/domains/user/handler"
	userrepo "bookcatalog-backend/internal/domains/user/repository"
	userservice "bookcatalog-backend/internal/domains/user/service"
	infracache "bookcatalog-backend/internal/infrastructure/cache"
	"bookcatalog-backend/internal/infrastructure/database"
	"bookcatalog-backend/internal/infrastructure/sms"
	"bookcatalog-backend/internal/infrastructure/storage"
	"bookcatalog-backend/pkg/jwt"
)

// Container holds every long-lived dependency of the application.
type Container struct {
	Config *config.Config

	DB    *database.PostgresDB
	Cache *infracache.RedisCache

	JWTManager *jwt.Manager
	Gate       *rbac.Gate

	AuthorHandler       *authorhandler.AuthorHandler
	BookHandler         *bookhandler.BookHandler
	SubscriptionHandler *subhandler.SubscriptionHandler
	UserHandler         *userhandler.UserHandler
	ReportHandler       *reporthandler.ReportHandler
}

// New builds the full graph: infrastructure first, then repositories,
// services and handlers.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	// Infrastructure.
	c.DB = database.NewPostgresDB(&cfg.Database)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	if err := c.DB.Migrate(); err != nil {
		c.DB.Close()
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	c.Cache = infracache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Cache.Ping(ctx); err != nil {
		c.DB.Close()
		return nil, fmt.Errorf("redis init failed: %w", err)
	}

	var sender sms.Sender
	if cfg.SMS.UseMock {
		sender = sms.NewMockSender()
		log.Info().Msg("using mock sms sender")
	} else {
		sender = sms.NewSMSPilotClient(cfg.SMS)
	}

	coverStorage := storage.NewCoverStorage(cfg.Upload.WebRoot, cfg.Upload.MaxFileSize)
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	pool := c.DB.Pool

	// Access control.
	roleStore := rbac.NewPostgresStore(pool)
	c.Gate = rbac.NewGate(roleStore)

	// Repositories.
	authorRepository := authorrepo.NewPostgresRepository(pool, c.Cache)
	bookRepository := bookrepo.NewPostgresRepository(pool, c.Cache)
	subscriptionRepository := subrepo.NewPostgresRepository(pool)
	userRepository := userrepo.NewPostgresRepository(pool)
	reportRepository := reportrepo.NewPostgresRepository(pool)

	// Services.
	authorService := authorservice.NewAuthorService(authorRepository)
	subscriptionService := subservice.NewSubscriptionService(subscriptionRepository, sender)
	bookService := bookservice.NewBookService(bookRepository, coverStorage, subscriptionService)
	userService := userservice.NewUserService(pool, userRepository, roleStore, c.JWTManager)
	reportService := reportservice.NewReportService(reportRepository, c.Cache)

	// Handlers.
	c.AuthorHandler = authorhandler.NewAuthorHandler(authorService)
	c.BookHandler = bookhandler.NewBookHandler(bookService)
	c.SubscriptionHandler = subhandler.NewSubscriptionHandler(subscriptionService)
	c.UserHandler = userhandler.NewUserHandler(userService)
	c.ReportHandler = reporthandler.NewReportHandler(reportService)

	return c, nil
}

// Cleanup releases infrastructure resources in reverse order.
func (c *Container) Cleanup() {
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis client")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
