package app

import (
	"github.com/sirupsen/logrus"

	"github.com/ganeshpawar09/CarZy-Admin/domain"
	"github.com/ganeshpawar09/CarZy-Admin/internal/config"
	"github.com/ganeshpawar09/CarZy-Admin/internal/infrastructure/api"
	"github.com/ganeshpawar09/CarZy-Admin/internal/infrastructure/auth"
	"github.com/ganeshpawar09/CarZy-Admin/internal/infrastructure/session"
	"github.com/ganeshpawar09/CarZy-Admin/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	// Infrastructure
	Gateway  domain.PlatformGateway
	Sessions domain.SessionStore
	Tokens   *auth.TokenInspector

	// Services
	Scheduler domain.Scheduler
	Review    func() (*services.ReviewService, error)
	Catalog   *services.CatalogService
	Dashboard *services.DashboardService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	gateway := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, logger)
	sessions := session.NewFileStore(cfg.SessionFile, cfg.SessionKey, logger)

	return &Container{
		Config:    cfg,
		Logger:    logger,
		Gateway:   gateway,
		Sessions:  sessions,
		Tokens:    auth.NewTokenInspector(),
		Scheduler: services.NewTimerScheduler(),
		Review: func() (*services.ReviewService, error) {
			return services.NewReviewService(gateway, sessions, logger)
		},
		Catalog:   services.NewCatalogService(gateway, logger),
		Dashboard: services.NewDashboardService(gateway, logger),
	}, nil
}

// NewAuthFlow creates a login flow instance wired with the container's
// dependencies. Each login attempt gets its own instance.
func (c *Container) NewAuthFlow(onRedirect services.RedirectFunc, sink domain.FlowEventSink) *services.AuthFlow {
	return services.NewAuthFlow(
		c.Gateway,
		c.Sessions,
		c.Scheduler,
		services.AuthFlowConfig{
			ResendWindow:  c.Config.ResendWindow,
			RedirectDelay: c.Config.RedirectDelay,
		},
		onRedirect,
		sink,
		c.Logger,
	)
}
