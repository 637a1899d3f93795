package router

import (
	"github.com/oksasatya/go-auth-api/internal/application"
	"github.com/oksasatya/go-auth-api/internal/container"
	"github.com/oksasatya/go-auth-api/internal/infrastructure/cache"
	handlers "github.com/oksasatya/go-auth-api/internal/interface/http"
	"github.com/oksasatya/go-auth-api/internal/router/modules"
	"github.com/oksasatya/go-auth-api/pkg/helpers"
)

type AuthModuleDeps struct {
	Service     *application.Service
	AuthHandler *handlers.AuthHandler
	UserHandler *handlers.UserHandler
}

func buildAuthDeps(c *container.Container) AuthModuleDeps {
	cfg := c.Config

	var opts []application.Option
	if c.Audit != nil {
		opts = append(opts, application.WithAudit(c.Audit))
	}
	if c.Redis != nil {
		opts = append(opts, application.WithProfileCache(cache.NewProfileCache(c.Redis, cfg.ProfileCacheTTL)))
	}

	service := application.NewService(
		c.Accounts,
		c.JWT,
		c.Notifier,
		cfg,
		application.SettingsFromConfig(cfg),
		c.Logger,
		opts...,
	)

	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)
	return AuthModuleDeps{
		Service:     service,
		AuthHandler: handlers.NewAuthHandler(service, c.Logger, cookies),
		UserHandler: handlers.NewUserHandler(service, c.Logger, cookies),
	}
}

// InitModules builds the auth service from the container and adds every module to r.
// Call it once at startup, before r.RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	deps := buildAuthDeps(c)
	r.Add(
		modules.NewAuthModule(deps.AuthHandler),
		modules.NewUserModule(deps.UserHandler, deps.Service),
		modules.NewHealthModule(c.PGPool, c.Redis, c.Config.Env != "production"),
	)
}
