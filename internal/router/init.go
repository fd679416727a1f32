package router

import (
	app "github.com/oksasatya/creatorlink/internal/application"
	"github.com/oksasatya/creatorlink/internal/container"
	"github.com/oksasatya/creatorlink/internal/guard"
	gcsinfra "github.com/oksasatya/creatorlink/internal/infrastructure/gcs"
	handlers "github.com/oksasatya/creatorlink/internal/interface/http"
	"github.com/oksasatya/creatorlink/internal/interface/middleware"
	"github.com/oksasatya/creatorlink/internal/router/modules"
	"github.com/oksasatya/creatorlink/pkg/helpers"
)

// emailPublisher keeps the interface nil when RabbitMQ is not connected.
func emailPublisher() app.EmailPublisher {
	if p := container.GetRabbitPub(); p != nil {
		return p
	}
	return nil
}

func avatarUploader() app.AvatarUploader {
	cfg := container.GetConfig()
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		return gcsinfra.NewAvatarStore(gcs, cfg.GCSBucket)
	}
	return nil
}

type Deps struct {
	Auth       *app.AuthService
	Onboarding *app.OnboardingService
	Profiles   *app.ProfileIndex
	Guard      *guard.Guard
}

// BuildDeps constructs the services from the container singletons.
func BuildDeps() Deps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	storage := container.GetStorage()

	profiles := app.NewProfileIndex(container.GetES(), cfg.ESCreatorsIndex, logger)
	return Deps{
		Auth:       app.NewAuthService(container.GetIdentity(), storage, container.GetJWT(), emailPublisher(), cfg, logger),
		Onboarding: app.NewOnboardingService(container.GetIdentity(), storage, profiles, avatarUploader(), emailPublisher(), cfg, logger),
		Profiles:   profiles,
		Guard:      guard.New(guard.DefaultTable(), guard.OnboardingSource(cfg.GuardOnboardingSource, storage), logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	rdb := container.GetRedis()
	deps := BuildDeps()

	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure, cfg.ClientTTL)
	sessionMW := middleware.Session(container.GetStorage(), cookies, logger)
	r.Use(sessionMW)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(deps.Auth, logger), rdb))
	r.Add(modules.NewOnboardingModule(handlers.NewOnboardingHandler(deps.Onboarding, logger), rdb))
	r.Add(modules.NewContactModule(handlers.NewContactHandler(emailPublisher(), logger, cfg), rdb))
	r.Add(modules.NewSearchModule(handlers.NewSearchHandler(deps.Profiles, logger), rdb))
	r.Add(modules.NewPageModule(r.Engine, handlers.NewPageHandler(deps.Guard), deps.Guard, sessionMW))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(rdb))
	}
}
