package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	v1 "github.com/vivahlink/console/internal/api/v1"
	"github.com/vivahlink/console/internal/cache"
	"github.com/vivahlink/console/internal/config"
	"github.com/vivahlink/console/internal/domain/chat"
	"github.com/vivahlink/console/internal/domain/membership"
	"github.com/vivahlink/console/internal/domain/profile"
	"github.com/vivahlink/console/internal/domain/stats"
	"github.com/vivahlink/console/internal/domain/vendor"
	"github.com/vivahlink/console/internal/logger"
	"github.com/vivahlink/console/internal/repository/rest"
	restrouter "github.com/vivahlink/console/internal/rest"
	"github.com/vivahlink/console/internal/service"
	"github.com/vivahlink/console/internal/upstream"
)

func main() {
	app := fx.New(
		fx.Provide(
			config.NewConfig,
			logger.NewLogger,
			cache.NewStore,
			service.NewSessionService,
			newUpstreamClient,
			rest.NewProfileRepository,
			rest.NewVendorRepository,
			rest.NewMembershipRepository,
			rest.NewChatRepository,
			rest.NewStatsRepository,
			newServiceParams,
			service.NewMutationExecutor,
			service.NewBulkCoordinator,
			service.NewProfileService,
			service.NewVerificationService,
			service.NewVendorService,
			service.NewMembershipService,
			service.NewChatService,
			service.NewStatsService,
			v1.NewProfileHandler,
			v1.NewVendorHandler,
			v1.NewMembershipHandler,
			v1.NewChatHandler,
			v1.NewStatsHandler,
			v1.NewSessionHandler,
			newHandlers,
			restrouter.NewRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

func newUpstreamClient(cfg *config.Configuration, log *logger.Logger, sessionService service.SessionService) upstream.Client {
	return upstream.NewClient(cfg, log, upstream.WithSessionExpiredHook(sessionService.OnSessionExpired))
}

func newServiceParams(
	cfg *config.Configuration,
	log *logger.Logger,
	store *cache.Store,
	profileRepo profile.Repository,
	vendorRepo vendor.Repository,
	membershipRepo membership.Repository,
	chatRepo chat.Repository,
	statsRepo stats.Repository,
) service.ServiceParams {
	return service.ServiceParams{
		Logger:         log,
		Config:         cfg,
		Cache:          store,
		ProfileRepo:    profileRepo,
		VendorRepo:     vendorRepo,
		MembershipRepo: membershipRepo,
		ChatRepo:       chatRepo,
		StatsRepo:      statsRepo,
	}
}

func newHandlers(
	profileHandler *v1.ProfileHandler,
	vendorHandler *v1.VendorHandler,
	membershipHandler *v1.MembershipHandler,
	chatHandler *v1.ChatHandler,
	statsHandler *v1.StatsHandler,
	sessionHandler *v1.SessionHandler,
) restrouter.Handlers {
	return restrouter.Handlers{
		Profile:    profileHandler,
		Vendor:     vendorHandler,
		Membership: membershipHandler,
		Chat:       chatHandler,
		Stats:      statsHandler,
		Session:    sessionHandler,
	}
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	router *gin.Engine,
	store *cache.Store,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting server", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down server")
			store.Clear()
			return srv.Shutdown(ctx)
		},
	})
}
