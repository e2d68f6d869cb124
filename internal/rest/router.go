package rest

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/vivahlink/console/internal/api/v1"
	"github.com/vivahlink/console/internal/config"
	"github.com/vivahlink/console/internal/logger"
	"github.com/vivahlink/console/internal/rest/middleware"
	"github.com/vivahlink/console/internal/service"
	"github.com/vivahlink/console/internal/types"
)

// Handlers bundles every v1 handler the router mounts.
type Handlers struct {
	Profile    *v1.ProfileHandler
	Vendor     *v1.VendorHandler
	Membership *v1.MembershipHandler
	Chat       *v1.ChatHandler
	Stats      *v1.StatsHandler
	Session    *v1.SessionHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, log *logger.Logger, sessionService service.SessionService) *gin.Engine {
	if cfg.Deployment.Mode == types.DeploymentModeProd {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = log.GetGinLogger()

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(log),
		middleware.ErrorHandler(log),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/v1")
	api.Use(middleware.AuthMiddleware(sessionService))

	profiles := api.Group("/profiles")
	{
		profiles.GET("", handlers.Profile.List)
		profiles.GET("/deleted", handlers.Profile.ListDeleted)
		profiles.GET("/:id", handlers.Profile.Get)
		profiles.POST("/:id/approve", handlers.Profile.Approve)
		profiles.POST("/:id/reject", handlers.Profile.Reject)
		profiles.POST("/:id/reapply", handlers.Profile.Reapply)
		profiles.POST("/:id/activate", handlers.Profile.Activate)
		profiles.POST("/:id/deactivate", handlers.Profile.Deactivate)
		profiles.POST("/:id/block", handlers.Profile.Block)
		profiles.POST("/:id/unblock", handlers.Profile.Unblock)
		profiles.DELETE("/:id", handlers.Profile.Delete)
		profiles.POST("/:id/restore", handlers.Profile.Restore)
		profiles.POST("/bulk", handlers.Profile.Bulk)
	}

	vendors := api.Group("/vendors")
	{
		vendors.GET("", handlers.Vendor.List)
		vendors.GET("/:id", handlers.Vendor.Get)
		vendors.POST("/:id/approve", handlers.Vendor.Approve)
		vendors.POST("/:id/reject", handlers.Vendor.Reject)
		vendors.POST("/:id/activate", handlers.Vendor.Activate)
		vendors.POST("/:id/deactivate", handlers.Vendor.Deactivate)
		vendors.POST("/bulk", handlers.Vendor.Bulk)
	}

	memberships := api.Group("/memberships")
	{
		memberships.GET("", handlers.Membership.List)
		memberships.GET("/pending", handlers.Membership.ListPending)
		memberships.GET("/stats", handlers.Membership.Stats)
		memberships.GET("/:id", handlers.Membership.Get)
		memberships.POST("/:id/approve", handlers.Membership.Approve)
		memberships.POST("/:id/reject", handlers.Membership.Reject)
		memberships.POST("/:id/cancel", handlers.Membership.Cancel)
		memberships.POST("/:id/reactivate", handlers.Membership.Reactivate)
		memberships.POST("/:id/proof", handlers.Membership.UploadProof)
		memberships.POST("/bulk/cancel", handlers.Membership.BulkCancel)
	}

	chats := api.Group("/chats")
	{
		chats.GET("", handlers.Chat.List)
		chats.POST("/watch", handlers.Chat.WatchList)
		chats.DELETE("/watch/:watch_id", handlers.Chat.Unwatch)
		chats.GET("/:id/messages", handlers.Chat.Messages)
		chats.POST("/:id/watch", handlers.Chat.WatchMessages)
		chats.POST("/:id/messages", handlers.Chat.SendMessage)
		chats.POST("/:id/close", handlers.Chat.Close)
	}

	api.GET("/stats/dashboard", handlers.Stats.Dashboard)
	api.POST("/session/logout", handlers.Session.Logout)

	return router
}
