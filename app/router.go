// Package app wires every endpoint, middleware and background worker
// together into a runnable router
package app

import (
	"context"
	"fmt"
	"time"
	authapp "traveldesk/travel-api/app/auth"
	"traveldesk/travel-api/app/root"
	"traveldesk/travel-api/app/travel"
	"traveldesk/travel-api/app/user"
	"traveldesk/travel-api/db"
	"traveldesk/travel-api/internal"
	"traveldesk/travel-api/internal/auth"
	"traveldesk/travel-api/internal/service"
	"traveldesk/travel-api/internal/store"
	"traveldesk/travel-api/pkg/middleware"
	"traveldesk/travel-api/pkg/security"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var cacheStore = persist.NewMemoryStore(time.Minute)

// NewRouter builds the full HTTP surface and hands back the reset code
// cleanup worker for the caller to run and join. ctx bounds the rate
// limiter's background pruning.
func NewRouter(ctx context.Context) (*gin.Engine, *service.ResetCleanup, error) {
	d := &internal.Deps{}

	conn, err := db.New()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	d.DB = conn

	d.Argon = security.New()
	d.Tokens = auth.NewTokenService()
	d.Users = store.NewUsers(conn)
	d.Travel = store.NewTravelRequests(conn)

	codes := store.NewResetCodes(conn)
	d.Resets = service.NewResetService(d.Users, codes, d.Argon, store.NewTx(conn))

	router := gin.New()

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     viper.GetStringSlice("host.cors_origins"),
			AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetInt("userID"); v != 0 {
					fields = append(fields, zap.Int("user_id", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	rateLimit := viper.GetInt("security.rate_limit")

	authenticate := middleware.Authenticate(d.Tokens)
	anyAuthed := middleware.Require(auth.AnyAuthenticated)
	approver := middleware.Require(auth.ApproverOnly)
	rateLimiter := middleware.RateLimiterMiddleware(ctx, middleware.RateLimiterConfig{
		RequestsPerSecond: rateLimit,
		Burst:             rateLimit * 2,
		PruneInterval:     time.Second,
	})

	m := router.Group("/api", rateLimiter)
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)

		// GET /api/validate		-> Validates a token and echoes its identity
		m.GET("/validate", authenticate, anyAuthed, root.Validate)
	}

	a := m.Group("/auth", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/auth/login 	-> Logs in a user and returns a signed token
		a.POST("/login", func(c *gin.Context) { authapp.Login(c, d) })
	}

	u := m.Group("/users", authenticate, middleware.BodySizeLimiter(1<<20))
	{
		// GET /api/users		-> Lists users, optionally filtered by role
		u.GET("", approver, cacheFor(30), func(c *gin.Context) { user.UserFetchBulk(c, d) })

		// GET /api/users/:id		-> Returns a single user
		u.GET("/:id", approver, func(c *gin.Context) { user.UserFetch(c, d) })

		// GET /api/users/email/:email	-> Returns a single user by email
		u.GET("/email/:email", anyAuthed, func(c *gin.Context) { user.UserFetchByEmail(c, d) })

		// POST /api/users 		-> Creates a new user
		u.POST("", approver, func(c *gin.Context) { user.UserCreate(c, d) })

		// PUT /api/users/:id		-> Updates a user
		u.PUT("/:id", approver, func(c *gin.Context) { user.UserUpdate(c, d) })

		// DELETE /api/users/:id 	-> Deletes a user
		u.DELETE("/:id", approver, func(c *gin.Context) { user.UserDelete(c, d) })

		// PATCH /api/users/:id/change-password -> Changes a user's own password
		u.PATCH("/:id/change-password", middleware.RequireOwnerParam("id"), func(c *gin.Context) { user.UserChangePassword(c, d) })

		// POST /api/users/request-password-reset -> Issues a reset code
		u.POST("/request-password-reset", anyAuthed, func(c *gin.Context) { user.UserResetRequest(c, d) })

		// POST /api/users/reset-password -> Consumes a reset code
		u.POST("/reset-password", anyAuthed, func(c *gin.Context) { user.UserResetConfirm(c, d) })
	}

	t := m.Group("/travelrequests", authenticate, middleware.BodySizeLimiter(1<<20))
	{
		// GET /api/travelrequests	-> Lists all travel requests
		t.GET("", approver, cacheFor(15), func(c *gin.Context) { travel.TravelFetchBulk(c, d) })

		// GET /api/travelrequests/:id	-> Returns a travel request if the caller may see it
		t.GET("/:id", middleware.RequireResourceOwner(d.Travel, "id"), func(c *gin.Context) { travel.TravelFetch(c, d) })

		// GET /api/travelrequests/user/:userID -> Lists a user's travel requests
		t.GET("/user/:userID", middleware.RequireOwnerParam("userID"), func(c *gin.Context) { travel.TravelFetchByUser(c, d) })

		// POST /api/travelrequests/user/:userID -> Files a new travel request
		t.POST("/user/:userID", middleware.RequireOwnerParam("userID"), func(c *gin.Context) { travel.TravelCreate(c, d) })

		// PUT /api/travelrequests/:id/status -> Approves or rejects a request
		t.PUT("/:id/status", approver, func(c *gin.Context) { travel.TravelUpdateStatus(c, d) })

		// DELETE /api/travelrequests/:id -> Deletes a travel request
		t.DELETE("/:id", approver, func(c *gin.Context) { travel.TravelDelete(c, d) })
	}

	// Expired reset codes pile up fast with a 5 minute TTL, purge often
	cleanup := &service.ResetCleanup{Codes: codes, Interval: time.Minute * 10}

	return router, cleanup, nil
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(cacheStore, time.Second*time.Duration(sec))
}
