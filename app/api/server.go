package api

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kittipatv/yt-sched/app/cfg"
	"github.com/kittipatv/yt-sched/app/database"
	"github.com/kittipatv/yt-sched/app/settings"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler, settingsRepo database.SettingsRepository) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// The schedule frontend is a separately served static page; allow it
	// to call the API from any origin.
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-Admin-Pin")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler, settingsRepo)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler, settingsRepo database.SettingsRepository) {
	// Schedule endpoints
	r.GET("/schedule", handler.GetSchedule)
	r.GET("/schedule/days", handler.GetScheduleDays)
	r.POST("/refresh", handler.Refresh)

	// Health and status endpoints
	r.GET("/health", handler.GetHealth)
	r.GET("/stats", handler.GetStats)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Admin endpoints behind the PIN gate
	admin := r.Group("/api")
	admin.Use(pinAuthMiddleware(settingsRepo))
	{
		admin.GET("/settings", handler.APIGetSettings)
		admin.PUT("/settings", handler.APIUpdateSettings)
		admin.PUT("/pin", handler.APISetPIN)
		admin.GET("/resolve", handler.APIResolveHandle)
		admin.GET("/presets", handler.APIListPresets)
		admin.POST("/presets/reload", handler.APIReloadPresets)
		admin.POST("/presets/:name/apply", handler.APIApplyPreset)
	}

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "yt-sched",
			"version":     cfg.GetVersion(),
			"description": "Live-schedule aggregator for YouTube channels, grouped by day in a configurable timezone",
			"endpoints": map[string]string{
				"schedule": "/schedule",
				"days":     "/schedule/days",
				"refresh":  "/refresh (POST)",
				"health":   "/health",
				"stats":    "/stats",
				"metrics":  "/metrics",
				"admin":    "/api/* (requires X-Admin-Pin header)",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

// pinAuthMiddleware gates the admin endpoints on the stored PIN. While no
// PIN exists yet, only the PIN-set endpoint is reachable so a first-time
// admin can establish one.
func pinAuthMiddleware(settingsRepo database.SettingsRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		storedHash, ok, err := settingsRepo.Get(settings.KeyAdminPINHash)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			c.Abort()
			return
		}

		if !ok || storedHash == "" {
			if c.FullPath() == "/api/pin" {
				c.Next()
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Admin PIN not set",
				"message": "Set a PIN first via PUT /api/pin",
			})
			c.Abort()
			return
		}

		providedPIN := c.GetHeader("X-Admin-Pin")
		if providedPIN == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Admin PIN required",
				"message": "Provide the PIN in the X-Admin-Pin header",
			})
			c.Abort()
			return
		}

		if hashPIN(providedPIN) != storedHash {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Wrong PIN",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// hashPIN hashes a PIN for storage; only the hash ever touches the store.
func hashPIN(pin string) string {
	sum := sha256.Sum256([]byte(pin))
	return hex.EncodeToString(sum[:])
}
