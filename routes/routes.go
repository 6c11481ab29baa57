package routes

import (
	"FocusLock/controllers"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the API. Every route except registration, login and
// health goes through authMiddleware. An empty origin list allows any origin.
func RegisterRoutes(r *gin.Engine, authMiddleware gin.HandlerFunc, allowedOrigins []string) {
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(allowedOrigins) == 0 {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	} else {
		corsConfig.AllowOrigins = allowedOrigins
	}
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes
	r.POST("/register/device", controllers.RegisterDevice)
	r.POST("/login/device", controllers.LoginDevice)
	r.POST("/auth/firebase", controllers.AuthenticateFirebase)

	r.GET("/ws", authMiddleware, controllers.ServeWs)

	device := r.Group("/device")
	device.Use(authMiddleware)
	{
		device.PUT("/push-token", controllers.UpdatePushToken)
	}

	apps := r.Group("/apps")
	apps.Use(authMiddleware)
	{
		apps.GET("/schedules", controllers.ListAppSchedules)
		apps.GET("/:package/schedule", controllers.GetAppSchedule)
		apps.PUT("/:package/schedule", controllers.SetAppSchedule)
		apps.DELETE("/:package/schedule", controllers.DeleteAppSchedule)

		apps.GET("/:package/usage-limit", controllers.GetUsageLimit)
		apps.PUT("/:package/usage-limit", controllers.SetUsageLimit)
		apps.POST("/:package/usage", controllers.ReportUsage)

		apps.GET("/:package/locked", controllers.CheckAppLocked)
		apps.POST("/reevaluate", controllers.ReevaluateApps)
		apps.GET("/next-transition", controllers.GetNextTransition)

		// One-time blocks
		apps.POST("/block-once", controllers.BlockAppsOnce)
		apps.GET("/block-once", controllers.GetOneTimeBlocks)
		apps.DELETE("/block-once", controllers.CancelOneTimeBlocks)
	}

	focus := r.Group("/focus")
	focus.Use(authMiddleware)
	{
		focus.GET("", controllers.GetFocus)
		focus.POST("/start", controllers.StartFocus)
		focus.POST("/stop", controllers.StopFocus)
	}

	sync := r.Group("/sync")
	sync.Use(authMiddleware)
	{
		sync.POST("/pull", controllers.PullFromSupabase)
	}
}
