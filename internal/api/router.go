package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"printagent/internal/api/handlers"
	"printagent/internal/api/middleware"
	"printagent/internal/core"
	"printagent/internal/device"
)

// NewRouter wires the HTTP surface: print submission, queue
// inspection, device selection, status and auth.
func NewRouter(spooler *core.Spooler, manager *device.Manager, auth *middleware.AuthMiddleware) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	printHandler := handlers.NewPrintHandler(spooler)
	queueHandler := handlers.NewQueueHandler(spooler)
	deviceHandler := handlers.NewDeviceHandler(manager)
	statusHandler := handlers.NewStatusHandler(spooler, manager)

	apiGroup := r.Group("/api")
	{
		printGroup := apiGroup.Group("/print")
		{
			printGroup.POST("/text", printHandler.PrintText)
			printGroup.POST("/barcode", printHandler.PrintBarcode)
			printGroup.POST("/batch", printHandler.PrintBatch)
			printGroup.GET("/queue", queueHandler.GetQueue)
			printGroup.GET("/logs", queueHandler.GetLogs)
			printGroup.DELETE("/queue/:id", queueHandler.RemoveJob)
			printGroup.DELETE("/queue", auth.RequireAuth(), queueHandler.ClearQueue)
		}

		deviceGroup := apiGroup.Group("/device")
		{
			deviceGroup.GET("", deviceHandler.ListDevices)
			deviceGroup.POST("/default", auth.RequireAuth(), deviceHandler.SetDefault)
		}

		apiGroup.GET("/status", statusHandler.GetStatus)

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/setup", auth.SetupHandler)
			authGroup.POST("/login", auth.LoginHandler)
			authGroup.POST("/logout", auth.LogoutHandler)
			authGroup.GET("/status", auth.StatusHandler)
			authGroup.POST("/password", auth.RequireAuth(), auth.ChangePasswordHandler)
		}
	}

	return r
}
