package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmreg/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(auth *handlers.AuthHandler, farmers *handlers.FarmerHandler, reports *handlers.ReportHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/login", auth.Login)
	api.POST("/users", auth.RegisterUser)
	api.POST("/password-reset", auth.RequestPasswordReset)
	api.POST("/password-reset/confirm", auth.ConfirmPasswordReset)

	authorized := api.Group("", auth.Middleware())
	authorized.POST("/farmers", farmers.Register)
	authorized.GET("/farmers", farmers.List)
	authorized.GET("/farmers/stream", farmers.Stream)
	authorized.GET("/farmers/:id", farmers.Get)
	authorized.PUT("/farmers/:id", farmers.Edit)
	authorized.DELETE("/farmers/:id", farmers.Delete)
	authorized.PUT("/farmers/:id/soil", farmers.UpdateSoil)
	authorized.PUT("/farmers/:id/soil-chemistry", farmers.UpdateSoilChemistry)
	authorized.PUT("/farmers/:id/water-details", farmers.UpdateWaterDetails)
	authorized.PUT("/farmers/:id/farm-details", farmers.UpdateFarmDetails)
	authorized.GET("/dashboard", farmers.Dashboard)
	authorized.GET("/farmers/:id/certificate", reports.Certificate)
	authorized.GET("/farmers/:id/qrcode", reports.QRCode)
	authorized.GET("/export/farmers.xlsx", reports.ExportXLSX)
	authorized.POST("/export/sheets", reports.ExportSheets)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
