package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(logger *zap.Logger, chatH *ChatHandler) *gin.Engine {
	r := gin.New()

	// CORS abierto: el front se sirve desde otro origen en desarrollo.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), cors.Default())

	r.GET("/", chatH.Health)

	api := r.Group("/api")
	api.POST("/chat", chatH.PostChat)
	api.GET("/loadchat", chatH.LoadChat)
	api.GET("/sessions", chatH.ListSessions)

	return r
}

// zapLoggerMiddleware registra cada request con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
