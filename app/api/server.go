package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const userIDKey = "user_id"

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler) *gin.Engine {
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

	// CORS middleware for API endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler) {
	r.GET("/health", handler.GetHealth)

	api := r.Group("/api")
	{
		api.POST("/auth/login", handler.Login)
		api.POST("/auth/register", handler.Register)

		api.GET("/competitions", handler.ListCompetitions)
		api.GET("/competitions/:id", handler.GetCompetition)
		api.GET("/posts", handler.ListPosts)
		api.GET("/users/:id", handler.GetPublicProfile)
		api.POST("/search", handler.Search)
		api.POST("/competitions/:id/analyze", handler.AnalyzeCompetition)

		authed := api.Group("")
		authed.Use(handler.sessionMiddleware())
		{
			authed.GET("/profile", handler.GetProfile)
			authed.PUT("/profile", handler.UpdateProfile)
			authed.POST("/competitions/:id/favorite", handler.ToggleFavorite)
			authed.GET("/favorites", handler.ListFavorites)
			authed.GET("/favorites/export", handler.ExportFavorites)
			authed.POST("/posts", handler.CreatePost)
			authed.DELETE("/posts/:id", handler.DeletePost)
			authed.POST("/posts/:id/contact", handler.ContactPostAuthor)
		}
	}

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

// sessionMiddleware verifies the bearer token and stashes the user id
// in the request context. Mutating and personal endpoints sit behind it.
func (h *Handler) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" || token == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		userID, err := h.authService.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}
