package graph

import (
	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"

	"eventbook/internal/middleware"
)

// Config controls the GraphQL endpoint.
type Config struct {
	Schema     graphql.Schema
	JWTSecret  []byte
	ExplorerUI bool
}

// RegisterRoutes mounts the GraphQL endpoint on the router. Requests pass
// through the identity gate first; GET serves the interactive explorer
// when it is enabled.
func RegisterRoutes(router *gin.Engine, cfg Config) {
	h := handler.New(&handler.Config{
		Schema:   &cfg.Schema,
		Pretty:   true,
		GraphiQL: cfg.ExplorerUI,
	})

	endpoint := router.Group("/graphql", middleware.AuthGate(cfg.JWTSecret))
	endpoint.POST("", gin.WrapH(h))
	endpoint.GET("", gin.WrapH(h))
}
