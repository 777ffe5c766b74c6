package main

import (
	"context"
	"time"

	"eventbook/internal/graph"
	"eventbook/internal/resolvers"
	"eventbook/internal/store"
	"eventbook/pkg/config"
	"eventbook/pkg/logging"
	"eventbook/pkg/monitoring"
	"eventbook/pkg/server"
	"eventbook/pkg/version"
)

func main() {
	logger := logging.NewLoggerWithService("eventbook")

	config.LoadEnv(logger)

	jwtSecret := []byte(config.RequireEnv("JWT_SECRET"))
	mongoURL := config.GetEnv("MONGO_URL", "mongodb://localhost:27017")
	mongoDB := config.GetEnv("MONGO_DB", "eventbook")
	tokenTTL := config.GetEnvDuration("TOKEN_TTL", time.Hour)
	bcryptCost := config.GetEnvInt("BCRYPT_COST", 12)
	explorerUI := config.GetEnvBool("GRAPHQL_EXPLORER", true)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := store.Connect(ctx, store.Config{URL: mongoURL, Database: mongoDB}, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.WithError(err).Warn("Failed to disconnect from MongoDB")
		}
	}()

	entityStore := store.NewMongoStore(client.Database(mongoDB))
	if err := entityStore.EnsureIndexes(ctx); err != nil {
		logger.WithError(err).Fatal("Failed to ensure indexes")
	}

	healthChecker := monitoring.NewHealthChecker("eventbook", version.Version)
	healthChecker.AddCheck("mongodb", monitoring.MongoHealthCheck(client))
	healthChecker.AddCheck("configuration", monitoring.ConfigurationHealthCheck(map[string]string{
		"JWT_SECRET": string(jwtSecret),
		"MONGO_URL":  mongoURL,
	}))

	metrics := monitoring.NewMetricsCollector("eventbook", version.Version, version.GetShortCommit())
	graphqlMetrics := &resolvers.GraphQLMetrics{
		Operations: metrics.NewCounter("graphql_operations_total",
			"Total number of GraphQL operations", []string{"operation", "status"}),
		Duration: metrics.NewHistogram("graphql_operation_duration_seconds",
			"GraphQL operation duration in seconds", []string{"operation"}, nil),
	}

	resolver := resolvers.NewResolver(resolvers.Config{
		Store:      entityStore,
		Logger:     logger,
		Metrics:    graphqlMetrics,
		JWTSecret:  jwtSecret,
		TokenTTL:   tokenTTL,
		BcryptCost: bcryptCost,
	})

	schema, err := graph.NewSchema(resolver)
	if err != nil {
		logger.WithError(err).Fatal("Failed to build GraphQL schema")
	}

	router := server.SetupRouter(logger, healthChecker, metrics)
	graph.RegisterRoutes(router, graph.Config{
		Schema:     schema,
		JWTSecret:  jwtSecret,
		ExplorerUI: explorerUI,
	})

	cfg := server.DefaultConfig("eventbook", "8080")
	if err := server.Start(cfg, router, logger); err != nil {
		logger.WithError(err).Fatal("Server error")
	}
}
