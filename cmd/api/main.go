package main

import (
	"context"
	"log"
	"net/http"
	"time"

	v1 "fictionchat/cmd/api/router/v1"
	"fictionchat/internal/infrastructure/auth"
	cacheAdapter "fictionchat/internal/infrastructure/cache/adapter"
	cacheport "fictionchat/internal/infrastructure/cache/port"
	"fictionchat/internal/infrastructure/config"
	"fictionchat/internal/infrastructure/database"
	queueAdapter "fictionchat/internal/infrastructure/queue/adapter"
	qport "fictionchat/internal/infrastructure/queue/port"
	"fictionchat/internal/infrastructure/realtime"
	"fictionchat/internal/pkg/chat/application/task"
	httpHandler "fictionchat/internal/pkg/chat/presentation/http"
	userAdapter "fictionchat/internal/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Connect to the database on startup
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("failed to provision schema: %v", err)
	}

	users := userAdapter.NewPgUserRepository(pool, userAdapter.HostUserTable{
		Table:         cfg.HostUserTable,
		IDColumn:      cfg.HostUserIDColumn,
		NameColumn:    cfg.HostUserNameColumn,
		PictureColumn: cfg.HostUserPictureColumn,
	})

	// Mirror the host application's users once at startup.
	syncCtx, syncCancel := context.WithTimeout(context.Background(), 30*time.Second)
	count, err := users.SyncFromHost(syncCtx)
	syncCancel()
	if err != nil {
		log.Fatalf("failed to mirror users from host table: %v", err)
	}
	log.Printf("mirrored %d users from %s", count, cfg.HostUserTable)

	// Redis-backed cache and queue are optional; everything else works without them.
	var cache cacheport.Cache
	var queueClient qport.Client
	if cfg.RedisURL != "" {
		redisCache, err := cacheAdapter.NewRedisAdapter(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisCache.Close()
		cache = redisCache

		client, err := queueAdapter.NewAsynqClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to create queue client: %v", err)
		}
		defer client.Close()
		queueClient = client

		server, err := queueAdapter.NewAsynqServer(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to create queue server: %v", err)
		}
		task.RegisterSyncUsersTask(server, users, cache)
		go func() {
			if err := server.Run(context.Background()); err != nil {
				log.Printf("queue server stopped: %v", err)
			}
		}()
	}

	verifier := auth.NewVerifier(cfg.JWTSecret, cfg.JWTUserIDClaim)
	registry := realtime.NewRegistry()
	defer registry.Close()

	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	v1.RegisterRoutes(r, httpHandler.Deps{
		Pool:         pool,
		Verifier:     verifier,
		Registry:     registry,
		Users:        users,
		Cache:        cache,
		Queue:        queueClient,
		QueueName:    queueAdapter.MaintenanceQueue(),
		UserCacheTTL: cfg.UserCacheTTL,
	})

	// Start HTTP server (blocks until shutdown)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("http server stopped: %v", err)
	}
}
