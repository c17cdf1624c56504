package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/client-followup/internal/audit"
	"github.com/BruksfildServices01/client-followup/internal/config"
	dbpkg "github.com/BruksfildServices01/client-followup/internal/db"
	"github.com/BruksfildServices01/client-followup/internal/logging"
	"github.com/BruksfildServices01/client-followup/internal/middleware"
	"github.com/BruksfildServices01/client-followup/internal/models"
	"github.com/BruksfildServices01/client-followup/internal/routes"
	"github.com/BruksfildServices01/client-followup/internal/session"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// run owns every deferred close; only main exits the process.
func run() error {
	cfg := config.Load()
	logging.New(cfg)

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}
	if err := dbpkg.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	ctx := context.Background()

	rdb, err := session.Connect(ctx, cfg.RedisURL)
	if err != nil {
		slog.Warn("redis unavailable, deactivation checks use the database", "error", err)
	}
	if rdb != nil {
		defer rdb.Close()
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db))
	defer auditDispatcher.Close()

	bans, err := loadBanList(ctx, db, rdb)
	if err != nil {
		return err
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware(cfg))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, auditDispatcher, bans)

	slog.Info("server running", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		return fmt.Errorf("start server: %w", err)
	}
	return nil
}

// loadBanList seeds redis with the users already deactivated in the database.
func loadBanList(ctx context.Context, db *gorm.DB, rdb *redis.Client) (*session.BanList, error) {
	bans := session.NewBanList(rdb)

	var bannedIDs []string
	if err := db.WithContext(ctx).
		Model(&models.User{}).
		Where("banned = ?", true).
		Pluck("id", &bannedIDs).Error; err != nil {
		return nil, fmt.Errorf("load deactivated users: %w", err)
	}
	if err := bans.Reset(ctx, bannedIDs); err != nil {
		slog.Warn("ban list sync failed", "error", err)
	}
	return bans, nil
}
