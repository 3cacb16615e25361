package main

import (
	"context"
	"time"

	"github.com/cppla/folio/config"
	"github.com/cppla/folio/content"
	"github.com/cppla/folio/controllers"
	"github.com/cppla/folio/routes"
	"github.com/cppla/folio/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer func() { _ = utils.Logger.Sync() }()

	doc, err := content.Load(cfg.ContentPath)
	if err != nil {
		utils.Sugar.Fatalf("load content: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessions := utils.NewSessionStore(time.Duration(cfg.SessionTTLMinutes) * time.Minute)
	utils.StartSessionJanitor(ctx, sessions, 5*time.Minute)

	// Cached payloads may come from a previous content document.
	cache := utils.NewCache(utils.NewRedisClient(cfg))
	cache.InvalidateByPrefix(ctx, controllers.ContentCachePrefix)

	r := routes.SetupRouter(cfg, routes.Deps{
		Content:   doc,
		Sessions:  sessions,
		PageViews: utils.NewPageViews(),
		Cache:     cache,
	})

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(ctx, ":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
