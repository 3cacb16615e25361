package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/cppla/folio/config"
	"github.com/cppla/folio/content"
	"github.com/cppla/folio/controllers"
	"github.com/cppla/folio/middleware"
	"github.com/cppla/folio/utils"
)

// Deps are the long-lived components the handlers share.
type Deps struct {
	Content   *content.Document
	Sessions  *utils.SessionStore
	PageViews *utils.PageViews
	Cache     *utils.Cache
}

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(cfg config.AppConfig, deps Deps) *gin.Engine {
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		utils.Sugar.Warnf("gin access log disabled: %v", err)
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", middleware.SessionHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.SessionHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 || (len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))
	r.Use(middleware.PageViewRecorder(deps.PageViews))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	gate := utils.NewGate(cfg.GateMinLen, cfg.GateMaxLen, cfg.GateDisallowed)
	delay := time.Duration(cfg.SubmitDelayMs) * time.Millisecond

	contentController := controllers.NewContentController(deps.Content, deps.Cache, gate, delay)
	feedbackController := controllers.NewFeedbackController(gate, delay, cfg.FeedbackAuthorName)
	contactController := controllers.NewContactController(deps.Content, gate, delay, cfg.ContactAckMessage)
	statsController := controllers.NewStatsController(deps.Sessions, deps.PageViews)
	configController := controllers.NewConfigController(gate)

	api := r.Group("/api/v1")
	api.Use(middleware.SessionResolver(deps.Sessions))

	api.GET("/profile", contentController.GetProfile)
	api.GET("/sections", contentController.ListSections)
	api.GET("/skills", contentController.ListSkills)
	api.GET("/timeline", contentController.ListTimeline)
	api.GET("/projects", contentController.ListProjects)
	api.GET("/projects/:index", contentController.GetProject)
	api.GET("/ideas", contentController.ListIdeas)
	api.GET("/feedback", feedbackController.ListFeedback)
	api.GET("/contact/collaborations", contactController.ListCollaborations)
	api.GET("/config/form", configController.GetFormRules)
	api.GET("/stats", statsController.GetStats)
	api.GET("/stats/pageviews", statsController.GetPageViews)

	writes := api.Group("")
	writes.Use(middleware.RateLimitMiddleware(cfg.RateLimitPerMinute))
	writes.POST("/feedback", feedbackController.CreateFeedback)
	writes.POST("/feedback/:id/helpful", feedbackController.MarkHelpful)
	writes.POST("/contact", contactController.SubmitContact)
	writes.POST("/projects/:index/vote", contentController.VoteProject)
	writes.POST("/projects/:index/feedback", contentController.AddProjectFeedback)
	writes.POST("/ideas/:index/vote", contentController.VoteIdea)

	r.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		ctx.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	})

	return r
}
