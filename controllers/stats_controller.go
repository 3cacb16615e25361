package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/cppla/folio/utils"
)

// StatsController provides live traffic figures for the portfolio.
type StatsController struct {
	sessions *utils.SessionStore
	pv       *utils.PageViews
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(sessions *utils.SessionStore, pv *utils.PageViews) *StatsController {
	return &StatsController{sessions: sessions, pv: pv}
}

// GetStats returns aggregate counters plus the caller's own feedback count.
func (s *StatsController) GetStats(ctx *gin.Context) {
	sess, ok := currentSession(ctx)
	if !ok {
		return
	}
	utils.Success(ctx, gin.H{
		"session_count":    s.sessions.Len(),
		"page_views_today": s.pv.Today(),
		"session_feedback": len(sess.Feedback()),
		"session_contacts": len(sess.Contacts()),
	})
}

// GetPageViews returns every per-day, per-path aggregate.
func (s *StatsController) GetPageViews(ctx *gin.Context) {
	utils.Success(ctx, gin.H{"items": s.pv.Snapshot()})
}
