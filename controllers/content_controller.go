package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cppla/folio/content"
	"github.com/cppla/folio/models"
	"github.com/cppla/folio/utils"
)

// ContentCachePrefix prefixes every cached static payload.
const ContentCachePrefix = "cache:content:"

// ContentController serves the static sections, with per-session votes and
// project comments merged in.
type ContentController struct {
	submitter
	doc   *content.Document
	cache *utils.Cache
}

// NewContentController creates a new ContentController instance.
func NewContentController(doc *content.Document, cache *utils.Cache, gate *utils.Gate, delay time.Duration) *ContentController {
	return &ContentController{
		submitter: submitter{gate: gate, delay: delay},
		doc:       doc,
		cache:     cache,
	}
}

// serveCached answers from Redis when possible, otherwise builds the payload and caches it.
func (cc *ContentController) serveCached(ctx *gin.Context, key string, build func() any) {
	key = ContentCachePrefix + key
	if b, ok := cc.cache.GetBytes(ctx.Request.Context(), key); ok {
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", b)
		return
	}
	payload := build()
	cc.cache.SetJSON(ctx.Request.Context(), key, utils.JSONResponse{Code: 0, Message: "success", Data: payload}, time.Hour)
	utils.Success(ctx, payload)
}

// GetProfile returns the landing banner.
func (cc *ContentController) GetProfile(ctx *gin.Context) {
	cc.serveCached(ctx, "profile", func() any {
		return gin.H{"profile": cc.doc.Profile}
	})
}

// ListSections returns the page sections in scroll order.
func (cc *ContentController) ListSections(ctx *gin.Context) {
	cc.serveCached(ctx, "sections", func() any {
		return gin.H{"items": cc.doc.Sections}
	})
}

// ListSkills returns skills grouped by category with achievements and coding stats.
func (cc *ContentController) ListSkills(ctx *gin.Context) {
	category := strings.TrimSpace(ctx.Query("category"))
	cc.serveCached(ctx, "skills:cat="+strings.ToLower(category), func() any {
		return gin.H{
			"groups":       cc.doc.SkillsByCategory(category),
			"categories":   cc.doc.Categories(),
			"achievements": cc.doc.Achievements,
			"coding_stats": cc.doc.CodingStats,
		}
	})
}

// ListTimeline returns the timeline entries; an empty list means the section is still coming soon.
func (cc *ContentController) ListTimeline(ctx *gin.Context) {
	cc.serveCached(ctx, "timeline", func() any {
		items := cc.doc.Timeline
		if items == nil {
			items = []models.TimelineEntry{}
		}
		return gin.H{"items": items, "coming_soon": len(items) == 0}
	})
}

// ListProjects returns every project with this session's votes and comments applied.
func (cc *ContentController) ListProjects(ctx *gin.Context) {
	sess, ok := currentSession(ctx)
	if !ok {
		return
	}
	items := make([]models.Project, 0, len(cc.doc.Projects))
	for i := range cc.doc.Projects {
		p, _ := cc.doc.Project(i)
		items = append(items, sess.ApplyProject(i, p))
	}
	utils.Success(ctx, gin.H{"items": items})
}

// GetProject returns one project by its position.
func (cc *ContentController) GetProject(ctx *gin.Context) {
	sess, ok := currentSession(ctx)
	if !ok {
		return
	}
	idx, p, ok := cc.lookupProject(ctx)
	if !ok {
		return
	}
	utils.Success(ctx, gin.H{"project": sess.ApplyProject(idx, p)})
}

// VoteProject adds one vote; repeated votes are all counted.
func (cc *ContentController) VoteProject(ctx *gin.Context) {
	sess, ok := currentSession(ctx)
	if !ok {
		return
	}
	idx, p, ok := cc.lookupProject(ctx)
	if !ok {
		return
	}
	sess.VoteProject(idx)
	utils.Success(ctx, gin.H{"project": sess.ApplyProject(idx, p)})
}

// AddProjectFeedback attaches a gated comment to a project.
func (cc *ContentController) AddProjectFeedback(ctx *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid request payload")
		return
	}
	sess, ok := currentSession(ctx)
	if !ok {
		return
	}
	idx, p, ok := cc.lookupProject(ctx)
	if !ok {
		return
	}

	text, verdict, ok := cc.evaluate(ctx, sess, req.Message)
	if !ok {
		return
	}
	if !verdict.Accepted {
		respondRejected(ctx, verdict)
		return
	}
	sess.AddProjectFeedback(idx, text)
	utils.Success(ctx, gin.H{"project": sess.ApplyProject(idx, p), "verdict": verdict})
}

// ListIdeas returns the future project ideas with this session's votes applied.
func (cc *ContentController) ListIdeas(ctx *gin.Context) {
	sess, ok := currentSession(ctx)
	if !ok {
		return
	}
	items := make([]models.Idea, 0, len(cc.doc.Ideas))
	for i, idea := range cc.doc.Ideas {
		items = append(items, sess.ApplyIdea(i, idea))
	}
	utils.Success(ctx, gin.H{"items": items})
}

// VoteIdea adds one vote to a future idea.
func (cc *ContentController) VoteIdea(ctx *gin.Context) {
	sess, ok := currentSession(ctx)
	if !ok {
		return
	}
	idx, valid := parseIndex(ctx.Param("index"))
	if !valid {
		utils.Error(ctx, http.StatusBadRequest, 40041, "invalid idea index")
		return
	}
	idea, err := cc.doc.Idea(idx)
	if errors.Is(err, content.ErrIdeaNotFound) {
		utils.Error(ctx, http.StatusNotFound, 40421, "idea not found")
		return
	}
	sess.VoteIdea(idx)
	utils.Success(ctx, gin.H{"idea": sess.ApplyIdea(idx, idea)})
}

func (cc *ContentController) lookupProject(ctx *gin.Context) (int, models.Project, bool) {
	idx, valid := parseIndex(ctx.Param("index"))
	if !valid {
		utils.Error(ctx, http.StatusBadRequest, 40042, "invalid project index")
		return 0, models.Project{}, false
	}
	p, err := cc.doc.Project(idx)
	if errors.Is(err, content.ErrProjectNotFound) {
		utils.Error(ctx, http.StatusNotFound, 40420, "project not found")
		return 0, models.Project{}, false
	}
	return idx, p, true
}
