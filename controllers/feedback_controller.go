package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cppla/folio/models"
	"github.com/cppla/folio/utils"
)

// FeedbackController accepts feedback through the gate and serves the session's list.
type FeedbackController struct {
	submitter
	defaultAuthor string
	now           func() time.Time
}

// NewFeedbackController creates a new FeedbackController instance.
func NewFeedbackController(gate *utils.Gate, delay time.Duration, defaultAuthor string) *FeedbackController {
	return &FeedbackController{
		submitter:     submitter{gate: gate, delay: delay},
		defaultAuthor: defaultAuthor,
		now:           time.Now,
	}
}

// CreateFeedback evaluates a submission and, on accept, puts it at the head of the list.
func (f *FeedbackController) CreateFeedback(ctx *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email" binding:"omitempty,email"`
		Category string `json:"category"`
		Message  string `json:"message"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid request payload")
		return
	}

	category := models.FeedbackCategory(strings.ToLower(strings.TrimSpace(req.Category)))
	if category == "" {
		category = models.CategoryGeneral
	}
	if !category.Valid() {
		utils.Error(ctx, http.StatusBadRequest, 40011, "invalid category")
		return
	}

	sess, ok := currentSession(ctx)
	if !ok {
		return
	}

	body, verdict, ok := f.evaluate(ctx, sess, req.Message)
	if !ok {
		return
	}
	if !verdict.Accepted {
		utils.Sugar.Infow("feedback rejected", "session", sess.ID, "reason", verdict.Reason)
		respondRejected(ctx, verdict)
		return
	}

	author := utils.SanitizeText(req.Name)
	if author == "" {
		author = f.defaultAuthor
	}
	rec := models.Feedback{
		ID:        uuid.NewString(),
		Author:    author,
		Email:     strings.TrimSpace(req.Email),
		Body:      body,
		Category:  category,
		CreatedAt: f.now(),
	}
	sess.AppendFeedback(rec)
	utils.Sugar.Infow("feedback accepted", "session", sess.ID, "id", rec.ID, "category", rec.Category)

	utils.Success(ctx, gin.H{"feedback": rec, "verdict": verdict})
}

// ListFeedback returns the session's feedback newest first, optionally filtered by category.
func (f *FeedbackController) ListFeedback(ctx *gin.Context) {
	sess, ok := currentSession(ctx)
	if !ok {
		return
	}

	items := sess.Feedback()
	if items == nil {
		items = []models.Feedback{}
	}
	if c := strings.TrimSpace(ctx.Query("category")); c != "" {
		category := models.FeedbackCategory(strings.ToLower(c))
		if !category.Valid() {
			utils.Error(ctx, http.StatusBadRequest, 40012, "invalid category")
			return
		}
		filtered := items[:0]
		for _, it := range items {
			if it.Category == category {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}

	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	total := len(items)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	utils.Success(ctx, gin.H{
		"items": items[start:end],
		"pagination": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": (total + pageSize - 1) / pageSize,
		},
	})
}

// MarkHelpful adds one helpful vote to a record. Repeated calls keep counting.
func (f *FeedbackController) MarkHelpful(ctx *gin.Context) {
	sess, ok := currentSession(ctx)
	if !ok {
		return
	}
	rec, err := sess.MarkHelpful(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, utils.ErrFeedbackNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40410, "feedback not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to update feedback")
		return
	}
	utils.Success(ctx, gin.H{"feedback": rec})
}
