package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cppla/folio/content"
	"github.com/cppla/folio/models"
	"github.com/cppla/folio/utils"
)

// ContactController acknowledges contact form submissions. Nothing is delivered;
// accepted messages are logged and kept in the session.
type ContactController struct {
	submitter
	doc *content.Document
	ack string
	now func() time.Time
}

// NewContactController creates a new ContactController instance.
func NewContactController(doc *content.Document, gate *utils.Gate, delay time.Duration, ack string) *ContactController {
	return &ContactController{
		submitter: submitter{gate: gate, delay: delay},
		doc:       doc,
		ack:       ack,
		now:       time.Now,
	}
}

// SubmitContact gates the message body and answers with the canned acknowledgement.
func (c *ContactController) SubmitContact(ctx *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Subject string `json:"subject" binding:"required"`
		Message string `json:"message" binding:"required"`
		Type    string `json:"type"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}

	kind := models.ContactType(strings.ToLower(strings.TrimSpace(req.Type)))
	if kind == "" {
		kind = models.ContactGeneral
	}
	if !kind.Valid() {
		utils.Error(ctx, http.StatusBadRequest, 40031, "invalid contact type")
		return
	}

	name := utils.SanitizeText(req.Name)
	subject := utils.SanitizeText(req.Subject)
	if name == "" || subject == "" {
		utils.Error(ctx, http.StatusBadRequest, 40032, "name and subject cannot be empty")
		return
	}

	sess, ok := currentSession(ctx)
	if !ok {
		return
	}

	body, verdict, ok := c.evaluate(ctx, sess, req.Message)
	if !ok {
		return
	}
	if !verdict.Accepted {
		respondRejected(ctx, verdict)
		return
	}

	msg := models.ContactMessage{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     strings.TrimSpace(req.Email),
		Subject:   subject,
		Message:   body,
		Type:      kind,
		CreatedAt: c.now(),
	}
	sess.AppendContact(msg)
	utils.Sugar.Infow("contact form submitted",
		"session", sess.ID,
		"id", msg.ID,
		"type", msg.Type,
		"subject", msg.Subject,
	)

	utils.Success(ctx, gin.H{"message": c.ack, "contact": msg})
}

// ListCollaborations returns the kinds of joint work on offer.
func (c *ContactController) ListCollaborations(ctx *gin.Context) {
	utils.Success(ctx, gin.H{"items": c.doc.Collaborations, "types": models.ContactTypes})
}
