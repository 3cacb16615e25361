package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/cppla/folio/models"
	"github.com/cppla/folio/utils"
)

// ConfigController exposes the form rules so the page can validate before submitting.
type ConfigController struct {
	gate *utils.Gate
}

func NewConfigController(gate *utils.Gate) *ConfigController { return &ConfigController{gate: gate} }

// GetFormRules returns the gate bounds and the closed category sets.
func (c *ConfigController) GetFormRules(ctx *gin.Context) {
	utils.Success(ctx, gin.H{
		"min_length":          c.gate.MinLen,
		"max_length":          c.gate.MaxLen,
		"feedback_categories": models.FeedbackCategories,
		"contact_types":       models.ContactTypes,
	})
}
