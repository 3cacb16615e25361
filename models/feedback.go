package models

import "time"

// FeedbackCategory is the closed set of feedback topics.
type FeedbackCategory string

const (
	CategoryGeneral   FeedbackCategory = "general"
	CategoryPortfolio FeedbackCategory = "portfolio"
	CategoryProjects  FeedbackCategory = "projects"
)

// FeedbackCategories lists every valid category in display order.
var FeedbackCategories = []FeedbackCategory{CategoryGeneral, CategoryPortfolio, CategoryProjects}

// Valid reports whether c belongs to the closed set.
func (c FeedbackCategory) Valid() bool {
	for _, v := range FeedbackCategories {
		if c == v {
			return true
		}
	}
	return false
}

// Feedback is an accepted feedback entry held in session memory.
// HelpfulCount only ever grows.
type Feedback struct {
	ID           string           `json:"id"`
	Author       string           `json:"author"`
	Email        string           `json:"-"`
	Body         string           `json:"body"`
	Category     FeedbackCategory `json:"category"`
	CreatedAt    time.Time        `json:"created_at"`
	HelpfulCount int              `json:"helpful_count"`
}
