package models

import "time"

// PageView is an aggregated page view count for one day and path.
type PageView struct {
	Date  time.Time `json:"date"`
	Path  string    `json:"path"`
	Count int64     `json:"count"`
}
