package utils

import (
	"sort"
	"sync"
	"time"

	"github.com/cppla/folio/models"
)

type pvKey struct {
	date string
	path string
}

// PageViews aggregates page view counts per local day and path in memory.
type PageViews struct {
	mu     sync.Mutex
	counts map[pvKey]int64
	now    func() time.Time
}

// NewPageViews creates an empty counter.
func NewPageViews() *PageViews {
	return &PageViews{counts: map[pvKey]int64{}, now: time.Now}
}

// Record counts one view of path today.
func (p *PageViews) Record(path string) {
	k := pvKey{date: p.now().In(time.Local).Format("2006-01-02"), path: path}
	p.mu.Lock()
	p.counts[k]++
	p.mu.Unlock()
}

// Today returns the total views recorded today across all paths.
func (p *PageViews) Today() int64 {
	today := p.now().In(time.Local).Format("2006-01-02")
	p.mu.Lock()
	defer p.mu.Unlock()
	var total int64
	for k, v := range p.counts {
		if k.date == today {
			total += v
		}
	}
	return total
}

// Snapshot returns every aggregate ordered by date then path.
func (p *PageViews) Snapshot() []models.PageView {
	p.mu.Lock()
	out := make([]models.PageView, 0, len(p.counts))
	for k, v := range p.counts {
		d, _ := time.ParseInLocation("2006-01-02", k.date, time.Local)
		out = append(out, models.PageView{Date: d, Path: k.path, Count: v})
	}
	p.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Path < out[j].Path
	})
	return out
}
