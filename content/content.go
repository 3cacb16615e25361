// Package content loads the static portfolio document served by the API.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cppla/folio/models"
)

//go:embed portfolio.yaml
var defaultDocument []byte

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrIdeaNotFound    = errors.New("idea not found")
)

// Document is the full static content of the page.
type Document struct {
	Sections       []string               `yaml:"sections"`
	Profile        models.Profile         `yaml:"profile"`
	Projects       []models.Project       `yaml:"projects"`
	Ideas          []models.Idea          `yaml:"ideas"`
	Skills         []models.Skill         `yaml:"skills"`
	Achievements   []models.Achievement   `yaml:"achievements"`
	CodingStats    []models.CodingStat    `yaml:"coding_stats"`
	Timeline       []models.TimelineEntry `yaml:"timeline"`
	Collaborations []models.Collaboration `yaml:"collaborations"`
}

// Load reads the document at path, or the embedded default when path is empty.
func Load(path string) (*Document, error) {
	raw := defaultDocument
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read content %s: %w", path, err)
		}
		raw = b
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML document.
func Parse(raw []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	for i := range doc.Skills {
		doc.Skills[i].Tier = SkillTier(doc.Skills[i].Level)
	}
	return &doc, nil
}

// Validate checks the invariants the handlers rely on.
func (d *Document) Validate() error {
	if len(d.Sections) == 0 {
		return errors.New("content: at least one section is required")
	}
	titles := make(map[string]struct{}, len(d.Projects))
	for _, p := range d.Projects {
		key := strings.ToLower(strings.TrimSpace(p.Title))
		if key == "" {
			return errors.New("content: project title cannot be empty")
		}
		if _, dup := titles[key]; dup {
			return fmt.Errorf("content: duplicate project title %q", p.Title)
		}
		titles[key] = struct{}{}
		if p.Votes < 0 {
			return fmt.Errorf("content: project %q has negative votes", p.Title)
		}
	}
	for _, s := range d.Skills {
		if s.Level < 0 || s.Level > 100 {
			return fmt.Errorf("content: skill %q level %d out of range", s.Name, s.Level)
		}
	}
	return nil
}

// Project returns a copy of the project at index.
func (d *Document) Project(index int) (models.Project, error) {
	if index < 0 || index >= len(d.Projects) {
		return models.Project{}, ErrProjectNotFound
	}
	p := d.Projects[index]
	p.Feedback = append([]string(nil), p.Feedback...)
	return p, nil
}

// Idea returns the idea at index.
func (d *Document) Idea(index int) (models.Idea, error) {
	if index < 0 || index >= len(d.Ideas) {
		return models.Idea{}, ErrIdeaNotFound
	}
	return d.Ideas[index], nil
}

// SkillTier buckets a skill level the way the page colours its bars.
func SkillTier(level int) string {
	switch {
	case level >= 90:
		return "expert"
	case level >= 75:
		return "advanced"
	case level >= 60:
		return "intermediate"
	default:
		return "beginner"
	}
}

// SkillsByCategory groups skills by category, optionally keeping only one
// category (case-insensitive). Each group keeps document order.
func (d *Document) SkillsByCategory(only string) map[string][]models.Skill {
	out := map[string][]models.Skill{}
	for _, s := range d.Skills {
		if only != "" && !strings.EqualFold(s.Category, only) {
			continue
		}
		out[s.Category] = append(out[s.Category], s)
	}
	return out
}

// Categories returns the sorted distinct skill categories.
func (d *Document) Categories() []string {
	seen := map[string]struct{}{}
	var cats []string
	for _, s := range d.Skills {
		if _, ok := seen[s.Category]; ok {
			continue
		}
		seen[s.Category] = struct{}{}
		cats = append(cats, s.Category)
	}
	sort.Strings(cats)
	return cats
}
