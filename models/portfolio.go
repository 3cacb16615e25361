package models

// Profile is the landing banner content.
type Profile struct {
	Name     string       `yaml:"name" json:"name"`
	Title    string       `yaml:"title" json:"title"`
	Tagline  string       `yaml:"tagline" json:"tagline"`
	Email    string       `yaml:"email" json:"email"`
	Socials  []SocialLink `yaml:"socials" json:"socials"`
	Greeting string       `yaml:"greeting" json:"greeting"`
}

// SocialLink is an outbound profile link.
type SocialLink struct {
	Label string `yaml:"label" json:"label"`
	URL   string `yaml:"url" json:"url"`
}

// Project is a showcased project. Votes and Feedback hold the static seed values.
type Project struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	TechStack   []string `yaml:"tech_stack" json:"tech_stack"`
	Images      []string `yaml:"images" json:"images"`
	GithubURL   string   `yaml:"github_url" json:"github_url"`
	LiveURL     string   `yaml:"live_url" json:"live_url"`
	Votes       int      `yaml:"votes" json:"votes"`
	Feedback    []string `yaml:"feedback" json:"feedback"`
}

// Idea is a future project visitors can vote on.
type Idea struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Votes       int    `yaml:"votes" json:"votes"`
}

// Skill is a technology with a self-assessed level in [0,100].
type Skill struct {
	Name     string `yaml:"name" json:"name"`
	Level    int    `yaml:"level" json:"level"`
	Category string `yaml:"category" json:"category"`
	Projects int    `yaml:"projects" json:"projects"`
	Tier     string `yaml:"-" json:"tier"`
}

// Achievement is a certification or milestone.
type Achievement struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Date        string `yaml:"date" json:"date"`
}

// CodingStat is a headline number shown next to the skills.
type CodingStat struct {
	Label  string `yaml:"label" json:"label"`
	Value  string `yaml:"value" json:"value"`
	Change string `yaml:"change" json:"change"`
}

// TimelineEntry is one milestone on the timeline.
type TimelineEntry struct {
	Period      string `yaml:"period" json:"period"`
	Title       string `yaml:"title" json:"title"`
	Place       string `yaml:"place" json:"place"`
	Description string `yaml:"description" json:"description"`
}

// Collaboration is a kind of joint work offered on the contact section.
type Collaboration struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}
