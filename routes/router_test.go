package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/folio/config"
	"github.com/cppla/folio/content"
	"github.com/cppla/folio/middleware"
	"github.com/cppla/folio/models"
	"github.com/cppla/folio/utils"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type client struct {
	t       *testing.T
	handler http.Handler
	session string
}

func testConfig() config.AppConfig {
	return config.AppConfig{
		GinMode:            "test",
		RateLimitPerMinute: 10000,
		AllowedOrigins:     []string{"*"},
		GateMinLen:         10,
		GateMaxLen:         1000,
		GateDisallowed:     config.DefaultDisallowedWords,
		FeedbackAuthorName: "Anonymous",
		ContactAckMessage:  "Thank you! Your message has been sent. I'll get back to you soon.",
	}
}

func newTestRouter(t *testing.T) (*gin.Engine, Deps) {
	t.Helper()
	doc, err := content.Load("")
	require.NoError(t, err)
	deps := Deps{
		Content:   doc,
		Sessions:  utils.NewSessionStore(time.Minute),
		PageViews: utils.NewPageViews(),
		Cache:     utils.NewCache(nil),
	}
	return SetupRouter(testConfig(), deps), deps
}

func newClient(t *testing.T, h http.Handler) *client {
	return &client{t: t, handler: h}
}

func (c *client) do(method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.session != "" {
		req.Header.Set(middleware.SessionHeader, c.session)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	if sid := rec.Header().Get(middleware.SessionHeader); sid != "" {
		c.session = sid
	}

	var env envelope
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

type feedbackData struct {
	Feedback models.Feedback `json:"feedback"`
}

type feedbackList struct {
	Items      []models.Feedback `json:"items"`
	Pagination struct {
		Total int `json:"total"`
	} `json:"pagination"`
}

func TestFeedbackAcceptedRecordStartsAtZero(t *testing.T) {
	r, _ := newTestRouter(t)
	c := newClient(t, r)

	rec, env := c.do(http.MethodPost, "/api/v1/feedback", gin.H{"message": "Great work!", "email": "fan@example.com"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "fan@example.com")

	fb := decode[feedbackData](t, env.Data).Feedback
	assert.NotEmpty(t, fb.ID)
	assert.Equal(t, "Great work!", fb.Body)
	assert.Equal(t, "Anonymous", fb.Author)
	assert.Equal(t, models.CategoryGeneral, fb.Category)
	assert.Zero(t, fb.HelpfulCount)
	assert.False(t, fb.CreatedAt.IsZero())
}

func TestFeedbackRejections(t *testing.T) {
	cases := []struct {
		name    string
		message string
		code    int
		reason  string
	}{
		{"disallowed beats short", "spam", 42201, "disallowed content"},
		{"too short", "tiny", 42202, "too short"},
		{"whitespace only", strings.Repeat(" ", 20), 42202, "too short"},
		{"too long", strings.Repeat("a", 1001), 42203, "too long"},
		{"disallowed beats long", strings.Repeat("a", 1001) + " offensive", 42201, "disallowed content"},
		{"tag wrapped word", "this is <spam> ok ok friend", 42201, "disallowed content"},
		{"word inside script", "<script>spam</script>Great portfolio work", 42201, "disallowed content"},
		{"self closing tag", "Great work <hate/> truly", 42201, "disallowed content"},
		{"entity encoded word", "nice &lt;spam&gt; here", 42201, "disallowed content"},
		{"word split by tags", "off<i></i>ensive remarks here", 42201, "disallowed content"},
		{"short once stripped", "<b>tiny</b><i>        </i>", 42202, "too short"},
		{"entities count once", "Tom &amp; Jo", 42202, "too short"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, _ := newTestRouter(t)
			c := newClient(t, r)

			rec, env := c.do(http.MethodPost, "/api/v1/feedback", gin.H{"message": tc.message})
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Equal(t, tc.code, env.Code)
			assert.Equal(t, tc.reason, env.Message)

			_, env = c.do(http.MethodGet, "/api/v1/feedback", nil)
			assert.Empty(t, decode[feedbackList](t, env.Data).Items)
		})
	}
}

func TestFeedbackStoresSanitizedBody(t *testing.T) {
	r, _ := newTestRouter(t)
	c := newClient(t, r)

	rec, env := c.do(http.MethodPost, "/api/v1/feedback", gin.H{"message": "<b>Great</b> work &amp; thanks"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Great work & thanks", decode[feedbackData](t, env.Data).Feedback.Body)

	// 1500 bytes of input, 300 runes once decoded
	rec, env = c.do(http.MethodPost, "/api/v1/feedback", gin.H{"message": strings.Repeat("&amp;", 300)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, strings.Repeat("&", 300), decode[feedbackData](t, env.Data).Feedback.Body)
}

func TestFeedbackNewestFirstAndSessionScoped(t *testing.T) {
	r, _ := newTestRouter(t)
	c := newClient(t, r)

	for _, msg := range []string{"first message here", "second message here"} {
		rec, _ := c.do(http.MethodPost, "/api/v1/feedback", gin.H{"message": msg, "category": "projects", "name": "Sam"})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	_, env := c.do(http.MethodGet, "/api/v1/feedback", nil)
	list := decode[feedbackList](t, env.Data)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "second message here", list.Items[0].Body)
	assert.Equal(t, "first message here", list.Items[1].Body)
	assert.Equal(t, "Sam", list.Items[0].Author)
	assert.Equal(t, 2, list.Pagination.Total)

	_, env = c.do(http.MethodGet, "/api/v1/feedback?category=general", nil)
	assert.Empty(t, decode[feedbackList](t, env.Data).Items)

	other := newClient(t, r)
	_, env = other.do(http.MethodGet, "/api/v1/feedback", nil)
	assert.Empty(t, decode[feedbackList](t, env.Data).Items)
	assert.NotEqual(t, c.session, other.session)
}

func TestFeedbackHelpfulCountsEveryClick(t *testing.T) {
	r, _ := newTestRouter(t)
	c := newClient(t, r)

	_, env := c.do(http.MethodPost, "/api/v1/feedback", gin.H{"message": "Very helpful portfolio"})
	id := decode[feedbackData](t, env.Data).Feedback.ID

	for i := 0; i < 3; i++ {
		rec, _ := c.do(http.MethodPost, "/api/v1/feedback/"+id+"/helpful", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	_, env = c.do(http.MethodGet, "/api/v1/feedback", nil)
	assert.Equal(t, 3, decode[feedbackList](t, env.Data).Items[0].HelpfulCount)

	rec, env := c.do(http.MethodPost, "/api/v1/feedback/nope/helpful", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 40410, env.Code)
}

func TestFeedbackInvalidCategory(t *testing.T) {
	r, _ := newTestRouter(t)
	c := newClient(t, r)

	rec, env := c.do(http.MethodPost, "/api/v1/feedback", gin.H{"message": "Great work!", "category": "gossip"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 40011, env.Code)

	rec, _ = c.do(http.MethodPost, "/api/v1/feedback", gin.H{"message": "Great work!", "email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContactSubmission(t *testing.T) {
	r, _ := newTestRouter(t)
	c := newClient(t, r)

	rec, _ := c.do(http.MethodPost, "/api/v1/contact", gin.H{"name": "Jo", "message": "Hello there friend"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "required fields are enforced")

	form := gin.H{
		"name":    "Jo",
		"email":   "jo@example.com",
		"subject": "Hiring",
		"message": "Would you like to talk about a role?",
		"type":    "hiring",
	}
	rec, env := c.do(http.MethodPost, "/api/v1/contact", form)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decode[struct {
		Message string                `json:"message"`
		Contact models.ContactMessage `json:"contact"`
	}](t, env.Data)
	assert.Equal(t, "Thank you! Your message has been sent. I'll get back to you soon.", data.Message)
	assert.Equal(t, models.ContactHiring, data.Contact.Type)

	form["message"] = "this is spam honestly"
	rec, env = c.do(http.MethodPost, "/api/v1/contact", form)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "disallowed content", env.Message)

	form["message"] = "<em>spam</em> dressed as a question?"
	rec, env = c.do(http.MethodPost, "/api/v1/contact", form)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, 42201, env.Code)

	form["message"] = "A perfectly fine message"
	form["type"] = "sales"
	rec, _ = c.do(http.MethodPost, "/api/v1/contact", form)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProjectsVotesAndFeedback(t *testing.T) {
	r, _ := newTestRouter(t)
	c := newClient(t, r)

	type projectData struct {
		Project models.Project `json:"project"`
	}

	rec, env := c.do(http.MethodPost, "/api/v1/projects/0/vote", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 25, decode[projectData](t, env.Data).Project.Votes)

	rec, env = c.do(http.MethodPost, "/api/v1/projects/0/feedback", gin.H{"message": "  Really clean checkout flow  "})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	fb := decode[projectData](t, env.Data).Project.Feedback
	assert.Equal(t, "Really clean checkout flow", fb[len(fb)-1])

	rec, _ = c.do(http.MethodPost, "/api/v1/projects/0/feedback", gin.H{"message": "hate"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	rec, _ = c.do(http.MethodPost, "/api/v1/projects/0/feedback", gin.H{"message": "<script>hate</script>Nice checkout flow"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	_, env = c.do(http.MethodGet, "/api/v1/projects", nil)
	items := decode[struct {
		Items []models.Project `json:"items"`
	}](t, env.Data).Items
	require.Len(t, items, 3)
	assert.Equal(t, 25, items[0].Votes)
	assert.Len(t, items[0].Feedback, 3)
	assert.Equal(t, 18, items[1].Votes)

	other := newClient(t, r)
	_, env = other.do(http.MethodGet, "/api/v1/projects/0", nil)
	assert.Equal(t, 24, decode[projectData](t, env.Data).Project.Votes)

	rec, env = c.do(http.MethodGet, "/api/v1/projects/9", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 40420, env.Code)
	rec, _ = c.do(http.MethodPost, "/api/v1/projects/x/vote", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIdeasVote(t *testing.T) {
	r, _ := newTestRouter(t)
	c := newClient(t, r)

	c.do(http.MethodPost, "/api/v1/ideas/1/vote", nil)
	rec, env := c.do(http.MethodPost, "/api/v1/ideas/1/vote", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	idea := decode[struct {
		Idea models.Idea `json:"idea"`
	}](t, env.Data).Idea
	assert.Equal(t, "AR Shopping Experience", idea.Title)
	assert.Equal(t, 24, idea.Votes)

	rec, _ = c.do(http.MethodPost, "/api/v1/ideas/7/vote", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStaticSections(t *testing.T) {
	r, _ := newTestRouter(t)
	c := newClient(t, r)

	_, env := c.do(http.MethodGet, "/api/v1/sections", nil)
	sections := decode[struct {
		Items []string `json:"items"`
	}](t, env.Data).Items
	assert.Equal(t, "home", sections[0])
	assert.Equal(t, "contact", sections[len(sections)-1])

	_, env = c.do(http.MethodGet, "/api/v1/skills?category=language", nil)
	skills := decode[struct {
		Groups map[string][]models.Skill `json:"groups"`
	}](t, env.Data)
	require.Len(t, skills.Groups["Language"], 2)
	assert.Equal(t, "expert", skills.Groups["Language"][0].Tier)

	_, env = c.do(http.MethodGet, "/api/v1/timeline", nil)
	tl := decode[struct {
		ComingSoon bool `json:"coming_soon"`
	}](t, env.Data)
	assert.True(t, tl.ComingSoon)

	_, env = c.do(http.MethodGet, "/api/v1/profile", nil)
	assert.Contains(t, string(env.Data), "Full Stack Developer")

	_, env = c.do(http.MethodGet, "/api/v1/contact/collaborations", nil)
	collabs := decode[struct {
		Items []models.Collaboration `json:"items"`
		Types []models.ContactType   `json:"types"`
	}](t, env.Data)
	require.Len(t, collabs.Items, 3)
	assert.Equal(t, "Hackathons", collabs.Items[0].Title)
	assert.Contains(t, collabs.Types, models.ContactHiring)

	_, env = c.do(http.MethodGet, "/api/v1/config/form", nil)
	rules := decode[struct {
		Min int `json:"min_length"`
		Max int `json:"max_length"`
	}](t, env.Data)
	assert.Equal(t, 10, rules.Min)
	assert.Equal(t, 1000, rules.Max)
}

func TestStatsCountSessionsAndViews(t *testing.T) {
	r, deps := newTestRouter(t)
	c := newClient(t, r)

	c.do(http.MethodGet, "/api/v1/projects", nil)
	c.do(http.MethodPost, "/api/v1/feedback", gin.H{"message": "Great work!"})

	_, env := c.do(http.MethodGet, "/api/v1/stats", nil)
	stats := decode[struct {
		Sessions int   `json:"session_count"`
		Views    int64 `json:"page_views_today"`
		Feedback int   `json:"session_feedback"`
	}](t, env.Data)
	assert.Equal(t, deps.Sessions.Len(), stats.Sessions)
	assert.Equal(t, int64(1), stats.Views)
	assert.Equal(t, 1, stats.Feedback)
}

func TestUnknownAPIRoute(t *testing.T) {
	r, _ := newTestRouter(t)
	c := newClient(t, r)

	rec, env := c.do(http.MethodGet, "/api/v2/anything", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 40400, env.Code)
}
