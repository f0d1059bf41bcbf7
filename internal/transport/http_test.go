package transport_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/LiamCoop/timetracker/internal/domain/project"
	"github.com/LiamCoop/timetracker/internal/domain/quote"
	"github.com/LiamCoop/timetracker/internal/domain/summary"
	"github.com/LiamCoop/timetracker/internal/domain/timeentry"
	"github.com/LiamCoop/timetracker/internal/testserver"
	"github.com/LiamCoop/timetracker/internal/transport"
	"github.com/stretchr/testify/require"
)

type client struct {
	t     *testing.T
	base  string
	token string
}

func newClient(t *testing.T) (*client, *testserver.TestServer) {
	ts := testserver.New(t, "token1", "user1")
	return &client{t: t, base: ts.Server.URL, token: ts.Token}, ts
}

func (c *client) as(token string) *client {
	return &client{t: c.t, base: c.base, token: token}
}

// do sends body as JSON (strings are sent verbatim) and decodes the
// response into out when non-nil.
func (c *client) do(method, path string, body any, out any) int {
	c.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(c.t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.base+path, reader)
	require.NoError(c.t, err)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (c *client) createProject(name string) project.Project {
	c.t.Helper()
	var proj project.Project
	require.Equal(c.t, http.StatusCreated, c.do(http.MethodPost, "/api/projects", map[string]any{"name": name}, &proj))
	return proj
}

func (c *client) start(projectID string) timeentry.TimeEntry {
	c.t.Helper()
	var entry timeentry.TimeEntry
	require.Equal(c.t, http.StatusCreated, c.do(http.MethodPost, "/api/time-entries", map[string]any{"projectId": projectID}, &entry))
	return entry
}

func TestHealth(t *testing.T) {
	c, _ := newClient(t)
	require.Equal(t, http.StatusOK, c.as("").do(http.MethodGet, "/health", nil, nil))
}

func TestUnauthorized(t *testing.T) {
	c, _ := newClient(t)

	for _, token := range []string{"", "wrong"} {
		var body transport.ErrorResponse
		require.Equal(t, http.StatusUnauthorized, c.as(token).do(http.MethodGet, "/api/projects", nil, &body))
		require.Equal(t, "Unauthorized", body.Error)
	}
}

func TestProjects(t *testing.T) {
	c, _ := newClient(t)

	proj := c.createProject("  Writing  ")
	require.Equal(t, "Writing", proj.Name)
	require.Equal(t, project.DefaultColor, proj.Color)
	require.True(t, proj.IsActive)
	require.Equal(t, "user1", proj.UserID)

	var errBody transport.ErrorResponse
	require.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/api/projects", map[string]any{"name": "   "}, &errBody))
	require.Equal(t, transport.CodeBadRequest, errBody.Code)
	require.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/api/projects", map[string]any{"name": "X", "color": "#12345"}, nil))

	var updated project.Project
	status := c.do(http.MethodPatch, "/api/projects/"+proj.ID, map[string]any{"description": "Blog posts", "color": "#10B981"}, &updated)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Blog posts", *updated.Description)
	require.Equal(t, "#10B981", updated.Color)

	var success map[string]bool
	require.Equal(t, http.StatusOK, c.do(http.MethodDelete, "/api/projects/"+proj.ID, nil, &success))
	require.True(t, success["success"])

	var list []project.Project
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/projects", nil, &list))
	require.Empty(t, list)

	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/projects?includeInactive=true", nil, &list))
	require.Len(t, list, 1)
	require.False(t, list[0].IsActive)

	require.Equal(t, http.StatusNotFound, c.do(http.MethodDelete, "/api/projects/missing", nil, nil))
}

func TestTimeEntryLifecycle(t *testing.T) {
	c, ts := newClient(t)
	proj := c.createProject("Writing")

	entry := c.start(proj.ID)
	require.True(t, entry.Running())
	require.True(t, entry.StartTime.Equal(testserver.Start))

	var errBody transport.ErrorResponse
	require.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/api/time-entries", map[string]any{"projectId": proj.ID}, &errBody))
	require.Equal(t, transport.CodeActiveEntryConflict, errBody.Code)

	var active []timeentry.TimeEntry
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/time-entries?active=true", nil, &active))
	require.Len(t, active, 1)
	require.Equal(t, entry.ID, active[0].ID)
	require.NotNil(t, active[0].Project)
	require.Equal(t, "Writing", active[0].Project.Name)

	// Page-unload beacons send no JSON content type and often no body.
	ts.Clock.Advance(125 * time.Second)
	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+"/api/time-entries/"+entry.ID+"/stop", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+ts.Token)
	req.Header.Set("Content-Type", "text/plain;charset=UTF-8")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	var stopped timeentry.TimeEntry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stopped))
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 2, *stopped.Duration)
	require.False(t, stopped.Running())

	// A new entry can start once the previous one is closed.
	next := c.start(proj.ID)

	var amended timeentry.TimeEntry
	require.Equal(t, http.StatusOK, c.do(http.MethodPatch, "/api/time-entries/"+entry.ID, map[string]any{"description": "Outline"}, &amended))
	require.Equal(t, "Outline", *amended.Description)
	require.Equal(t, 2, *amended.Duration)

	require.Equal(t, http.StatusOK, c.do(http.MethodPatch, "/api/time-entries/"+entry.ID, map[string]any{"description": nil}, &amended))
	require.Nil(t, amended.Description)

	var success map[string]bool
	require.Equal(t, http.StatusOK, c.do(http.MethodDelete, "/api/time-entries/"+next.ID, nil, &success))
	require.True(t, success["success"])
	require.Equal(t, http.StatusNotFound, c.do(http.MethodDelete, "/api/time-entries/"+next.ID, nil, nil))

	var completed []timeentry.TimeEntry
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/time-entries?completed=true&limit=10", nil, &completed))
	require.Len(t, completed, 1)
	require.Equal(t, http.StatusBadRequest, c.do(http.MethodGet, "/api/time-entries?limit=zero", nil, nil))
}

func TestStartValidation(t *testing.T) {
	c, _ := newClient(t)
	proj := c.createProject("Archived")
	require.Equal(t, http.StatusOK, c.do(http.MethodDelete, "/api/projects/"+proj.ID, nil, nil))

	var errBody transport.ErrorResponse
	require.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/api/time-entries", map[string]any{}, &errBody))
	require.Equal(t, transport.CodeBadRequest, errBody.Code)

	require.Equal(t, http.StatusNotFound, c.do(http.MethodPost, "/api/time-entries", map[string]any{"projectId": proj.ID}, &errBody))
	require.Equal(t, transport.CodeNotFound, errBody.Code)
	require.Equal(t, http.StatusNotFound, c.do(http.MethodPost, "/api/time-entries", map[string]any{"projectId": "nope"}, nil))
}

func TestSwitch(t *testing.T) {
	c, ts := newClient(t)
	writing := c.createProject("Writing")
	reading := c.createProject("Reading")

	first := c.start(writing.ID)
	ts.Clock.Advance(30 * time.Minute)

	var switched struct {
		Entry   *timeentry.TimeEntry `json:"entry"`
		Stopped *timeentry.TimeEntry `json:"stopped"`
	}
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/time-entries/switch", map[string]any{"projectId": reading.ID}, &switched))
	require.Equal(t, reading.ID, switched.Entry.ProjectID)
	require.True(t, switched.Entry.Running())
	require.Equal(t, first.ID, switched.Stopped.ID)
	require.Equal(t, 30, *switched.Stopped.Duration)

	var active []timeentry.TimeEntry
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/time-entries?active=true", nil, &active))
	require.Len(t, active, 1)
	require.Equal(t, switched.Entry.ID, active[0].ID)
}

func TestOwnershipIsolation(t *testing.T) {
	c, ts := newClient(t)
	require.NoError(t, ts.AddUser("user2", "token2"))
	other := c.as("token2")

	proj := c.createProject("Private")
	entry := c.start(proj.ID)

	require.Equal(t, http.StatusNotFound, other.do(http.MethodPost, "/api/time-entries/"+entry.ID+"/stop", nil, nil))
	require.Equal(t, http.StatusNotFound, other.do(http.MethodPatch, "/api/projects/"+proj.ID, map[string]any{"name": "Mine"}, nil))
	require.Equal(t, http.StatusNotFound, other.do(http.MethodPost, "/api/time-entries", map[string]any{"projectId": proj.ID}, nil))

	var list []timeentry.TimeEntry
	require.Equal(t, http.StatusOK, other.do(http.MethodGet, "/api/time-entries", nil, &list))
	require.Empty(t, list)

	// Each user has their own active entry slot.
	otherProj := other.createProject("Other")
	other.start(otherProj.ID)
}

func TestSummaries(t *testing.T) {
	c, ts := newClient(t)
	writing := c.createProject("Writing")
	idle := c.createProject("Idle")

	entry := c.start(writing.ID)
	ts.Clock.Advance(125 * time.Second)
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/time-entries/"+entry.ID+"/stop", nil, nil))

	// Running entries do not count.
	c.start(idle.ID)
	ts.Clock.Advance(time.Hour)

	var summaries []summary.ProjectSummary
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/time-summaries", nil, &summaries))
	require.Equal(t, []summary.ProjectSummary{{
		Project:   summary.ProjectRef{ID: writing.ID, Name: "Writing", Color: project.DefaultColor},
		Today:     2,
		ThisWeek:  2,
		ThisMonth: 2,
	}}, summaries)

	var days []summary.DayTotal
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/weekly-time?projectId="+writing.ID, nil, &days))
	require.Len(t, days, 7)
	require.Equal(t, summary.DayTotal{Day: "Sunday", Date: "2026-10-11"}, days[0])
	require.Equal(t, summary.DayTotal{Day: "Friday", Date: "2026-10-16", Minutes: 2}, days[5])

	var weekly []timeentry.TimeEntry
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/time-entries/weekly?projectId="+writing.ID, nil, &weekly))
	require.Len(t, weekly, 1)

	require.Equal(t, http.StatusBadRequest, c.do(http.MethodGet, "/api/weekly-time", nil, nil))
}

func TestDailyQuote(t *testing.T) {
	c, ts := newClient(t)

	var q quote.Quote
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/daily-quotes", nil, &q))
	require.NotEmpty(t, q.Text)
	require.True(t, q.IsActive)

	_, err := ts.DB.Exec(`UPDATE daily_quotes SET is_active = FALSE`)
	require.NoError(t, err)

	var errBody transport.ErrorResponse
	require.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/api/daily-quotes", nil, &errBody))
	require.Equal(t, transport.CodeNotFound, errBody.Code)
}

func TestActivity(t *testing.T) {
	c, _ := newClient(t)
	proj := c.createProject("Writing")
	c.start(proj.ID)

	var events []struct {
		Type string `json:"type"`
	}
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/activity?limit=10", nil, &events))
	require.Len(t, events, 2)

	types := []string{events[0].Type, events[1].Type}
	require.ElementsMatch(t, []string{"project_created", "entry_started"}, types)
}
