// internal/server/handlers_test.go
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mergington-activities/internal/common/config"
	"mergington-activities/internal/common/logger"
	"mergington-activities/pkg/registry"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	reg, err := registry.Default()
	require.NoError(t, err)

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(staticDir, "index.html"),
		[]byte("<html><body>Mergington</body></html>"), 0o644))

	cfg := config.Config{}
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Server.ReadTimeout = 5000
	cfg.Server.WriteTimeout = 5000
	cfg.Server.ShutdownTimeout = 1000
	cfg.Server.StaticDir = staticDir
	cfg.Metrics.Enabled = true
	cfg.Metrics.Path = "/metrics"

	srv := New(cfg, reg, logger.NewTestLogger(t), nil)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

// noRedirectClient returns the raw redirect response instead of following it.
func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func signupURL(base, activity, email string) string {
	return fmt.Sprintf("%s/activities/%s/signup?email=%s",
		base, url.PathEscape(activity), url.QueryEscape(email))
}

func unregisterURL(base, activity, email string) string {
	return fmt.Sprintf("%s/activities/%s/participants?email=%s",
		base, url.PathEscape(activity), url.QueryEscape(email))
}

func doJSON(t *testing.T, method, rawURL string) (int, map[string]interface{}) {
	t.Helper()

	req, err := http.NewRequest(method, rawURL, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func fetchParticipants(t *testing.T, base, activity string) []string {
	t.Helper()

	resp, err := http.Get(base + "/activities")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var activities map[string]registry.Activity
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&activities))

	record, exists := activities[activity]
	require.True(t, exists, "activity %q missing from listing", activity)
	return record.Participants
}

// ==========================
// Routes
// ==========================

func TestRootRedirectsToStaticIndex(t *testing.T) {
	ts := newTestServer(t)

	resp, err := noRedirectClient().Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "/static/index.html", resp.Header.Get("Location"))
}

func TestStaticFilesAreServed(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/static/index.html")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListActivities(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/activities")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var activities map[string]registry.Activity
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&activities))

	assert.Len(t, activities, 9)
	assert.Contains(t, activities, "Chess Club")
	assert.Contains(t, activities, "Programming Class")
	assert.Contains(t, activities, "Gym Class")

	chess := activities["Chess Club"]
	assert.Equal(t, 12, chess.MaxParticipants)
	assert.Equal(t,
		[]string{"michael@mergington.edu", "daniel@mergington.edu"},
		chess.Participants)
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	status, body := doJSON(t, http.MethodGet, ts.URL+"/healthz")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

// ==========================
// Signup
// ==========================

func TestSignup(t *testing.T) {
	tests := []struct {
		name       string
		activity   string
		email      string
		wantStatus int
		wantDetail string
	}{
		{
			name:       "success",
			activity:   "Chess Club",
			email:      "newstudent@mergington.edu",
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown activity",
			activity:   "NonExistent Activity",
			email:      "test@mergington.edu",
			wantStatus: http.StatusNotFound,
			wantDetail: "Activity not found",
		},
		{
			name:       "missing email",
			activity:   "Chess Club",
			email:      "",
			wantStatus: http.StatusBadRequest,
			wantDetail: "Invalid email address",
		},
		{
			name:       "email without at sign",
			activity:   "Chess Club",
			email:      "not-an-email",
			wantStatus: http.StatusBadRequest,
			wantDetail: "Invalid email address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)

			status, body := doJSON(t, http.MethodPost,
				signupURL(ts.URL, tt.activity, tt.email))

			assert.Equal(t, tt.wantStatus, status)
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, body["detail"])
				return
			}
			assert.Contains(t, body["message"], tt.email)
			assert.Contains(t, fetchParticipants(t, ts.URL, tt.activity), tt.email)
		})
	}
}

func TestSignup_DuplicateStudent(t *testing.T) {
	ts := newTestServer(t)

	status, _ := doJSON(t, http.MethodPost,
		signupURL(ts.URL, "Chess Club", "duplicate@mergington.edu"))
	require.Equal(t, http.StatusOK, status)

	status, body := doJSON(t, http.MethodPost,
		signupURL(ts.URL, "Chess Club", "duplicate@mergington.edu"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Student already signed up for this activity", body["detail"])

	// The failed attempt must not have appended a second entry.
	count := 0
	for _, p := range fetchParticipants(t, ts.URL, "Chess Club") {
		if p == "duplicate@mergington.edu" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

// ==========================
// Unregister
// ==========================

func TestUnregister(t *testing.T) {
	tests := []struct {
		name       string
		activity   string
		email      string
		wantStatus int
		wantDetail string
	}{
		{
			name:       "success removes seeded participant",
			activity:   "Chess Club",
			email:      "michael@mergington.edu",
			wantStatus: http.StatusOK,
		},
		{
			name:       "not registered",
			activity:   "Chess Club",
			email:      "notregistered@mergington.edu",
			wantStatus: http.StatusNotFound,
			wantDetail: "Student is not registered for this activity",
		},
		{
			name:       "unknown activity",
			activity:   "NonExistent Activity",
			email:      "test@mergington.edu",
			wantStatus: http.StatusNotFound,
			wantDetail: "Activity not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)

			status, body := doJSON(t, http.MethodDelete,
				unregisterURL(ts.URL, tt.activity, tt.email))

			assert.Equal(t, tt.wantStatus, status)
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, body["detail"])
				return
			}
			assert.Contains(t, body["message"], tt.email)
			assert.NotContains(t, fetchParticipants(t, ts.URL, tt.activity), tt.email)
		})
	}
}

// TestChessClubScenario walks the full documented flow: enroll a new
// student, reject the duplicate, withdraw, and verify the roster returns to
// its seeded state.
func TestChessClubScenario(t *testing.T) {
	ts := newTestServer(t)
	seeded := []string{"michael@mergington.edu", "daniel@mergington.edu"}

	require.Equal(t, seeded, fetchParticipants(t, ts.URL, "Chess Club"))

	status, _ := doJSON(t, http.MethodPost, signupURL(ts.URL, "Chess Club", "new@x.edu"))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, append(append([]string{}, seeded...), "new@x.edu"),
		fetchParticipants(t, ts.URL, "Chess Club"))

	status, body := doJSON(t, http.MethodPost, signupURL(ts.URL, "Chess Club", "new@x.edu"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["detail"], "already signed up")

	status, _ = doJSON(t, http.MethodDelete, unregisterURL(ts.URL, "Chess Club", "new@x.edu"))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, seeded, fetchParticipants(t, ts.URL, "Chess Club"))

	status, body = doJSON(t, http.MethodDelete, unregisterURL(ts.URL, "Knitting Circle", "new@x.edu"))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Activity not found", body["detail"])
}

// ==========================
// Metrics endpoint
// ==========================

func TestMetricsEndpointExposed(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
