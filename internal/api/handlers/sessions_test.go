package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/hana/meditation-progress-api/internal/domain"
	"github.com/hana/meditation-progress-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessions_Create(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	resp := doRequest(t, ts, http.MethodPost, "/sessions", token, sessionBody(600, true))
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var session domain.PracticeSession
	testutil.AssertJSONResponse(t, resp, &session)
	assert.Equal(t, 600, session.DurationSeconds)
	assert.Equal(t, "timer", session.SessionType)
	assert.True(t, session.WasCompleted)
	assert.True(t, session.CompletedAt.Equal(anchor))
}

func TestSessions_CreateValidation(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	resp := doRequest(t, ts, http.MethodPost, "/sessions", token, sessionBody(-5, true))
	testutil.AssertStatusCode(t, resp, http.StatusBadRequest)

	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	testutil.AssertJSONResponse(t, resp, &body)
	assert.Equal(t, "validation failed", body.Error)
	assert.Contains(t, body.Fields, "durationSeconds")

	// The rejected session never reached storage
	resp = doRequest(t, ts, http.MethodGet, "/sessions", token, nil)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var sessions []domain.PracticeSession
	testutil.AssertJSONResponse(t, resp, &sessions)
	assert.Empty(t, sessions)
}

func TestSessions_CreateRequiresAuth(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := doRequest(t, ts, http.MethodPost, "/sessions", "", sessionBody(600, true))
	testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
}

func TestSessions_List(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	for i := 0; i < 3; i++ {
		resp := doRequest(t, ts, http.MethodPost, "/sessions", token, sessionBody(600, true))
		testutil.AssertStatusCode(t, resp, http.StatusCreated)
		ts.Clock.Advance(time.Hour)
	}

	resp := doRequest(t, ts, http.MethodGet, "/sessions?limit=2", token, nil)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var sessions []domain.PracticeSession
	testutil.AssertJSONResponse(t, resp, &sessions)
	require.Len(t, sessions, 2)
	assert.True(t, sessions[0].CompletedAt.After(sessions[1].CompletedAt))
}

func TestSessions_ListRejectsBadLimit(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	for _, limit := range []string{"0", "-1", "abc"} {
		resp := doRequest(t, ts, http.MethodGet, "/sessions?limit="+limit, token, nil)
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	}
}

func TestSessions_Range(t *testing.T) {
	ts := testutil.NewTestServer(t)
	user, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	// Yesterday and today
	testutil.NewSessionBuilder(user.ID).
		CompletedAt(anchor.AddDate(0, 0, -1)).
		Build(t, ts.Repos.PracticeSession)
	testutil.NewSessionBuilder(user.ID).
		CompletedAt(anchor).
		Build(t, ts.Repos.PracticeSession)

	resp := doRequest(t, ts, http.MethodGet,
		"/sessions/range?startDate=2024-03-13T00:00:00Z&endDate=2024-03-13T23:59:59Z", token, nil)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var sessions []domain.PracticeSession
	testutil.AssertJSONResponse(t, resp, &sessions)
	require.Len(t, sessions, 1)
	assert.True(t, sessions[0].CompletedAt.Equal(anchor))
}

func TestSessions_RangeRequiresBothBounds(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	tests := []struct {
		name  string
		query string
		field string
	}{
		{"missing start", "endDate=2024-03-13", "startDate"},
		{"missing end", "startDate=2024-03-13", "endDate"},
		{"malformed start", "startDate=13/03/2024&endDate=2024-03-13", "startDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, ts, http.MethodGet, "/sessions/range?"+tt.query, token, nil)
			testutil.AssertStatusCode(t, resp, http.StatusBadRequest)

			var body struct {
				Fields map[string]string `json:"fields"`
			}
			testutil.AssertJSONResponse(t, resp, &body)
			assert.Contains(t, body.Fields, tt.field)
		})
	}
}
