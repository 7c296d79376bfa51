package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/hana/meditation-progress-api/internal/testutil"
	"github.com/stretchr/testify/require"
)

var anchor = time.Date(2024, time.March, 13, 15, 0, 0, 0, time.UTC)

func doRequest(t *testing.T, ts *testutil.TestServer, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, ts.APIURL(path), &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func sessionBody(durationSeconds int, completed bool) map[string]interface{} {
	return map[string]interface{}{
		"durationSeconds": durationSeconds,
		"sessionType":     "timer",
		"soundsUsed":      []string{"rain"},
		"wasCompleted":    completed,
	}
}
