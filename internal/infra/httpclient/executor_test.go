package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutor_TimeoutStillReportsElapsed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	exec := NewExecutor(WithTimeout(20 * time.Millisecond))
	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := exec.Send(context.Background(), req)
	require.Error(t, err)
	assert.Greater(t, resp.Elapsed, time.Duration(0))
}

func TestExecutor_PostJSON(t *testing.T) {
	var gotUA, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("queued"))
	}))
	defer srv.Close()

	resp, err := NewExecutor().PostJSON(context.Background(), srv.URL, map[string]string{"bed": "12B"}, nil)
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Equal(t, http.StatusAccepted, resp.Status)
	assert.Equal(t, "queued", string(resp.Body))
	assert.False(t, resp.Truncated)
	assert.Equal(t, "snh", gotUA)
	assert.Equal(t, "application/json", gotType)
}

func TestExecutor_CapsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(strings.Repeat("x", MaxBody+10)))
	}))
	defer srv.Close()

	resp, err := NewExecutor().PostJSON(context.Background(), srv.URL, nil, nil)
	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.True(t, resp.Truncated)
	assert.Len(t, resp.Body, MaxBody)
}

func TestExecutor_PostJSONRejectsBadURL(t *testing.T) {
	_, err := NewExecutor().PostJSON(context.Background(), "ftp://x/y", nil, nil)
	require.Error(t, err)
}
