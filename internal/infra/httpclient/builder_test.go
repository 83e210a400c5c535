package httpclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
)

func TestBuildJSONRequest(t *testing.T) {
	req, err := BuildJSONRequest(context.Background(), http.MethodPost, " http://ward.local/hook ",
		map[string]string{"recipient": "posto-3"},
		map[string]string{"X-Channel": "ward"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "ward.local", req.URL.Host)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "ward", req.Header.Get("X-Channel"))

	body, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	var decoded map[string]string
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "posto-3", decoded["recipient"])
}

func TestBuildJSONRequest_KeepsExplicitContentType(t *testing.T) {
	req, err := BuildJSONRequest(context.Background(), http.MethodPut, "https://x.example/a", 1,
		map[string]string{"Content-Type": "application/vnd.snh+json"})
	require.NoError(t, err)
	assert.Equal(t, "application/vnd.snh+json", req.Header.Get("Content-Type"))
}

func TestBuildJSONRequest_RejectsBadURL(t *testing.T) {
	for _, raw := range []string{"", "ward.local/hook", "ftp://x/y", "http://"} {
		_, err := BuildJSONRequest(context.Background(), http.MethodPost, raw, nil, nil)
		require.Error(t, err, raw)
		assert.True(t, domain.IsKind(err, domain.KindInvalidConfig), raw)
	}
}

func TestBuildJSONRequest_UnencodablePayload(t *testing.T) {
	_, err := BuildJSONRequest(context.Background(), http.MethodPost, "http://x/y", make(chan int), nil)
	assert.True(t, domain.IsKind(err, domain.KindExecution))
}
