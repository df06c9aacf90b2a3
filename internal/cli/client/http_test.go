package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAPIClientWithCmd_EnvCascade(t *testing.T) {
	os.Setenv(envAPIURL, "http://example.test:9999")
	defer os.Unsetenv(envAPIURL)

	client := NewAPIClientWithCmd(nil)
	assert.Equal(t, "http://example.test:9999", client.baseURL)
}

func TestNewAPIClientWithCmd_Default(t *testing.T) {
	os.Unsetenv(envAPIURL)

	client := NewAPIClientWithCmd(nil)
	assert.Equal(t, defaultAPIURL, client.baseURL)
}

func TestGet_ParsesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/history", r.URL.Path)
		w.Write([]byte(`{"data":{"count":2}}`))
	}))
	defer srv.Close()

	client := NewAPIClientWithConfig(srv.URL)
	resp, err := client.Get("/history")
	require.NoError(t, err)

	var data map[string]int
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, 2, data["count"])
}

func TestPost_SendsJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var req SearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "half", req.Query)
		w.Write([]byte(`{"data":{"results":[],"result_count":0,"query":"half"}}`))
	}))
	defer srv.Close()

	client := NewAPIClientWithConfig(srv.URL)
	_, err := client.Post("/search", SearchRequest{Query: "half"})
	require.NoError(t, err)
}

func TestDo_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"could not fetch details for that app"}`))
	}))
	defer srv.Close()

	client := NewAPIClientWithConfig(srv.URL)
	_, err := client.Get("/apps/999999")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "could not fetch details")
}

func TestDo_ErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewAPIClientWithConfig(srv.URL)
	_, err := client.Get("/search")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}
