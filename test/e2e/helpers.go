//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gamepeek/gamepeek/internal/api/handlers"
	"github.com/gamepeek/gamepeek/internal/server"
	"github.com/gamepeek/gamepeek/internal/service"
	"github.com/gamepeek/gamepeek/internal/steam"
	"github.com/gamepeek/gamepeek/internal/store"
)

// E2ETestEnv holds all resources needed for E2E tests
type E2ETestEnv struct {
	T            *testing.T
	Ctx          context.Context
	DataDir      string
	SteamAPI     *httptest.Server
	SteamStore   *httptest.Server
	ServerURL    string
	ServerCloser func()
	BinaryDir    string
	HTTPClient   *http.Client
}

// FakeCatalog is the app list served by the fake Steam Web API.
var FakeCatalog = []fakeApp{
	{AppID: 570, Name: "Dota 2"},
	{AppID: 730, Name: "Counter-Strike 2"},
	{AppID: 440, Name: "Team Fortress 2"},
	{AppID: 1091500, Name: "Cyberpunk 2077"},
	{AppID: 292030, Name: "The Witcher 3: Wild Hunt"},
}

type fakeApp struct {
	AppID int    `json:"appid"`
	Name  string `json:"name"`
}

// SetupE2EEnv creates a full E2E test environment with fake Steam
// upstreams, a temporary data directory, and an in-process server.
func SetupE2EEnv(t *testing.T) *E2ETestEnv {
	ctx := context.Background()

	dataDir := t.TempDir()
	steamAPI := newFakeSteamAPI(t)
	steamStore := newFakeSteamStore(t)

	port, err := getFreePort()
	if err != nil {
		t.Fatalf("failed to get free port: %v", err)
	}

	serverURL, serverCloser := startServer(t, dataDir, steamAPI.URL, steamStore.URL, port)

	return &E2ETestEnv{
		T:            t,
		Ctx:          ctx,
		DataDir:      dataDir,
		SteamAPI:     steamAPI,
		SteamStore:   steamStore,
		ServerURL:    serverURL,
		ServerCloser: serverCloser,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Cleanup releases all resources
func (e *E2ETestEnv) Cleanup() {
	if e.ServerCloser != nil {
		e.ServerCloser()
	}
	if e.SteamAPI != nil {
		e.SteamAPI.Close()
	}
	if e.SteamStore != nil {
		e.SteamStore.Close()
	}
	if e.BinaryDir != "" {
		os.RemoveAll(e.BinaryDir)
	}
}

// BuildBinaries builds the gamepeek and gamepeekd binaries
func (e *E2ETestEnv) BuildBinaries() {
	tmpDir, err := os.MkdirTemp("", "gamepeek-e2e-*")
	if err != nil {
		e.T.Fatalf("failed to create temp dir: %v", err)
	}
	e.BinaryDir = tmpDir

	cmd := exec.Command("go", "build", "-o", filepath.Join(tmpDir, "gamepeekd"), "./cmd/gamepeekd")
	cmd.Dir = "../.."
	if out, err := cmd.CombinedOutput(); err != nil {
		e.T.Fatalf("failed to build gamepeekd: %v\n%s", err, out)
	}

	cmd = exec.Command("go", "build", "-o", filepath.Join(tmpDir, "gamepeek"), "./cmd/gamepeek")
	cmd.Dir = "../.."
	if out, err := cmd.CombinedOutput(); err != nil {
		e.T.Fatalf("failed to build gamepeek: %v\n%s", err, out)
	}
}

// RunGamepeek runs the gamepeek CLI command
func (e *E2ETestEnv) RunGamepeek(workDir string, args ...string) (string, error) {
	cmd := exec.Command(filepath.Join(e.BinaryDir, "gamepeek"), args...)
	cmd.Dir = workDir
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("GAMEPEEK_API_URL=%s", e.ServerURL),
	)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// APIResponse represents a standard API response
type APIResponse struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error,omitempty"`
}

// Get performs a GET request
func (e *E2ETestEnv) Get(path string) (*APIResponse, error) {
	return e.doRequest("GET", path, nil)
}

// Post performs a POST request
func (e *E2ETestEnv) Post(path string, body interface{}) (*APIResponse, error) {
	return e.doRequest("POST", path, body)
}

func (e *E2ETestEnv) doRequest(method, path string, body interface{}) (*APIResponse, error) {
	url := e.ServerURL + path

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var apiResp APIResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
		}
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, apiResp.Error)
	}

	return &apiResp, nil
}

// newFakeSteamAPI serves the GetAppList endpoint with FakeCatalog.
func newFakeSteamAPI(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ISteamApps/GetAppList/v2/" {
			http.NotFound(w, r)
			return
		}
		resp := map[string]any{
			"applist": map[string]any{
				"apps": FakeCatalog,
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

// newFakeSteamStore serves the appdetails endpoint for every app in
// FakeCatalog and reports success=false for unknown IDs.
func newFakeSteamStore(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/appdetails" {
			http.NotFound(w, r)
			return
		}
		idStr := r.URL.Query().Get("appids")
		id, err := strconv.Atoi(idStr)
		if err != nil {
			http.Error(w, "bad appids", http.StatusBadRequest)
			return
		}

		var name string
		for _, app := range FakeCatalog {
			if app.AppID == id {
				name = app.Name
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if name == "" {
			json.NewEncoder(w).Encode(map[string]any{
				idStr: map[string]any{"success": false},
			})
			return
		}

		json.NewEncoder(w).Encode(map[string]any{
			idStr: map[string]any{
				"success": true,
				"data": map[string]any{
					"name":              name,
					"short_description": "An excellent game.",
					"is_free":           id == 570,
					"header_image":      fmt.Sprintf("https://cdn.example.com/%d/header.jpg", id),
					"price_overview": map[string]any{
						"final_formatted": "$19.99",
					},
					"metacritic": map[string]any{
						"score": 90,
					},
				},
			},
		})
	}))
}

// startServer wires real stores, services, and handlers against the
// fake upstreams and serves them on the given port.
func startServer(t *testing.T, dataDir, apiURL, storeURL string, port int) (string, func()) {
	catalogStore := store.NewCatalogStore(filepath.Join(dataDir, "apps_cache.json"))
	historyStore := store.NewHistoryStore(filepath.Join(dataDir, "search_history.json"))

	steamClient := steam.NewClientWithConfig(steam.Config{
		APIBaseURL:   apiURL,
		StoreBaseURL: storeURL,
		DetailsLimit: 1000, // no throttling in tests
		DetailsBurst: 100,
	})

	catalogSvc := service.NewCatalogService(catalogStore, steamClient)
	detailsSvc := service.NewDetailsService(steamClient)

	cfg := server.RouterConfig{
		SearchHandler:  handlers.NewSearchHandler(catalogSvc, historyStore),
		DetailsHandler: handlers.NewDetailsHandler(detailsSvc, historyStore),
		HistoryHandler: handlers.NewHistoryHandler(historyStore),
		CatalogHandler: handlers.NewCatalogHandler(catalogSvc),
	}

	router := server.NewRouter(cfg)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := fmt.Sprintf("http://localhost:%d", port)
	waitForServer(t, serverURL, 10*time.Second)

	return serverURL, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
}

func waitForServer(t *testing.T, url string, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("server did not start within %v", timeout)
}

func getFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
