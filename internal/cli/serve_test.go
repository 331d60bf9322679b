package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/radar/pkg/cache"
	"github.com/matzehuels/radar/pkg/errors"
	"github.com/matzehuels/radar/pkg/pipeline"
	"github.com/matzehuels/radar/pkg/radar"
)

func newTestServer(t *testing.T, origins ...string) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	opts := pipeline.Options{
		Width:  400,
		Height: 400,
		Chart:  radar.Options{Radius: radar.Float(150)},
		Data: radar.Dataset{
			Labels: []string{"A", "B", "C"},
			Values: []float64{10, 5, 8},
		},
	}
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
	s, err := newChartServer(opts, runner, logger)
	if err != nil {
		t.Fatalf("newChartServer() error: %v", err)
	}
	ts := httptest.NewServer(s.router(origins))
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body any, out any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp
}

func TestServeHealth(t *testing.T) {
	ts := newTestServer(t)

	var body map[string]string
	resp := doJSON(t, http.MethodGet, ts.URL+"/healthz", nil, &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
	if !strings.HasPrefix(resp.Header.Get("Server"), "radar/") {
		t.Errorf("Server header = %q", resp.Header.Get("Server"))
	}
}

func TestServeIndex(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(data), `width="400"`) || !strings.Contains(string(data), "/api/hover") {
		t.Errorf("index page missing chart or script:\n%s", data)
	}
}

func TestServeHoverAndLeave(t *testing.T) {
	ts := newTestServer(t)

	var state chartResponse
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/hover", pointerRequest{X: 200, Y: 50}, &state)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("hover status = %d", resp.StatusCode)
	}
	if state.Active == nil || *state.Active != 0 {
		t.Fatalf("active = %v, want 0", state.Active)
	}
	tip := state.Tooltip
	if !tip.Visible || tip.Content != "A: 10" {
		t.Errorf("tooltip = %+v, want visible with %q", tip, "A: 10")
	}
	if tip.Left != 212 || tip.Top != 62 {
		t.Errorf("tooltip at (%g, %g), want (212, 62)", tip.Left, tip.Top)
	}
	if len(state.Points) != 3 {
		t.Errorf("points = %d, want 3", len(state.Points))
	}

	// A miss hides the tooltip.
	doJSON(t, http.MethodPost, ts.URL+"/api/hover", pointerRequest{X: 5, Y: 5}, &state)
	if state.Active != nil || state.Tooltip.Visible {
		t.Errorf("tooltip should hide on a miss: %+v", state)
	}

	doJSON(t, http.MethodPost, ts.URL+"/api/hover", pointerRequest{X: 200, Y: 50}, &state)
	doJSON(t, http.MethodPost, ts.URL+"/api/leave", nil, &state)
	if state.Active != nil || state.Tooltip.Visible {
		t.Errorf("tooltip should hide on leave: %+v", state)
	}
	if state.Tooltip.Left != 0 || state.Tooltip.Top != 0 {
		t.Errorf("placement should reset on leave: %+v", state.Tooltip)
	}
}

func TestServeHoverBadRequest(t *testing.T) {
	ts := newTestServer(t)
	var e errorResponse
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/hover", map[string]any{"x": 1, "z": 2}, &e)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if e.Code != errors.ErrCodeInvalidInput {
		t.Errorf("code = %q, want %q", e.Code, errors.ErrCodeInvalidInput)
	}
}

func TestServeUpdateData(t *testing.T) {
	ts := newTestServer(t)

	// Show a tooltip first; new data hides it.
	var state chartResponse
	doJSON(t, http.MethodPost, ts.URL+"/api/hover", pointerRequest{X: 200, Y: 50}, &state)

	resp := doJSON(t, http.MethodPut, ts.URL+"/api/data", dataRequest{
		Labels: []string{"W", "X", "Y", "Z"},
		Values: []float64{1, 2, 3, 4},
	}, &state)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if len(state.Points) != 4 || state.Points[0].Label != "W" {
		t.Errorf("points = %+v", state.Points)
	}
	if state.Active != nil || state.Tooltip.Visible {
		t.Error("tooltip should hide after a data update")
	}

	tests := []struct {
		name string
		req  dataRequest
		code errors.Code
	}{
		{"shape mismatch", dataRequest{Labels: []string{"A", "B"}, Values: []float64{1, 2, 3}}, errors.ErrCodeShapeMismatch},
		{"negative value", dataRequest{Labels: []string{"A"}, Values: []float64{-1}}, errors.ErrCodeInvalidData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e errorResponse
			resp := doJSON(t, http.MethodPut, ts.URL+"/api/data", tt.req, &e)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			if e.Code != tt.code {
				t.Errorf("code = %q, want %q", e.Code, tt.code)
			}
		})
	}

	// A rejected update leaves the chart as it was.
	doJSON(t, http.MethodGet, ts.URL+"/api/chart", nil, &state)
	if len(state.Points) != 4 {
		t.Errorf("points = %d, want 4", len(state.Points))
	}
}

func TestServeArtifacts(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		path        string
		status      int
		contentType string
		contains    string
	}{
		{"/chart.svg", http.StatusOK, "image/svg+xml", "<svg"},
		{"/chart.json", http.StatusOK, "application/json", `"points"`},
		{"/chart.gif", http.StatusNotFound, "application/json", "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.path)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if ct := resp.Header.Get("Content-Type"); ct != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
			data, _ := io.ReadAll(resp.Body)
			if !strings.Contains(string(data), tt.contains) {
				t.Errorf("body missing %q", tt.contains)
			}
			if tt.status == http.StatusOK && resp.Header.Get("X-Chart-Hash") == "" {
				t.Error("X-Chart-Hash header missing")
			}
		})
	}
}

func TestServeCORS(t *testing.T) {
	ts := newTestServer(t, "https://example.com")

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/hover", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestNewChartServerInvalid(t *testing.T) {
	logger := log.New(io.Discard)
	opts := pipeline.Options{Data: radar.Dataset{Labels: []string{"A"}, Values: []float64{1, 2}}}
	_, err := newChartServer(opts, pipeline.NewRunner(nil, nil, logger), logger)
	if !errors.Is(err, errors.ErrCodeShapeMismatch) {
		t.Errorf("error = %v, want SHAPE_MISMATCH", err)
	}
}

func TestServeUpdateDataRefreshesChart(t *testing.T) {
	ts := newTestServer(t)

	var before chartResponse
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/chart", nil, &before)
	if before.Hash == "" || resp.Header.Get("X-Chart-Hash") != before.Hash {
		t.Fatalf("hash = %q, header = %q", before.Hash, resp.Header.Get("X-Chart-Hash"))
	}

	index, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	page, _ := io.ReadAll(index.Body)
	index.Body.Close()
	if !strings.Contains(string(page), "/chart.svg?h="+before.Hash) {
		t.Errorf("index image does not carry the chart hash")
	}

	var after chartResponse
	resp = doJSON(t, http.MethodPut, ts.URL+"/api/data", dataRequest{
		Labels: []string{"West", "X", "Y"},
		Values: []float64{1, 2, 3},
	}, &after)
	if after.Hash == "" || after.Hash == before.Hash {
		t.Fatalf("hash after update = %q, before = %q", after.Hash, before.Hash)
	}
	if got := resp.Header.Get("X-Chart-Hash"); got != after.Hash {
		t.Errorf("X-Chart-Hash = %q, want %q", got, after.Hash)
	}

	chart, err := http.Get(ts.URL + "/chart.svg?h=" + after.Hash)
	if err != nil {
		t.Fatal(err)
	}
	defer chart.Body.Close()
	svg, _ := io.ReadAll(chart.Body)
	if got := chart.Header.Get("X-Chart-Hash"); got != after.Hash {
		t.Errorf("artifact hash = %q, want %q", got, after.Hash)
	}
	if !strings.Contains(string(svg), "West") {
		t.Error("chart.svg does not show the updated labels")
	}

	// A rejected update keeps the hash.
	doJSON(t, http.MethodPut, ts.URL+"/api/data", dataRequest{Labels: []string{"A"}, Values: []float64{-1}}, nil)
	var state chartResponse
	doJSON(t, http.MethodGet, ts.URL+"/api/chart", nil, &state)
	if state.Hash != after.Hash {
		t.Errorf("hash after rejected update = %q, want %q", state.Hash, after.Hash)
	}
}
