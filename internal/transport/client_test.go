package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// boardServer serves a fixed body for every board endpoint and records requests.
type boardServer struct {
	status   int
	body     string
	requests []*http.Request
	bodies   []string
}

func (b *boardServer) start(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw json.RawMessage
		if r.Body != nil {
			//nolint:errcheck // Empty bodies are expected for GET and reset
			json.NewDecoder(r.Body).Decode(&raw)
		}
		b.requests = append(b.requests, r)
		b.bodies = append(b.bodies, string(raw))

		status := b.status
		if status == 0 {
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(b.body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(url string, protocol Protocol) *Client {
	cfg := DefaultConfig()
	cfg.BaseURL = url
	cfg.Protocol = protocol
	return New(cfg)
}

func TestLoadFlattensRows(t *testing.T) {
	bs := &boardServer{body: `{"rows": [[0, 0], [0, 2]], "score": 0}`}
	srv := bs.start(t)

	state, err := newTestClient(srv.URL, ProtocolV2).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if !slices.Equal(state.Elements(), []int{0, 0, 0, 2}) {
		t.Errorf("elements = %v, want [0 0 0 2]", state.Elements())
	}
	if state.Score() != 0 {
		t.Errorf("score = %d, want 0", state.Score())
	}

	req := bs.requests[0]
	if req.Method != http.MethodGet || req.URL.Path != "/board" {
		t.Errorf("request = %s %s, want GET /board", req.Method, req.URL.Path)
	}
	if req.Header.Get(RequestIDHeader) == "" {
		t.Error("request should carry a request ID")
	}
}

func TestMoveSendsAction(t *testing.T) {
	for _, dir := range core.Directions {
		t.Run(dir.String(), func(t *testing.T) {
			bs := &boardServer{body: `{"rows": [[2, 4, 0], [0, 0, 8]], "score": 12}`}
			srv := bs.start(t)

			state, err := newTestClient(srv.URL, ProtocolV2).Move(context.Background(), dir)
			if err != nil {
				t.Fatalf("Move() failed: %v", err)
			}

			req := bs.requests[0]
			if req.Method != http.MethodPost || req.URL.Path != "/board/move" {
				t.Errorf("request = %s %s, want POST /board/move", req.Method, req.URL.Path)
			}
			if req.Header.Get("Content-Type") != "application/json" {
				t.Errorf("Content-Type = %q", req.Header.Get("Content-Type"))
			}

			var body moveRequest
			if err := json.Unmarshal([]byte(bs.bodies[0]), &body); err != nil {
				t.Fatalf("cannot decode request body %q: %v", bs.bodies[0], err)
			}
			if body.Action != dir.String() {
				t.Errorf("action = %q, want %q", body.Action, dir.String())
			}

			if state.Columns() != 3 || state.Score() != 12 {
				t.Errorf("state = %v score %d, want 3 columns score 12", state, state.Score())
			}
			if !slices.Equal(state.Elements(), []int{2, 4, 0, 0, 0, 8}) {
				t.Errorf("elements = %v", state.Elements())
			}
		})
	}
}

func TestMoveRejectsInvalidDirection(t *testing.T) {
	bs := &boardServer{body: `{"rows": [[0]], "score": 0}`}
	srv := bs.start(t)

	if _, err := newTestClient(srv.URL, ProtocolV2).Move(context.Background(), core.Direction(9)); err == nil {
		t.Fatal("Move() should reject an invalid direction")
	}
	if len(bs.requests) != 0 {
		t.Error("no request should be sent for an invalid direction")
	}
}

func TestResetEmptyBody(t *testing.T) {
	bs := &boardServer{body: `{"rows": [[0, 0], [0, 0]], "score": 0}`}
	srv := bs.start(t)

	state, err := newTestClient(srv.URL, ProtocolV2).Reset(context.Background())
	if err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	if state.Score() != 0 {
		t.Errorf("score = %d, want 0", state.Score())
	}

	req := bs.requests[0]
	if req.Method != http.MethodPost || req.URL.Path != "/board/reset" {
		t.Errorf("request = %s %s, want POST /board/reset", req.Method, req.URL.Path)
	}
	if bs.bodies[0] != "" {
		t.Errorf("reset body = %q, want empty", bs.bodies[0])
	}
}

func TestResetNonZeroScore(t *testing.T) {
	bs := &boardServer{body: `{"rows": [[0, 2], [0, 0]], "score": 16}`}
	srv := bs.start(t)

	_, err := newTestClient(srv.URL, ProtocolV2).Reset(context.Background())
	var perr *ProtocolError
	if !errors.As(err, &perr) {
		t.Fatalf("Reset() error = %v, want ProtocolError", err)
	}
	if perr.Field != "score" {
		t.Errorf("Field = %q, want score", perr.Field)
	}
}

func TestProtocolErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing score", `{"rows": [[0, 2]]}`, "score"},
		{"null score", `{"rows": [[0, 2]], "score": null}`, "score"},
		{"negative score", `{"rows": [[0, 2]], "score": -4}`, "score"},
		{"missing rows", `{"score": 4}`, "rows"},
		{"empty rows", `{"rows": [], "score": 4}`, "rows"},
		{"empty row", `{"rows": [[]], "score": 4}`, "rows"},
		{"ragged rows", `{"rows": [[0, 2], [4]], "score": 0}`, "rows"},
		{"negative tile", `{"rows": [[0, -2]], "score": 0}`, "rows"},
		{"null tile", `{"rows": [[0, null]], "score": 0}`, "rows"},
		{"tile wrong type", `{"rows": [[0, "2"]], "score": 0}`, "rows"},
		{"rows wrong type", `{"rows": "[[0]]", "score": 0}`, "rows"},
		{"score wrong type", `{"rows": [[0]], "score": "12"}`, "score"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bs := &boardServer{body: tt.body}
			srv := bs.start(t)

			_, err := newTestClient(srv.URL, ProtocolV2).Load(context.Background())
			var perr *ProtocolError
			if !errors.As(err, &perr) {
				t.Fatalf("Load() error = %v, want ProtocolError", err)
			}
			if perr.Field != tt.field {
				t.Errorf("Field = %q, want %q", perr.Field, tt.field)
			}
			if perr.Op != "load" {
				t.Errorf("Op = %q, want load", perr.Op)
			}
		})
	}
}

func TestLegacyProtocolFixesScore(t *testing.T) {
	bs := &boardServer{body: `{"rows": [[2, 2], [0, 4]]}`}
	srv := bs.start(t)

	state, err := newTestClient(srv.URL, ProtocolV1).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if state.Score() != 0 {
		t.Errorf("score = %d, want 0 in v1 mode", state.Score())
	}
	if !slices.Equal(state.Elements(), []int{2, 2, 0, 4}) {
		t.Errorf("elements = %v", state.Elements())
	}

	// Rows are still required.
	bs.body = `{"score": 10}`
	_, err = newTestClient(srv.URL, ProtocolV1).Load(context.Background())
	var perr *ProtocolError
	if !errors.As(err, &perr) || perr.Field != "rows" {
		t.Errorf("Load() error = %v, want ProtocolError on rows", err)
	}
}

func TestTransportErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error": "boom"}`},
		{"bad request", http.StatusBadRequest, `{"error": "unknown action"}`},
		{"malformed json", http.StatusOK, `{"rows": [[0, 2]`},
		{"not json", http.StatusOK, `<html>oops</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bs := &boardServer{status: tt.status, body: tt.body}
			srv := bs.start(t)

			_, err := newTestClient(srv.URL, ProtocolV2).Load(context.Background())
			var terr *TransportError
			if !errors.As(err, &terr) {
				t.Fatalf("Load() error = %v, want TransportError", err)
			}
			if tt.status != http.StatusOK && terr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", terr.StatusCode, tt.status)
			}
		})
	}
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url, ProtocolV2).Move(context.Background(), core.DirLeft)
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("Move() error = %v, want TransportError", err)
	}
	if terr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for a network failure", terr.StatusCode)
	}
	if terr.Op != "move" {
		t.Errorf("Op = %q, want move", terr.Op)
	}
}

func TestParseProtocol(t *testing.T) {
	if p, err := ParseProtocol(""); err != nil || p != ProtocolV2 {
		t.Errorf("ParseProtocol(\"\") = %q, %v", p, err)
	}
	if p, err := ParseProtocol("v1"); err != nil || p != ProtocolV1 {
		t.Errorf("ParseProtocol(v1) = %q, %v", p, err)
	}
	if _, err := ParseProtocol("v3"); err == nil {
		t.Error("ParseProtocol(v3) should fail")
	}
}
