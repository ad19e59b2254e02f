package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kinview/kinview/pkg/cache"
	"github.com/kinview/kinview/pkg/kinship/kinshiptest"
	"github.com/kinview/kinview/pkg/pipeline"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := pipeline.NewRunner(c, nil, nil)
	t.Cleanup(func() { runner.Close() })

	s, err := New(kinshiptest.Family(), runner, WithDefaults(pipeline.Options{LinkPrefix: "?focus="}))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return s
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp healthResponse
	decode(t, rec, &resp)
	if resp.Status != "ok" || resp.People != 15 || len(resp.Dataset) != 12 {
		t.Errorf("health = %+v", resp)
	}
	if rec.Header().Get(HeaderRequestID) == "" {
		t.Error("response should carry a request id")
	}
}

func TestRequestIDPropagates(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/people/nobody", nil)
	req.Header.Set(HeaderRequestID, "req-42")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get(HeaderRequestID); got != "req-42" {
		t.Errorf("%s = %q, want req-42", HeaderRequestID, got)
	}
	var resp ErrorResponse
	decode(t, rec, &resp)
	if resp.RequestID != "req-42" {
		t.Errorf("error body request_id = %q", resp.RequestID)
	}
}

func TestPerson(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/people/A")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var resp struct {
		ID          string   `json:"id"`
		DisplayName string   `json:"display_name"`
		Lifespan    string   `json:"lifespan"`
		Living      bool     `json:"living"`
		Parents     []string `json:"parents"`
	}
	decode(t, rec, &resp)
	if resp.ID != "A" || resp.DisplayName != "Adam Gray" || !resp.Living {
		t.Errorf("person = %+v", resp)
	}
	if resp.Lifespan != " (3 Mar 1950-)" {
		t.Errorf("lifespan = %q", resp.Lifespan)
	}
	if strings.Join(resp.Parents, ",") != "F,M" {
		t.Errorf("parents = %v", resp.Parents)
	}

	rec = get(t, s, "/api/people/GF")
	decode(t, rec, &resp)
	if resp.Living {
		t.Error("GF has a recorded death")
	}
}

func TestErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		target string
		status int
		code   string
	}{
		{"/api/people/nobody", http.StatusNotFound, "NOT_FOUND"},
		{"/api/search?q=ab", http.StatusBadRequest, "INVALID_INPUT"},
		{"/api/layout?focus=A&style=tower", http.StatusBadRequest, "INVALID_STYLE"},
		{"/api/layout?focus=A&format=gif", http.StatusBadRequest, "INVALID_INPUT"},
		{"/api/layout?focus=A&zoom=big", http.StatusBadRequest, "INVALID_INPUT"},
		{"/api/layout?focus=A&compact=maybe", http.StatusBadRequest, "INVALID_INPUT"},
		{"/api/layout", http.StatusBadRequest, "INVALID_INPUT"},
		{"/api/relate?from=A", http.StatusBadRequest, "INVALID_INPUT"},
		{"/api/relate?from=A&to=nobody", http.StatusNotFound, "NOT_FOUND"},
		{"/api/navigate?focus=A&dir=north", http.StatusBadRequest, "INVALID_INPUT"},
		{"/api/navigate?focus=A&current=nobody&dir=up", http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(t, s, tt.target)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body)
			}
			var resp ErrorResponse
			decode(t, rec, &resp)
			if resp.Code != tt.code || resp.Error == "" {
				t.Errorf("error body = %+v, want code %s", resp, tt.code)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/api/search?q=gray")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var hits []searchHit
	decode(t, rec, &hits)
	if len(hits) == 0 {
		t.Fatal("no hits for gray")
	}
	for _, h := range hits {
		if !strings.Contains(h.Name, "Gray") {
			t.Errorf("hit %+v does not match", h)
		}
	}

	rec = get(t, s, "/api/search?q=zzzz")
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("empty search body = %q, want []", body)
	}
}

func TestLayoutJSONAndCache(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/layout?focus=A")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Header().Get("X-Cache") != "miss" {
		t.Errorf("first X-Cache = %q", rec.Header().Get("X-Cache"))
	}
	var doc struct {
		Focus string            `json:"focus"`
		Style string            `json:"style"`
		Boxes []json.RawMessage `json:"boxes"`
	}
	decode(t, rec, &doc)
	if doc.Focus != "A" || doc.Style != "standard" || len(doc.Boxes) == 0 {
		t.Errorf("doc focus=%q style=%q boxes=%d", doc.Focus, doc.Style, len(doc.Boxes))
	}

	rec = get(t, s, "/api/layout?focus=A")
	if rec.Header().Get("X-Cache") != "hit" {
		t.Errorf("second X-Cache = %q", rec.Header().Get("X-Cache"))
	}
}

func TestLayoutSVG(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/layout?focus=W&to=B&format=svg&caption=true&interactive=true")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "<svg") {
		t.Errorf("body = %.40q", body)
	}
	for _, want := range []string{`class="caption"`, "?focus=A"} {
		if !strings.Contains(body, want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

func TestLayoutDOT(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/api/layout?focus=A&style=pedigree&format=dot")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if !strings.HasPrefix(rec.Body.String(), "digraph") {
		t.Errorf("body = %.40q", rec.Body.String())
	}
}

func TestRelate(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/api/relate?from=W&to=B")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var resp relateResponse
	decode(t, rec, &resp)
	if strings.Join(resp.Path.IDs, ",") != "W,A,F,B" || len(resp.Path.Tags) != 3 {
		t.Errorf("path = %+v", resp.Path)
	}
	if !strings.HasPrefix(resp.Relation, "Wendy Lark is the ") || !strings.HasSuffix(resp.Relation, " of Beth Gray") {
		t.Errorf("relation = %q", resp.Relation)
	}
}

func TestNavigate(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		query string
		to    string
		moved bool
	}{
		{"focus=A&dir=up", "F", true},
		{"focus=A&dir=j", "K", true},
		{"focus=A&dir=right", "B", true},
		{"focus=A&current=B&dir=left", "A", true},
		{"focus=A&dir=left", "A", false},
		{"focus=A&dir=1", "W", true},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := get(t, s, "/api/navigate?"+tt.query)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body)
			}
			var resp navigateResponse
			decode(t, rec, &resp)
			if resp.To != tt.to || resp.Moved != tt.moved {
				t.Errorf("navigate = %+v, want %s moved=%v", resp, tt.to, tt.moved)
			}
		})
	}
}
