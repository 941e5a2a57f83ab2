package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	charmlog "github.com/charmbracelet/log"

	"github.com/planviz/planviz/pkg/pipeline"
	"github.com/planviz/planviz/pkg/store"
)

const servePlan = `SortExec: expr=[a@0 ASC]
  DataSourceExec: file_groups={2 groups: [[x], [y]]}, projection=[a@0]`

func newTestServer(t *testing.T) *server {
	t.Helper()
	s := &server{
		runner: pipeline.NewRunner(nil, nil, nil),
		store:  store.NewMemoryStore(),
		logger: charmlog.New(&bytes.Buffer{}),
	}
	t.Cleanup(func() {
		_ = s.runner.Close()
		_ = s.store.Close(context.Background())
	})
	return s
}

func postRender(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServeHealthz(t *testing.T) {
	h := newTestServer(t).routes()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestServeRender(t *testing.T) {
	h := newTestServer(t).routes()

	body, _ := json.Marshal(pipeline.Options{PlanText: servePlan})
	rec := postRender(t, h, string(body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var resp renderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.NodeCount != 2 {
		t.Errorf("node_count = %d, want 2", resp.NodeCount)
	}
	if resp.PlanHash == "" {
		t.Error("plan_hash should be set")
	}
	if resp.ID == "" {
		t.Error("record id should be set for plan-text requests")
	}
	if len(resp.Artifacts[pipeline.FormatExcalidraw]) == 0 {
		t.Error("excalidraw artifact missing")
	}
}

func TestServeRenderRejectsBadJSON(t *testing.T) {
	h := newTestServer(t).routes()

	rec := postRender(t, h, "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestServeRenderRejectsMissingPlan(t *testing.T) {
	h := newTestServer(t).routes()

	rec := postRender(t, h, "{}")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestServeHistoryRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	h := srv.routes()

	body, _ := json.Marshal(pipeline.Options{PlanText: servePlan})
	rec := postRender(t, h, string(body))
	var resp renderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	// List contains the record.
	req := httptest.NewRequest(http.MethodGet, "/api/diagrams", nil)
	listRec := httptest.NewRecorder()
	h.ServeHTTP(listRec, req)
	if listRec.Code != http.StatusOK {
		t.Fatalf("list status = %d", listRec.Code)
	}
	var recs []store.Record
	if err := json.Unmarshal(listRec.Body.Bytes(), &recs); err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].ID != resp.ID {
		t.Fatalf("list = %+v, want one record with id %s", recs, resp.ID)
	}

	// Fetch it.
	getRec := httptest.NewRecorder()
	h.ServeHTTP(getRec, httptest.NewRequest(http.MethodGet, "/api/diagrams/"+resp.ID, nil))
	if getRec.Code != http.StatusOK {
		t.Fatalf("get status = %d", getRec.Code)
	}

	// Delete it.
	delRec := httptest.NewRecorder()
	h.ServeHTTP(delRec, httptest.NewRequest(http.MethodDelete, "/api/diagrams/"+resp.ID, nil))
	if delRec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", delRec.Code)
	}

	// Gone now.
	goneRec := httptest.NewRecorder()
	h.ServeHTTP(goneRec, httptest.NewRequest(http.MethodGet, "/api/diagrams/"+resp.ID, nil))
	if goneRec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", goneRec.Code)
	}
}

func TestServeListRejectsBadLimit(t *testing.T) {
	h := newTestServer(t).routes()

	req := httptest.NewRequest(http.MethodGet, "/api/diagrams?limit=abc", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
