package sync

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/storage"
)

func newTestHandler(t *testing.T) fasthttp.RequestHandler {
	t.Helper()
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "server.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return Handler(storage.NewDocumentRepo(db), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func doRequest(handler fasthttp.RequestHandler, method, uri string, body []byte) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	if body != nil {
		req.SetBody(body)
	}
	var ctx fasthttp.RequestCtx
	ctx.Init(&req, nil, nil)
	handler(&ctx)
	return &ctx
}

func TestServerGetMissingSnapshot(t *testing.T) {
	handler := newTestHandler(t)
	ctx := doRequest(handler, fasthttp.MethodGet, "http://ra/v1/snapshots/house-1", nil)
	if ctx.Response.StatusCode() != fasthttp.StatusNotFound {
		t.Fatalf("missing snapshot: status %d, want 404", ctx.Response.StatusCode())
	}
}

func TestServerPutThenGet(t *testing.T) {
	handler := newTestHandler(t)

	snap := storage.Snapshot{
		Crew:     []storage.CrewMember{{ID: "amira", Callsign: "Amira", Tier: "pilot"}},
		Logs:     map[string]storage.DayLog{"amira": storage.NewDayLog("amira")},
		DeviceID: "device-1",
	}
	body, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	put := doRequest(handler, fasthttp.MethodPut, "http://ra/v1/snapshots/house-1", body)
	if put.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("put: status %d, want 200", put.Response.StatusCode())
	}

	get := doRequest(handler, fasthttp.MethodGet, "http://ra/v1/snapshots/house-1", nil)
	if get.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("get: status %d, want 200", get.Response.StatusCode())
	}
	var stored storage.Snapshot
	if err := json.Unmarshal(get.Response.Body(), &stored); err != nil {
		t.Fatalf("decode stored snapshot: %v", err)
	}
	if len(stored.Crew) != 1 || stored.Crew[0].ID != "amira" {
		t.Fatalf("stored snapshot wrong: %+v", stored)
	}
	if stored.DeviceID != "device-1" {
		t.Fatalf("device id lost: %+v", stored)
	}
	// The server stamps updatedAt; the client's value is not trusted.
	if stored.UpdatedAt.IsZero() {
		t.Fatalf("server should assign updatedAt")
	}
}

func TestServerPutReplacesDocument(t *testing.T) {
	handler := newTestHandler(t)

	for _, device := range []string{"device-1", "device-2"} {
		body, err := json.Marshal(storage.Snapshot{DeviceID: device})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		ctx := doRequest(handler, fasthttp.MethodPut, "http://ra/v1/snapshots/house-1", body)
		if ctx.Response.StatusCode() != fasthttp.StatusOK {
			t.Fatalf("put %s: status %d", device, ctx.Response.StatusCode())
		}
	}

	get := doRequest(handler, fasthttp.MethodGet, "http://ra/v1/snapshots/house-1", nil)
	var stored storage.Snapshot
	if err := json.Unmarshal(get.Response.Body(), &stored); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stored.DeviceID != "device-2" {
		t.Fatalf("put should replace wholesale, got device %q", stored.DeviceID)
	}
}

func TestServerKeysAreIsolated(t *testing.T) {
	handler := newTestHandler(t)

	body, _ := json.Marshal(storage.Snapshot{DeviceID: "device-1"})
	doRequest(handler, fasthttp.MethodPut, "http://ra/v1/snapshots/house-1", body)

	other := doRequest(handler, fasthttp.MethodGet, "http://ra/v1/snapshots/house-2", nil)
	if other.Response.StatusCode() != fasthttp.StatusNotFound {
		t.Fatalf("other key: status %d, want 404", other.Response.StatusCode())
	}
}

func TestServerRejectsBadRequests(t *testing.T) {
	handler := newTestHandler(t)

	cases := []struct {
		method, uri string
		body        []byte
		want        int
	}{
		{fasthttp.MethodGet, "http://ra/other/path", nil, fasthttp.StatusNotFound},
		{fasthttp.MethodGet, "http://ra/v1/snapshots/", nil, fasthttp.StatusBadRequest},
		{fasthttp.MethodGet, "http://ra/v1/snapshots/a/b", nil, fasthttp.StatusBadRequest},
		{fasthttp.MethodPut, "http://ra/v1/snapshots/house-1", []byte("not json"), fasthttp.StatusBadRequest},
		{fasthttp.MethodDelete, "http://ra/v1/snapshots/house-1", nil, fasthttp.StatusMethodNotAllowed},
	}
	for _, tc := range cases {
		ctx := doRequest(handler, tc.method, tc.uri, tc.body)
		if got := ctx.Response.StatusCode(); got != tc.want {
			t.Fatalf("%s %s: status %d, want %d", tc.method, tc.uri, got, tc.want)
		}
	}
}
