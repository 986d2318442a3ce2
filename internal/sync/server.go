package sync

import (
	"log/slog"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/storage"
)

const snapshotPathPrefix = "/v1/snapshots/"

// Handler serves the snapshot mirror API:
//
//	GET /v1/snapshots/<key>  -> 200 snapshot JSON, or 404
//	PUT /v1/snapshots/<key>  -> upsert; the server assigns updatedAt
//
// Documents are whole-value: a PUT replaces the stored snapshot for the key.
func Handler(repo *storage.DocumentRepo, logger *slog.Logger) fasthttp.RequestHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(ctx *fasthttp.RequestCtx) {
		path := string(ctx.Path())
		if !strings.HasPrefix(path, snapshotPathPrefix) {
			ctx.SetStatusCode(fasthttp.StatusNotFound)
			return
		}
		key := strings.TrimPrefix(path, snapshotPathPrefix)
		if key == "" || strings.Contains(key, "/") {
			ctx.SetStatusCode(fasthttp.StatusBadRequest)
			return
		}

		switch string(ctx.Method()) {
		case fasthttp.MethodGet:
			handleGet(ctx, repo, key, logger)
		case fasthttp.MethodPut:
			handlePut(ctx, repo, key, logger)
		default:
			ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		}
	}
}

func handleGet(ctx *fasthttp.RequestCtx, repo *storage.DocumentRepo, key string, logger *slog.Logger) {
	doc, err := repo.Get(ctx, key)
	if err != nil {
		logger.Error("snapshot get failed", "key", key, "error", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	if doc == nil {
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetBody(doc.Body)
}

func handlePut(ctx *fasthttp.RequestCtx, repo *storage.DocumentRepo, key string, logger *slog.Logger) {
	var snap storage.Snapshot
	if err := json.Unmarshal(ctx.PostBody(), &snap); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		ctx.SetBodyString(`{"error":"invalid snapshot body"}`)
		return
	}

	// The server clock is authoritative for conflict ordering.
	now := time.Now().UTC()
	snap.UpdatedAt = now

	body, err := json.Marshal(snap)
	if err != nil {
		logger.Error("snapshot encode failed", "key", key, "error", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	if _, err := repo.Upsert(ctx, key, body, now); err != nil {
		logger.Error("snapshot upsert failed", "key", key, "error", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}

	logger.Info("snapshot stored", "key", key, "device", snap.DeviceID)
	ctx.SetContentType("application/json")
	out, _ := json.Marshal(map[string]any{"updatedAt": now})
	ctx.SetBody(out)
}

// ListenAndServe runs the mirror server until the listener fails.
func ListenAndServe(addr string, repo *storage.DocumentRepo, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("snapshot server listening", "addr", addr)
	return fasthttp.ListenAndServe(addr, Handler(repo, logger))
}
