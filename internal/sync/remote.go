package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/storage"
)

// Remote abstracts the remote snapshot store. Fetch returns (nil, nil) when
// no document exists for the key.
type Remote interface {
	Fetch(ctx context.Context, key string) (*storage.Snapshot, error)
	Push(ctx context.Context, key string, snap storage.Snapshot) error
}

const requestTimeout = 15 * time.Second

// HTTPRemote talks to a snapshot server (see Handler) over HTTP.
type HTTPRemote struct {
	base   string
	client *fasthttp.Client
}

func NewHTTPRemote(base string) *HTTPRemote {
	return &HTTPRemote{
		base:   base,
		client: &fasthttp.Client{},
	}
}

func (r *HTTPRemote) url(key string) string {
	return r.base + "/v1/snapshots/" + key
}

func (r *HTTPRemote) Fetch(ctx context.Context, key string) (*storage.Snapshot, error) {
	_ = ctx

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(r.url(key))
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := r.client.DoTimeout(req, resp, requestTimeout); err != nil {
		return nil, fmt.Errorf("remote fetch: %w", err)
	}
	switch resp.StatusCode() {
	case fasthttp.StatusOK:
	case fasthttp.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("remote fetch: unexpected status %d", resp.StatusCode())
	}

	var snap storage.Snapshot
	if err := json.Unmarshal(resp.Body(), &snap); err != nil {
		return nil, fmt.Errorf("remote fetch decode: %w", err)
	}
	return &snap, nil
}

func (r *HTTPRemote) Push(ctx context.Context, key string, snap storage.Snapshot) error {
	_ = ctx

	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("remote push encode: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(r.url(key))
	req.Header.SetMethod(fasthttp.MethodPut)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	if err := r.client.DoTimeout(req, resp, requestTimeout); err != nil {
		return fmt.Errorf("remote push: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return fmt.Errorf("remote push: unexpected status %d", resp.StatusCode())
	}
	return nil
}
