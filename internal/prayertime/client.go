// Package prayertime looks up daily prayer times from an Aladhan-compatible
// API. Pure read; results never touch the local store.
package prayertime

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
)

type Times struct {
	Fajr    string
	Dhuhr   string
	Asr     string
	Maghrib string
	Isha    string
}

type Client struct {
	base   string
	client *fasthttp.Client
}

func NewClient(base string) *Client {
	return &Client{
		base:   base,
		client: &fasthttp.Client{},
	}
}

type timingsResponse struct {
	Data struct {
		Timings struct {
			Fajr    string `json:"Fajr"`
			Dhuhr   string `json:"Dhuhr"`
			Asr     string `json:"Asr"`
			Maghrib string `json:"Maghrib"`
			Isha    string `json:"Isha"`
		} `json:"timings"`
	} `json:"data"`
}

// Timings fetches prayer times for a date at the given coordinates.
func (c *Client) Timings(ctx context.Context, date time.Time, lat, lon float64) (*Times, error) {
	_ = ctx

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fmt.Sprintf("%s/v1/timings/%s?latitude=%f&longitude=%f",
		c.base, date.Format("02-01-2006"), lat, lon))
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := c.client.DoTimeout(req, resp, 15*time.Second); err != nil {
		return nil, fmt.Errorf("prayer times fetch: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("prayer times fetch: unexpected status %d", resp.StatusCode())
	}

	var parsed timingsResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("prayer times decode: %w", err)
	}
	t := parsed.Data.Timings
	return &Times{Fajr: t.Fajr, Dhuhr: t.Dhuhr, Asr: t.Asr, Maghrib: t.Maghrib, Isha: t.Isha}, nil
}
