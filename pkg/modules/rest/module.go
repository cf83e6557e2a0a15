package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gigabytetmn/freeradius-server/pkg/config"
	"github.com/gigabytetmn/freeradius-server/pkg/mapproc"
	"github.com/gigabytetmn/freeradius-server/pkg/radius"
	"github.com/gigabytetmn/freeradius-server/pkg/xlat"
)

// ProcName is the name the module registers under.
const ProcName = "rest"

// Module owns the HTTP client shared by every rest map instance.
type Module struct {
	client  *http.Client
	maxBody int64
	logger  *slog.Logger
}

// New builds the module from configuration.
func New(cfg config.RESTModuleConfig) *Module {
	return &Module{
		client:  &http.Client{Timeout: cfg.Timeout},
		maxBody: cfg.MaxBodyBytes,
		logger:  slog.Default().With("component", "modules.rest"),
	}
}

// Register registers the "rest" map processor.
func (m *Module) Register(reg *mapproc.Registry) (*mapproc.Registration, error) {
	return reg.Register(m, ProcName, mapproc.Definition{
		Evaluate:    evaluate,
		Escape:      Escape,
		Instantiate: instantiate,
	})
}

// Escape applies URL query escaping to attribute values expanded into the
// request URL.
func Escape(req *radius.Request, value string, ctx any) string {
	return url.QueryEscape(value)
}

// instantiate validates the map list: every entry must name a JSON field.
func instantiate(data, owner any, src *xlat.Template, maps []*radius.Map) error {
	for i, mp := range maps {
		if mp.Src == "" {
			return fmt.Errorf("map entry %d (%s): a JSON field name is required", i, mp.Dst)
		}
	}
	return nil
}

// evaluate fetches the expanded URL and applies the decoded JSON object to
// the map list.
func evaluate(owner, data any, req *radius.Request, query string, maps []*radius.Map) radius.Rcode {
	m := owner.(*Module)

	httpReq, err := http.NewRequestWithContext(req.Context(), http.MethodGet, query, nil)
	if err != nil {
		m.logger.Error("invalid request URL", "request_id", req.ID, "url", query, "error", err)
		return radius.RcodeFail
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(httpReq)
	if err != nil {
		m.logger.Error("request failed", "request_id", req.ID, "error", err)
		return radius.RcodeFail
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return radius.RcodeNotfound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		m.logger.Error("unexpected response status",
			"request_id", req.ID, "status", resp.StatusCode)
		return radius.RcodeFail
	}

	var fields map[string]any
	body := io.LimitReader(resp.Body, m.maxBody)
	if err := json.NewDecoder(body).Decode(&fields); err != nil {
		m.logger.Error("failed to decode response body", "request_id", req.ID, "error", err)
		return radius.RcodeFail
	}

	applied := 0
	for _, mp := range maps {
		raw, ok := fields[mp.Src]
		if !ok || raw == nil {
			continue
		}
		mp.Apply(req, fieldString(raw))
		applied++
	}

	if applied == 0 {
		return radius.RcodeNoop
	}
	return radius.RcodeUpdated
}

// fieldString renders a decoded JSON scalar as an attribute value. JSON
// numbers decode as float64; integral values are printed without a
// fractional part.
func fieldString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}
