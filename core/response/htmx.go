package response

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/contactform/core/handler"
)

// HTMX headers.
const (
	HeaderHXRequest  = "HX-Request"
	HeaderHXLocation = "HX-Location"
	HeaderHXTrigger  = "HX-Trigger"
)

// IsHTMXRequest reports whether the request was issued by htmx.
func IsHTMXRequest(r *http.Request) bool {
	return r.Header.Get(HeaderHXRequest) == "true"
}

// HTMXOption configures HTMX-specific response headers.
type HTMXOption func(*htmxConfig)

type htmxConfig struct {
	trigger map[string]any
}

// WithHTMX wraps a response with HTMX response headers.
func WithHTMX(response handler.Response, opts ...HTMXOption) handler.Response {
	if response == nil {
		return nil
	}
	if len(opts) == 0 {
		return response
	}

	return func(w http.ResponseWriter, r *http.Request) error {
		cfg := &htmxConfig{}
		for _, opt := range opts {
			opt(cfg)
		}

		if len(cfg.trigger) > 0 {
			data, err := json.Marshal(cfg.trigger)
			if err != nil {
				return err
			}
			w.Header().Set(HeaderHXTrigger, string(data))
		}

		return response(w, r)
	}
}

// TriggerEvent adds a client-side event to HX-Trigger. Repeated calls merge.
func TriggerEvent(name string, detail any) HTMXOption {
	return func(cfg *htmxConfig) {
		if cfg.trigger == nil {
			cfg.trigger = make(map[string]any)
		}
		cfg.trigger[name] = detail
	}
}
