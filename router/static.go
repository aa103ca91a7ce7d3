package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/lambda-feedback/routeshim/message"
	"github.com/lambda-feedback/routeshim/router/schema"
)

// Config is the configuration of the static fallback router.
type Config struct {
	// Status is the status code of the static response.
	Status int `conf:"status"`

	// ContentType is the content type of the static response.
	ContentType string `conf:"content_type"`

	// Body is the body of the static response.
	Body string `conf:"body"`

	// ResponseFile is the path to a JSON response definition. If set,
	// it takes precedence over Status, ContentType and Body.
	ResponseFile string `conf:"response_file"`
}

// DefaultConfig is the default static router configuration.
var DefaultConfig = Config{
	Status:      http.StatusOK,
	ContentType: "text/plain",
	Body:        "Hello, world!",
}

// ResponseDefinition is the on-disk format of a static response.
type ResponseDefinition struct {
	Status  int                 `json:"status"`
	Headers map[string][]string `json:"headers,omitempty"`
	Body    string              `json:"body,omitempty"`
}

// Static is a router that answers every request with the same response.
type Static struct {
	response message.Response
}

var _ Router = (*Static)(nil)

// NewStatic creates a static router for the given response.
func NewStatic(response message.Response) *Static {
	return &Static{response: response}
}

// NewStaticFromConfig creates a static router from the given config,
// loading the response definition file if one is configured.
func NewStaticFromConfig(cfg Config) (*Static, error) {
	if cfg.ResponseFile != "" {
		def, err := LoadResponseDefinition(cfg.ResponseFile)
		if err != nil {
			return nil, err
		}

		return NewStatic(def.Response()), nil
	}

	status := cfg.Status
	if status == 0 {
		status = http.StatusOK
	}

	header := make(http.Header)
	if cfg.ContentType != "" {
		header.Set("Content-Type", cfg.ContentType)
	}

	return NewStatic(message.NewResponse(status, header, []byte(cfg.Body))), nil
}

// Handle returns a copy of the static response.
func (s *Static) Handle(context.Context, message.Request) (message.Response, error) {
	body := make([]byte, len(s.response.Body))
	copy(body, s.response.Body)

	return message.NewResponse(
		s.response.StatusCode,
		s.response.Header.Clone(),
		body,
	), nil
}

// Response converts the definition into a generic response.
func (d ResponseDefinition) Response() message.Response {
	header := make(http.Header, len(d.Headers))
	for k, v := range d.Headers {
		for _, vv := range v {
			header.Add(k, vv)
		}
	}

	return message.NewResponse(d.Status, header, []byte(d.Body))
}

// LoadResponseDefinition reads and validates a response definition file.
func LoadResponseDefinition(path string) (ResponseDefinition, error) {
	var def ResponseDefinition

	data, err := os.ReadFile(path)
	if err != nil {
		return def, fmt.Errorf("failed to read response file: %w", err)
	}

	return ParseResponseDefinition(data)
}

// ParseResponseDefinition validates the raw JSON against the response
// definition schema and decodes it.
func ParseResponseDefinition(data []byte) (ResponseDefinition, error) {
	var def ResponseDefinition

	if err := schema.ValidateResponseDefinition(data); err != nil {
		return def, err
	}

	if err := json.Unmarshal(data, &def); err != nil {
		return def, fmt.Errorf("failed to decode response file: %w", err)
	}

	return def, nil
}
