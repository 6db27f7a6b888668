// Package skin turns a theme description into a cosmetic car texture through an external
// image generator; failures keep the current skin
package skin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/lixenwraith/perimeter/parameter"
)

var (
	ErrEmptyTheme  = errors.New("empty skin theme")
	ErrNoImage     = errors.New("generator returned no image")
	ErrRateLimited = errors.New("skin generation rate limited")
	ErrBusy        = errors.New("skin generation already in progress")
	ErrDisabled    = errors.New("skin generation disabled")
)

// Generator produces an image reference (URL or data URL) for a theme
type Generator interface {
	Generate(ctx context.Context, theme string) (string, error)
}

// Prompt expands a theme into the image prompt sent to the generator
func Prompt(theme string) string {
	return "Top-down orthogonal view of a single high-quality railway car texture. Theme: " + theme +
		". Solid flat lighting, no perspective distortion, high detail, seamless-ready, " +
		"centered on a neutral white background. Professional game asset style."
}

// generateRequest is the JSON body posted to the endpoint
type generateRequest struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspect_ratio"`
}

// generateResponse accepts either an inline base64 image or a hosted URL
type generateResponse struct {
	Image    string `json:"image,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
	URL      string `json:"url,omitempty"`
	Error    string `json:"error,omitempty"`
}

// HTTPGenerator posts prompts to a JSON image endpoint
type HTTPGenerator struct {
	Endpoint string
	Client   *http.Client
}

// NewHTTPGenerator creates a generator for endpoint; deadlines come from the request context
func NewHTTPGenerator(endpoint string) *HTTPGenerator {
	return &HTTPGenerator{Endpoint: endpoint, Client: &http.Client{}}
}

// Generate implements Generator
func (g *HTTPGenerator) Generate(ctx context.Context, theme string) (string, error) {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return "", ErrEmptyTheme
	}

	body, err := json.Marshal(generateRequest{Prompt: Prompt(theme), AspectRatio: "1:1"})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate skin: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, parameter.SkinMaxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generate skin: status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	switch {
	case out.Error != "":
		return "", fmt.Errorf("generate skin: %s", out.Error)
	case out.Image != "":
		mime := out.MimeType
		if mime == "" {
			mime = "image/png"
		}
		return "data:" + mime + ";base64," + out.Image, nil
	case out.URL != "":
		return out.URL, nil
	default:
		return "", ErrNoImage
	}
}
