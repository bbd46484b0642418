// Package ui is the browser frontend. It runs as its own process and talks
// to the flowchart backend only over HTTP.
package ui

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/flowgen/internal/flowchart"
)

// Default form values shown when the page loads.
const (
	DefaultPrompt        = "Process for approving a loan application"
	DefaultComparePrompt = "Process for handling customer support ticket with document upload"
)

// Backend is the subset of the backend client the UI needs.
type Backend interface {
	BaseURL() string
	Health(ctx context.Context) (string, error)
	Generate(ctx context.Context, g flowchart.Grammar, req flowchart.Request) (string, error)
}

// UI serves the generator page and its JSON helpers.
type UI struct {
	backend Backend
}

// New creates a UI backed by the given backend client.
func New(backend Backend) *UI {
	return &UI{backend: backend}
}

// RegisterRoutes mounts all UI routes onto the given router.
func (u *UI) RegisterRoutes(r chi.Router) {
	r.Get("/", u.ServeIndex)
	r.Route("/ui/api", func(r chi.Router) {
		r.Get("/status", u.handleStatus)
		r.Get("/defaults", u.handleDefaults)
		r.Post("/generate/{grammar}", u.handleGenerate)
		r.Post("/preview", u.handlePreview)
		r.Get("/legend", u.handleLegend)
	})
	r.Get("/ws/compare", u.handleCompare)
}
