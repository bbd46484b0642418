// Package api implements the flowchart backend HTTP API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/flowgen/internal/flowchart"
	"github.com/ziadkadry99/flowgen/internal/server"
)

// RunningMessage is returned by the root liveness endpoint.
const RunningMessage = "Flowchart Generator API is running"

// Generator produces a flowchart for one request.
type Generator interface {
	Generate(ctx context.Context, grammar flowchart.Grammar, req flowchart.Request) (*flowchart.Result, error)
}

// ErrorResponse is the body of every non-200 response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// RegisterRoutes mounts the liveness and generation routes.
func RegisterRoutes(r chi.Router, gen Generator) {
	r.Get("/", handleRoot())
	r.Route("/flowchart", func(r chi.Router) {
		r.Post("/mermaid", handleGenerate(gen, flowchart.GrammarMermaid))
		r.Post("/d2", handleGenerate(gen, flowchart.GrammarD2))
	})
}

func handleRoot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		server.WriteJSON(w, http.StatusOK, map[string]string{"message": RunningMessage})
	}
}

func handleGenerate(gen Generator, grammar flowchart.Grammar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req flowchart.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}

		res, err := gen.Generate(r.Context(), grammar, req)
		if err != nil {
			writeError(w, StatusFor(err), err.Error())
			return
		}
		server.WriteJSON(w, http.StatusOK, map[string]string{grammar.ResponseField(): res.Code})
	}
}

// StatusFor maps a generation error to its HTTP status code.
func StatusFor(err error) int {
	var invalidReq *flowchart.InvalidRequestError
	var d2Err *flowchart.D2SyntaxError
	switch {
	case errors.As(err, &invalidReq),
		errors.Is(err, flowchart.ErrInvalidNodeShapes),
		errors.As(err, &d2Err):
		return http.StatusBadRequest
	case errors.Is(err, flowchart.ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	server.WriteJSON(w, status, ErrorResponse{Detail: detail})
}
