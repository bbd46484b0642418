package ui

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/apex/log"
	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/flowgen/internal/client"
	"github.com/ziadkadry99/flowgen/internal/diagrams"
	"github.com/ziadkadry99/flowgen/internal/flowchart"
	"github.com/ziadkadry99/flowgen/internal/render"
	"github.com/ziadkadry99/flowgen/internal/server"
)

const emptyPromptMessage = "Please enter a prompt first."

// statusResponse is the JSON response for the backend status endpoint.
type statusResponse struct {
	Connected bool   `json:"connected"`
	APIURL    string `json:"api_url"`
	Message   string `json:"message"`
	Hint      string `json:"hint,omitempty"`
}

// defaultsResponse carries the initial form values.
type defaultsResponse struct {
	Prompt            string                 `json:"prompt"`
	ComparePrompt     string                 `json:"compare_prompt"`
	Directions        []flowchart.Direction  `json:"directions"`
	Complexities      []flowchart.Complexity `json:"complexities"`
	DefaultComplexity flowchart.Complexity   `json:"default_complexity"`
	PasteCode         string                 `json:"paste_code"`
}

// generateResponse is a generated diagram ready to display.
type generateResponse struct {
	*render.Widget
	CodeHTML string `json:"code_html"`
	Message  string `json:"message"`
}

// previewRequest is pasted code to preview.
type previewRequest struct {
	Grammar flowchart.Grammar `json:"grammar"`
	Code    string            `json:"code"`
}

// legendResponse is the JSON response for the symbol legend tab.
type legendResponse struct {
	Rows        []diagrams.LegendRow `json:"rows"`
	Example     string               `json:"example"`
	ExampleHTML string               `json:"example_html"`
	TipsHTML    string               `json:"tips_html"`
	Sample      *render.Widget       `json:"sample"`
}

// errorResponse is shown inline by the page.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (u *UI) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{APIURL: u.backend.BaseURL()}
	_, err := u.backend.Health(r.Context())
	var apiErr *client.APIError
	switch {
	case err == nil:
		resp.Connected = true
		resp.Message = "Connected to API"
	case errors.As(err, &apiErr):
		resp.Message = "API returned an error"
	default:
		resp.Message = "Cannot connect to API"
		resp.Hint = fmt.Sprintf("Make sure API is running at %s", resp.APIURL)
	}
	server.WriteJSON(w, http.StatusOK, resp)
}

func (u *UI) handleDefaults(w http.ResponseWriter, r *http.Request) {
	server.WriteJSON(w, http.StatusOK, defaultsResponse{
		Prompt:            DefaultPrompt,
		ComparePrompt:     DefaultComparePrompt,
		Directions:        []flowchart.Direction{flowchart.TopToBottom, flowchart.LeftToRight},
		Complexities:      []flowchart.Complexity{flowchart.Simple, flowchart.Medium, flowchart.Detailed},
		DefaultComplexity: flowchart.Medium,
		PasteCode:         diagrams.SampleLoanFlow().Mermaid(),
	})
}

func (u *UI) handleGenerate(w http.ResponseWriter, r *http.Request) {
	grammar, err := flowchart.ParseGrammar(chi.URLParam(r, "grammar"))
	if err != nil {
		server.WriteJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	var req flowchart.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		server.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		server.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: emptyPromptMessage})
		return
	}
	withFormDefaults(&req)

	code, err := u.backend.Generate(r.Context(), grammar, req)
	if err != nil {
		log.WithFields(log.Fields{"grammar": grammar}).WithError(err).Warn("generation request failed")
		server.WriteJSON(w, http.StatusBadGateway, errorResponse{Error: backendErrorMessage(err)})
		return
	}

	resp, err := newGenerateResponse(grammar, code)
	if err != nil {
		server.WriteJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Code: code})
		return
	}
	server.WriteJSON(w, http.StatusOK, resp)
}

func (u *UI) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		server.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Grammar == "" {
		req.Grammar = flowchart.GrammarMermaid
	}
	grammar, err := flowchart.ParseGrammar(string(req.Grammar))
	if err != nil {
		server.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		server.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "Paste some code first."})
		return
	}

	widget, err := render.NewWidget(grammar, req.Code)
	if err != nil {
		server.WriteJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Code: req.Code})
		return
	}
	server.WriteJSON(w, http.StatusOK, widget)
}

func (u *UI) handleLegend(w http.ResponseWriter, r *http.Request) {
	example := diagrams.SampleInputFlow().Mermaid()
	exampleHTML, err := highlightCode("mermaid", example)
	if err != nil {
		server.WriteJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	tipsHTML, err := renderMarkdown(diagrams.LegendTips)
	if err != nil {
		server.WriteJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	sample, err := render.NewWidget(flowchart.GrammarMermaid, diagrams.SampleLegendFlow().Mermaid())
	if err != nil {
		server.WriteJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	server.WriteJSON(w, http.StatusOK, legendResponse{
		Rows:        diagrams.Legend(),
		Example:     example,
		ExampleHTML: exampleHTML,
		TipsHTML:    tipsHTML,
		Sample:      sample,
	})
}

// newGenerateResponse guards code and builds the widget and highlighted
// source for it.
func newGenerateResponse(g flowchart.Grammar, code string) (*generateResponse, error) {
	widget, err := render.NewWidget(g, code)
	if err != nil {
		return nil, err
	}
	lang := "mermaid"
	if g == flowchart.GrammarD2 {
		lang = "plaintext"
	}
	codeHTML, err := highlightCode(lang, code)
	if err != nil {
		return nil, err
	}
	return &generateResponse{Widget: widget, CodeHTML: codeHTML, Message: "Flowchart generated!"}, nil
}

// withFormDefaults fills the radio and slider values the form always sends.
func withFormDefaults(req *flowchart.Request) {
	if req.Direction == "" {
		req.Direction = flowchart.TopToBottom
	}
	if req.Complexity == "" {
		req.Complexity = flowchart.Medium
	}
}

// backendErrorMessage formats a backend failure for inline display.
func backendErrorMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return "Error: " + err.Error()
}
