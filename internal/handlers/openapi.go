package handlers

import (
	_ "embed"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openAPIDocument []byte

// OpenAPIHandler serves the API description in YAML and JSON
type OpenAPIHandler struct {
	raw    []byte
	parsed map[string]any
}

// NewOpenAPIHandler parses the embedded OpenAPI document
func NewOpenAPIHandler() (*OpenAPIHandler, error) {
	return newOpenAPIHandler(openAPIDocument)
}

func newOpenAPIHandler(raw []byte) (*OpenAPIHandler, error) {
	var parsed map[string]any
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse OpenAPI document: %w", err)
	}
	if len(parsed) == 0 {
		return nil, fmt.Errorf("parse OpenAPI document: empty document")
	}
	return &OpenAPIHandler{raw: raw, parsed: parsed}, nil
}

// RegisterRoutes registers OpenAPI routes
func (h *OpenAPIHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/v1/openapi.yaml", h.ServeYAML).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/openapi.json", h.ServeJSON).Methods(http.MethodGet)
}

// ServeYAML serves the OpenAPI document as written
func (h *OpenAPIHandler) ServeYAML(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/x-yaml")
	if _, err := w.Write(h.raw); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to write response")
	}
}

// ServeJSON serves the OpenAPI document converted to JSON
func (h *OpenAPIHandler) ServeJSON(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.parsed)
}
