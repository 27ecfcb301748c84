package server

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/njchilds90/simplehtml"
)

// SanitizeRequest is the JSON body accepted by POST /sanitize.
type SanitizeRequest struct {
	Input string `json:"input"`
}

// SanitizeResponse is the JSON body returned by POST /sanitize.
type SanitizeResponse struct {
	HTML string `json:"html"`
}

// TagsResponse is the JSON body returned by GET /tags.
type TagsResponse struct {
	Tags []string `json:"tags"`
}

// Handler serves the sanitizer endpoints.
type Handler struct {
	maxBodyBytes int64
	logger       *zap.Logger
}

// NewHandler returns a Handler that rejects bodies larger than
// maxBodyBytes.
func NewHandler(maxBodyBytes int64, logger *zap.Logger) *Handler {
	return &Handler{maxBodyBytes: maxBodyBytes, logger: logger}
}

// RegisterRoutes mounts the handler's routes on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/sanitize", h.Sanitize)
	r.Get("/tags", h.Tags)
}

// Sanitize sanitizes the request body. JSON requests get a JSON
// SanitizeResponse; any other body is treated as raw text and answered
// with the sanitized HTML itself.
func (h *Handler) Sanitize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	if isJSON(r.Header.Get("Content-Type")) {
		var req SanitizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.readError(w, r, err)
			return
		}
		out := simplehtml.SanitizeHTML(req.Input)
		writeJSON(w, http.StatusOK, SanitizeResponse{HTML: out.String()})
		return
	}

	out, err := simplehtml.SanitizeReader(r.Body)
	if err != nil {
		h.readError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, out.String())
}

// Tags lists the allowlisted tag names.
func (h *Handler) Tags(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, TagsResponse{Tags: simplehtml.AllowedTags()})
}

func (h *Handler) readError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.logger.Warn("request body too large",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Int64("limit", tooLarge.Limit),
		)
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	h.logger.Debug("bad request body",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err),
	)
	writeError(w, http.StatusBadRequest, "invalid request body")
}

func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && mt == "application/json"
}
