package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/techseo/pkg/domain"
	"github.com/aretw0/techseo/pkg/schema"
	"github.com/go-chi/chi/v5"
)

// CrossPostResponse is the body of GET /crosspost.
type CrossPostResponse struct {
	Content string `json:"content"`
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// post resolves the post named by raw and writes the error response on failure.
func (s *Server) post(w http.ResponseWriter, r *http.Request, raw string) (*domain.Post, bool) {
	id, ok := parseID(raw)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_post_id", "post_id must be a positive integer")
		return nil, false
	}
	post, err := s.Engine.Post(r.Context(), id)
	if errors.Is(err, domain.ErrPostNotFound) {
		writeError(w, http.StatusNotFound, "not_found", "post not found")
		return nil, false
	}
	if err != nil {
		s.logger.Error("Failed to load post", "post_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "failed to load post")
		return nil, false
	}
	return post, true
}

// GetCrossPost handles GET /crosspost?post_id=&platform=.
func (s *Server) GetCrossPost(w http.ResponseWriter, r *http.Request) {
	if !s.Engine.CrossPostingEnabled() {
		writeError(w, http.StatusForbidden, "crossposting_disabled", "cross posting is disabled")
		return
	}

	q := r.URL.Query()
	post, ok := s.post(w, r, q.Get("post_id"))
	if !ok {
		return
	}

	content, err := s.Engine.CrossPost(r.Context(), q.Get("platform"), post)
	switch {
	case errors.Is(err, domain.ErrUnsupportedPlatform):
		writeError(w, http.StatusBadRequest, "invalid_platform", "unsupported platform")
		return
	case errors.Is(err, domain.ErrCrossPostingDisabled):
		writeError(w, http.StatusForbidden, "crossposting_disabled", "cross posting is disabled")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, CrossPostResponse{Content: content})
}

// GetSchema handles GET /posts/{id}/schema. Posts without a TechArticle get 204.
func (s *Server) GetSchema(w http.ResponseWriter, r *http.Request) {
	post, ok := s.post(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	article, ok := s.Engine.Schema(r.Context(), post)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	body, err := schema.Marshal(article)
	if err != nil {
		s.logger.Error("Failed to encode TechArticle", "post_id", post.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "failed to encode schema")
		return
	}
	w.Header().Set("Content-Type", "application/ld+json")
	w.Write(body)
}

// GetHead handles GET /posts/{id}/head.
func (s *Server) GetHead(w http.ResponseWriter, r *http.Request) {
	post, ok := s.post(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	markup, err := s.Engine.HeadMarkup(r.Context(), post)
	if err != nil {
		s.logger.Error("Failed to build head markup", "post_id", post.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "failed to build head markup")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(markup))
}

// GetLLMSText handles GET /llms.txt.
func (s *Server) GetLLMSText(w http.ResponseWriter, r *http.Request) {
	text, err := s.Engine.LLMSText(r.Context())
	if err != nil {
		s.logger.Error("Failed to build llms.txt", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "failed to build llms.txt")
		return
	}
	if text == "" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(text))
}
