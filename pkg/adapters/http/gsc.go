package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/aretw0/techseo/pkg/gsc"
)

type siteRequest struct {
	Site string `json:"site"`
}

type urlRequest struct {
	URL string `json:"url"`
}

// SitesResponse is the body of GET /gsc/sites.
type SitesResponse struct {
	Sites    []string `json:"sites"`
	Selected string   `json:"selected"`
}

// GetConnect handles GET /gsc/connect by redirecting to the consent page.
func (s *Server) GetConnect(w http.ResponseWriter, r *http.Request) {
	target, err := s.Console.Connector().ConnectURL(r.Context())
	if errors.Is(err, gsc.ErrNotConfigured) {
		writeError(w, http.StatusServiceUnavailable, "not_configured", err.Error())
		return
	}
	if err != nil {
		s.logger.Error("Failed to start Search Console authorization", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "failed to start authorization")
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// GetCallback handles GET /gsc/callback and redirects back to the admin URL.
func (s *Server) GetCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	err := s.Console.Connector().Callback(r.Context(), q.Get("state"), q.Get("code"), q.Get("error"))

	params := url.Values{}
	if err != nil {
		s.logger.Warn("Search Console callback failed", "error", err)
		params.Set("gsc_error", callbackReason(err))
	} else {
		params.Set("gsc_connected", "1")
	}
	http.Redirect(w, r, withQuery(s.AdminURL, params), http.StatusFound)
}

func callbackReason(err error) string {
	switch {
	case errors.Is(err, gsc.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, gsc.ErrMissingCode):
		return "missing_code"
	case errors.Is(err, gsc.ErrProvider):
		return strings.TrimPrefix(err.Error(), gsc.ErrProvider.Error()+": ")
	default:
		return "callback_failed"
	}
}

func withQuery(base string, params url.Values) string {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + params.Encode()
}

// GetSites handles GET /gsc/sites.
func (s *Server) GetSites(w http.ResponseWriter, r *http.Request) {
	sites, err := s.Console.Sites(r.Context())
	if err != nil {
		s.writeConsoleError(w, err)
		return
	}
	selected, err := s.Console.Site(r.Context())
	if err != nil {
		s.writeConsoleError(w, err)
		return
	}
	if sites == nil {
		sites = []string{}
	}
	writeJSON(w, http.StatusOK, SitesResponse{Sites: sites, Selected: selected})
}

// PostSite handles POST /gsc/site.
func (s *Server) PostSite(w http.ResponseWriter, r *http.Request) {
	var body siteRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}
	if err := s.Console.SelectSite(r.Context(), body.Site); err != nil {
		if errors.Is(err, gsc.ErrNoSite) {
			writeError(w, http.StatusBadRequest, "invalid_site", "site is required")
			return
		}
		s.writeConsoleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, siteRequest{Site: strings.TrimSpace(body.Site)})
}

func (s *Server) decodeURL(w http.ResponseWriter, r *http.Request) (string, bool) {
	var body urlRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return "", false
	}
	u, err := url.Parse(strings.TrimSpace(body.URL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		writeError(w, http.StatusBadRequest, "invalid_url", "url must be absolute")
		return "", false
	}
	return u.String(), true
}

// PostInspect handles POST /gsc/inspect.
func (s *Server) PostInspect(w http.ResponseWriter, r *http.Request) {
	pageURL, ok := s.decodeURL(w, r)
	if !ok {
		return
	}
	inspection, err := s.Console.Inspect(r.Context(), pageURL)
	if err != nil {
		s.writeConsoleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inspection)
}

// PostAnalytics handles POST /gsc/analytics.
func (s *Server) PostAnalytics(w http.ResponseWriter, r *http.Request) {
	pageURL, ok := s.decodeURL(w, r)
	if !ok {
		return
	}
	metrics, err := s.Console.Analytics(r.Context(), pageURL)
	if err != nil {
		s.writeConsoleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

func (s *Server) writeConsoleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gsc.ErrNotConnected):
		writeError(w, http.StatusConflict, "not_connected", err.Error())
	case errors.Is(err, gsc.ErrNoSite):
		writeError(w, http.StatusConflict, "no_site", err.Error())
	default:
		s.logger.Error("Search Console request failed", "error", err)
		writeError(w, http.StatusBadGateway, "gsc_error", err.Error())
	}
}
