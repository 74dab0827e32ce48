package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/skyfold/skyfold/pkg/buildinfo"
	"github.com/skyfold/skyfold/pkg/errors"
	"github.com/skyfold/skyfold/pkg/pack"
	"github.com/skyfold/skyfold/pkg/pipeline"
)

// packResponse is the JSON envelope for a pack request.
type packResponse struct {
	ManifestHash string       `json:"manifest_hash"`
	Layout       *pack.Layout `json:"layout"`
	Stats        packStats    `json:"stats"`
	Cache        cacheStatus  `json:"cache"`
}

type packStats struct {
	PartCount    int     `json:"part_count"`
	Height       float64 `json:"height"`
	LoadMillis   int64   `json:"load_ms"`
	PackMillis   int64   `json:"pack_ms"`
	RenderMillis int64   `json:"render_ms"`
}

type cacheStatus struct {
	LayoutHit bool `json:"layout_hit"`
	RenderHit bool `json:"render_hit"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// handlePack packs the TOML manifest in the request body and responds in
// the requested format: "json" (default) returns the layout envelope,
// "svg" returns the rendered sheet directly.
func (s *Server) handlePack(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, r, http.StatusRequestEntityTooLarge,
			errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return
	}
	if len(body) == 0 {
		s.writeError(w, r, http.StatusBadRequest,
			errors.New(errors.ErrCodeInvalidInput, "request body must be a TOML manifest"))
		return
	}

	opts, format, err := optionsFromQuery(r, body)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, statusForError(err), err)
		return
	}

	if format == pipeline.FormatSVG {
		w.Header().Set("Content-Type", "image/svg+xml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Artifacts[pipeline.FormatSVG])
		return
	}

	writeJSON(w, http.StatusOK, packResponse{
		ManifestHash: result.ManifestHash,
		Layout:       result.Layout,
		Stats: packStats{
			PartCount:    result.Stats.PartCount,
			Height:       result.Stats.Height,
			LoadMillis:   result.Stats.LoadTime.Milliseconds(),
			PackMillis:   result.Stats.PackTime.Milliseconds(),
			RenderMillis: result.Stats.RenderTime.Milliseconds(),
		},
		Cache: cacheStatus{
			LayoutHit: result.CacheInfo.LayoutHit,
			RenderHit: result.CacheInfo.RenderHit,
		},
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// optionsFromQuery builds pipeline options from query parameters. The
// returned format is what the response should be encoded as.
func optionsFromQuery(r *http.Request, body []byte) (pipeline.Options, string, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		ManifestData: body,
		Sort:         q.Get("sort"),
		Labels:       q.Get("labels") == "true",
		Refresh:      q.Get("refresh") == "true",
	}

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return opts, "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "format parameter")
	}
	opts.Formats = []string{format}

	for name, dst := range map[string]*float64{
		"width":   &opts.SheetWidth,
		"step":    &opts.Step,
		"spacing": &opts.Spacing,
		"scale":   &opts.Scale,
	} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return opts, "", errors.New(errors.ErrCodeInvalidInput, "%s parameter %q is not a number", name, raw)
		}
		*dst = v
	}

	return opts, format, nil
}

// statusForError maps structured error codes onto HTTP status codes.
func statusForError(err error) int {
	switch code := errors.GetCode(err); {
	case code == errors.ErrCodeNotFound,
		code == errors.ErrCodeFileNotFound,
		code == errors.ErrCodePartNotFound:
		return http.StatusNotFound
	case strings.HasPrefix(string(code), "INVALID"):
		return http.StatusBadRequest
	case code == errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	s.logger.Error("request failed",
		"status", status,
		"code", code,
		"err", err,
		"request_id", RequestID(r.Context()))
	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:      string(code),
		Message:   errors.UserMessage(err),
		RequestID: RequestID(r.Context()),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
