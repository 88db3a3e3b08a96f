package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vearutop/tritone"
)

var errBadRequest = errors.New("bad request")

type errorResponse struct {
	Error string `json:"error"`
	Hint  string `json:"hint,omitempty"`
}

type sessionResponse struct {
	ID             string `json:"id"`
	Format         string `json:"format"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	OriginalWidth  int    `json:"original_width"`
	OriginalHeight int    `json:"original_height"`
}

type presetsResponse struct {
	Default string           `json:"default"`
	Presets []tritone.Preset `json:"presets"`
}

func (s *Server) handlePresets(w http.ResponseWriter, _ *http.Request) {
	set := s.presets.get()
	s.writeJSON(w, http.StatusOK, presetsResponse{Default: set.Default, Presets: set.List()})
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	data, err := s.readUpload(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	g, err := s.gradientFromRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := s.processOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := tritone.ProcessImage(data, g, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writePNG(w, res.PNG, true)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	data, err := s.readUpload(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := s.processOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	src, err := tritone.LoadSource(data, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sess := s.sessions.create(src)
	s.logger.Debug("session created", "id", sess.id, "format", src.Format,
		"width", src.Width(), "height", src.Height())
	s.writeJSON(w, http.StatusCreated, newSessionResponse(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newSessionResponse(sess))
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	g, err := s.gradientFromRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	select {
	case res := <-sess.renderer.Submit(g):
		if res.Err != nil {
			s.writeError(w, r, res.Err)
			return
		}
		download, _ := strconv.ParseBool(r.URL.Query().Get("download"))
		s.writePNG(w, res.PNG, download)
	case <-r.Context().Done():
		s.writeError(w, r, r.Context().Err())
	}
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.remove(chi.URLParam(r, "id")) {
		s.writeError(w, r, errSessionNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func newSessionResponse(sess *session) sessionResponse {
	return sessionResponse{
		ID:             sess.id,
		Format:         sess.src.Format,
		Width:          sess.src.Width(),
		Height:         sess.src.Height(),
		OriginalWidth:  sess.src.OriginalWidth,
		OriginalHeight: sess.src.OriginalHeight,
	}
}

// readUpload reads the multipart "image" field, bounded by MaxUploadBytes.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		return nil, fmt.Errorf("%w: parse form: %w", errBadRequest, err)
	}
	f, _, err := r.FormFile("image")
	if err != nil {
		return nil, fmt.Errorf("%w: image field: %w", errBadRequest, err)
	}
	defer f.Close()

	return io.ReadAll(f)
}

// gradientFromRequest resolves "preset" and applies shadow, mid, highlight and
// t_mid overrides from the query or form.
func (s *Server) gradientFromRequest(r *http.Request) (tritone.Gradient, error) {
	o := tritone.GradientOverride{
		Shadow:    r.FormValue("shadow"),
		Mid:       r.FormValue("mid"),
		Highlight: r.FormValue("highlight"),
	}
	if v := r.FormValue("t_mid"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return tritone.Gradient{}, fmt.Errorf("%w: t_mid %q", tritone.ErrInvalidBreakpoint, v)
		}
		o.TMid = &f
	}
	return s.presets.get().Apply(r.FormValue("preset"), o)
}

func (s *Server) processOptions(r *http.Request) (func(o *tritone.ProcessOptions), error) {
	maxWidth := s.cfg.MaxWidth
	if v := r.FormValue("max_width"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: max_width %q", errBadRequest, v)
		}
		if n < maxWidth {
			maxWidth = n
		}
	}
	interp := s.cfg.Interpolation
	if v := r.FormValue("interpolation"); v != "" {
		var err error
		if interp, err = tritone.ParseInterpolation(v); err != nil {
			return nil, fmt.Errorf("%w: %w", errBadRequest, err)
		}
	}
	return func(o *tritone.ProcessOptions) {
		o.MaxWidth = maxWidth
		o.Interpolation = interp
	}, nil
}

func (s *Server) writePNG(w http.ResponseWriter, data []byte, attachment bool) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "no-store")
	if attachment {
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
			"filename": tritone.DownloadFilename,
		}))
	}
	_, _ = w.Write(data)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write json", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := errorStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	s.writeJSON(w, status, resp)
}

func errorStatus(err error) (int, errorResponse) {
	resp := errorResponse{Error: err.Error()}

	var (
		maxBytes  *http.MaxBytesError
		loadErr   *tritone.ImageLoadError
		encodeErr *tritone.EncodeError
	)
	switch {
	case errors.As(err, &maxBytes), errors.Is(err, multipart.ErrMessageTooLarge):
		return http.StatusRequestEntityTooLarge, resp
	case errors.Is(err, tritone.ErrInvalidColorFormat),
		errors.Is(err, tritone.ErrInvalidBreakpoint),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest, resp
	case errors.Is(err, tritone.ErrUnknownPreset), errors.Is(err, errSessionNotFound):
		return http.StatusNotFound, resp
	case errors.As(err, &loadErr):
		resp.Hint = "try a different file (JPEG, PNG, GIF, WebP, BMP or TIFF)"
		return http.StatusUnprocessableEntity, resp
	case errors.Is(err, tritone.ErrSuperseded):
		return http.StatusConflict, resp
	case errors.As(err, &encodeErr):
		resp.Hint = encodeErr.Hint()
		return http.StatusInternalServerError, resp
	case errors.Is(err, tritone.ErrRendererStopped),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, resp
	default:
		return http.StatusInternalServerError, resp
	}
}
