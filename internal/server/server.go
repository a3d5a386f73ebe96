// Package server exposes the recorder over a small JSON HTTP API so a UI
// shell (desktop window, web page, phone) can drive it and poll its state.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielrosehill/voicenote/internal/audio"
	"github.com/danielrosehill/voicenote/internal/quality"
	"github.com/danielrosehill/voicenote/internal/service"
)

// Server is the HTTP control surface for one recorder service.
type Server struct {
	svc  *service.Service
	port string
}

// New creates a server around svc listening on the given port.
func New(svc *service.Service, port string) *Server {
	return &Server{svc: svc, port: port}
}

// Start runs the HTTP server. Blocks until the listener fails.
func (s *Server) Start() error {
	slog.Info("Control server listening", "port", s.port)
	return http.ListenAndServe(":"+s.port, s.Handler())
}

// Handler builds the API mux. Split out so tests can drive it with httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/devices", s.handleDevices)
	mux.HandleFunc("/api/quality", s.handleQuality)
	mux.HandleFunc("/api/start", s.handleTransition("start"))
	mux.HandleFunc("/api/pause", s.handleTransition("pause"))
	mux.HandleFunc("/api/resume", s.handleTransition("resume"))
	mux.HandleFunc("/api/stop", s.handleTransition("stop"))
	mux.HandleFunc("/api/clear", s.handleTransition("clear"))
	mux.HandleFunc("/api/save", s.handleSave)
	mux.HandleFunc("/api/device", s.handleSetDevice)
	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

type saveRequest struct {
	Path string `json:"path"`
}

type saveResponse struct {
	Path string `json:"path"`
}

type qualityRequest struct {
	Preset string `json:"preset"`
}

type qualityResponse struct {
	Active   string            `json:"active"`
	Profiles []quality.Profile `json:"profiles"`
}

type deviceRequest struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

type devicesResponse struct {
	Devices []audio.Device `json:"devices"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Unable to write response", "error", err)
	}
}

// writeError maps recorder errors onto HTTP codes: invalid transitions and
// empty-buffer saves are conflicts, everything else is a server error.
func writeError(w http.ResponseWriter, err error) {
	var ise *audio.InvalidStateError
	code := http.StatusInternalServerError
	if errors.As(err, &ise) || errors.Is(err, audio.ErrNoAudio) {
		code = http.StatusConflict
	}
	writeJSON(w, code, errorResponse{Error: err.Error()})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "GET required"})
		return
	}
	writeJSON(w, http.StatusOK, s.svc.Status())
}

func (s *Server) handleDevices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "GET required"})
		return
	}
	devices, err := audio.ListInputDevices()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, devicesResponse{Devices: devices})
}

func (s *Server) handleQuality(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, qualityResponse{
			Active:   string(s.svc.Recorder().Quality().Preset),
			Profiles: quality.All(),
		})
	case http.MethodPost:
		var req qualityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}
		if _, err := quality.ForPreset(quality.Preset(req.Preset)); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		if err := s.svc.SetQuality(quality.Preset(req.Preset)); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s.svc.Status())
	default:
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "GET or POST required"})
	}
}

// handleTransition serves the four no-op-tolerant transitions plus clear.
func (s *Server) handleTransition(op string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "POST required"})
			return
		}
		rec := s.svc.Recorder()
		var err error
		switch op {
		case "start":
			err = rec.Start()
		case "pause":
			rec.Pause()
		case "resume":
			rec.Resume()
		case "stop":
			rec.Stop()
		case "clear":
			rec.Clear()
		}
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s.svc.Status())
	}
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "POST required"})
		return
	}
	var req saveRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}
	}

	var path string
	var err error
	if req.Path != "" {
		path, err = s.svc.Recorder().Save(req.Path)
	} else {
		path, err = s.svc.SaveToDefault()
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saveResponse{Path: path})
}

func (s *Server) handleSetDevice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "POST required"})
		return
	}
	var req deviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Index < audio.DefaultDevice {
		writeJSON(w, http.StatusBadRequest,
			errorResponse{Error: fmt.Sprintf("invalid device index %d", req.Index)})
		return
	}
	s.svc.SetDevice(req.Index, req.Name)
	writeJSON(w, http.StatusOK, s.svc.Status())
}
