package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/wallpanel-core/internal/command"
)

// decodeBody parses the JSON request body into v, writing a 400 envelope
// on failure. Returns false when the request has already been answered.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return false
	}
	return true
}

// execute validates and runs a canonical command, writing the envelope.
//
// Validation failures are 400 and never reach the handler. The handler's
// result map passes through unchanged inside the success envelope; a nil
// result gets a minimal executed acknowledgement.
func (s *Server) execute(w http.ResponseWriter, r *http.Request, cmd command.Command) {
	if err := command.Validate(cmd); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	result, err := s.handler.Execute(r.Context(), cmd)
	if err != nil {
		s.logger.Error("command execution failed",
			"command", cmd.Name,
			"error", err,
			"request_id", r.Context().Value(ctxKeyRequestID),
		)
		writeInternalError(w, "command execution failed")
		return
	}

	if result == nil {
		result = map[string]any{"executed": true, "command": cmd.Name}
	}
	writeSuccess(w, result)
}

// handleSetBrightness handles POST /api/brightness {value: 0-100}.
func (s *Server) handleSetBrightness(w http.ResponseWriter, r *http.Request) {
	s.valueCommand(w, r, command.SetBrightness)
}

// handleSetVolume handles POST /api/volume {value: 0-100}.
func (s *Server) handleSetVolume(w http.ResponseWriter, r *http.Request) {
	s.valueCommand(w, r, command.SetVolume)
}

// valueCommand parses a {value} body for the ranged integer commands.
// Range violations are rejected here (via Validate) before the handler
// is ever invoked.
func (s *Server) valueCommand(w http.ResponseWriter, r *http.Request, name string) {
	var body struct {
		Value *int `json:"value"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Value == nil {
		writeBadRequest(w, "value is required")
		return
	}

	s.execute(w, r, command.Command{
		Name:   name,
		Params: map[string]any{"value": *body.Value},
	})
}

// urlHandler builds a handler for the {url} body commands.
func (s *Server) urlHandler(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			URL string `json:"url"`
		}
		if !decodeBody(w, r, &body) {
			return
		}

		s.execute(w, r, command.Command{
			Name:   name,
			Params: map[string]any{"url": body.URL},
		})
	}
}

// textHandler builds a handler for the {text} body commands.
func (s *Server) textHandler(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Text string `json:"text"`
		}
		if !decodeBody(w, r, &body) {
			return
		}

		s.execute(w, r, command.Command{
			Name:   name,
			Params: map[string]any{"text": body.Text},
		})
	}
}

// commandHandler builds a handler for the parameterless commands.
func (s *Server) commandHandler(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.execute(w, r, command.Command{Name: name})
	}
}

// handleLaunchApp handles POST /api/app/launch {package}.
func (s *Server) handleLaunchApp(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Package string `json:"package"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	s.execute(w, r, command.Command{
		Name:   command.LaunchApp,
		Params: map[string]any{"package": body.Package},
	})
}

// handleEvalJS handles POST /api/js {code}.
func (s *Server) handleEvalJS(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code string `json:"code"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	s.execute(w, r, command.Command{
		Name:   command.EvalJS,
		Params: map[string]any{"code": body.Code},
	})
}

// handleRemoteKey handles POST /api/remote/{key}. Keys outside the fixed
// navigation set are 404, matching the unmatched-route behaviour.
func (s *Server) handleRemoteKey(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	cmd := command.Command{
		Name:   command.RemoteKey,
		Params: map[string]any{"key": key},
	}
	if err := command.Validate(cmd); err != nil {
		if errors.Is(err, command.ErrInvalidParams) {
			writeNotFound(w, "unknown remote key")
			return
		}
		writeBadRequest(w, err.Error())
		return
	}

	s.execute(w, r, cmd)
}
