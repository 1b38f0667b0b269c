package api

import (
	"net/http"

	"github.com/nerrad567/wallpanel-core/internal/status"
)

// handleStatus returns the full status snapshot.
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, s.provider.Snapshot())
}

func (s *Server) handleBattery(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, s.provider.Snapshot().Battery)
}

// handleBrightness returns only the brightness value; kiosk dashboards
// poll it on its own.
func (s *Server) handleBrightness(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, map[string]any{
		"brightness": s.provider.Snapshot().Screen.Brightness,
	})
}

func (s *Server) handleScreen(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, s.provider.Snapshot().Screen)
}

func (s *Server) handleWifi(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, s.provider.Snapshot().Wifi)
}

func (s *Server) handleRotation(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, s.provider.Snapshot().Rotation)
}

func (s *Server) handleSensors(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, s.provider.Snapshot().Sensors)
}

func (s *Server) handleStorage(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, s.provider.Snapshot().Storage)
}

func (s *Server) handleMemory(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, s.provider.Snapshot().Memory)
}

// infoResponse is the device block with the server version alongside.
type infoResponse struct {
	status.Device
	ServerVersion string `json:"serverVersion"`
}

// handleInfo returns static device information.
func (s *Server) handleInfo(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, infoResponse{
		Device:        s.provider.Snapshot().Device,
		ServerVersion: s.version,
	})
}

// handleHealth returns server liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
