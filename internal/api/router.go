package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/wallpanel-core/internal/command"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)
	r.Use(s.authMiddleware)

	r.Route("/api", func(r chi.Router) {
		// Read endpoints: status sub-trees
		r.Get("/status", s.handleStatus)
		r.Get("/battery", s.handleBattery)
		r.Get("/brightness", s.handleBrightness)
		r.Get("/screen", s.handleScreen)
		r.Get("/wifi", s.handleWifi)
		r.Get("/info", s.handleInfo)
		r.Get("/health", s.handleHealth)
		r.Get("/rotation", s.handleRotation)
		r.Get("/sensors", s.handleSensors)
		r.Get("/storage", s.handleStorage)
		r.Get("/memory", s.handleMemory)

		// Binary capture endpoints
		r.Get("/screenshot", s.handleScreenshot)
		r.Get("/camera/list", s.handleCameraList)
		r.Get("/camera/photo", s.handleCameraPhoto)

		// Live status stream
		r.Get("/ws", s.handleWebSocket)

		// Write endpoints, gated by allowControl
		r.Group(func(r chi.Router) {
			r.Use(s.controlMiddleware)

			r.Post("/brightness", s.handleSetBrightness)
			r.Post("/volume", s.handleSetVolume)
			r.Post("/screen/on", s.commandHandler(command.ScreenOn))
			r.Post("/screen/off", s.commandHandler(command.ScreenOff))
			r.Post("/url", s.urlHandler(command.SetURL))
			r.Post("/navigate", s.urlHandler(command.Navigate))
			r.Post("/tts", s.textHandler(command.Speak))
			r.Post("/toast", s.textHandler(command.Toast))
			r.Post("/app/launch", s.handleLaunchApp)
			r.Post("/js", s.handleEvalJS)
			r.Post("/reboot", s.commandHandler(command.Reboot))
			r.Post("/clearCache", s.commandHandler(command.ClearCache))
			r.Post("/wake", s.commandHandler(command.Wake))
			r.Post("/rotation/start", s.commandHandler(command.StartRotation))
			r.Post("/rotation/stop", s.commandHandler(command.StopRotation))
			r.Post("/remote/{key}", s.handleRemoteKey)
		})
	})

	// Every unmatched route gets the JSON envelope, not a bare 404.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeNotFound(w, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeNotFound(w, "not found")
	})

	return r
}
