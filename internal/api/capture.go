package api

import (
	"errors"
	"net/http"
	"strconv"
)

// defaultPhotoQuality is the JPEG quality when the caller omits it.
const defaultPhotoQuality = 80

// handleScreenshot streams the current screen contents as raw image
// bytes, bypassing the JSON envelope. 503 without a capturer.
func (s *Server) handleScreenshot(w http.ResponseWriter, r *http.Request) {
	if s.capturer == nil {
		writeUnavailable(w, "screenshot capability not available")
		return
	}

	data, contentType, err := s.capturer.Screenshot(r.Context())
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			writeUnavailable(w, "screenshot capability not available")
			return
		}
		s.logger.Error("screenshot capture failed", "error", err)
		writeInternalError(w, "screenshot capture failed")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // Best-effort write; connection may be closed
	w.Write(data)
}

// handleCameraPhoto handles GET /api/camera/photo?camera=front|back&quality=1-100.
func (s *Server) handleCameraPhoto(w http.ResponseWriter, r *http.Request) {
	if s.capturer == nil {
		writeUnavailable(w, "camera capability not available")
		return
	}

	camera := r.URL.Query().Get("camera")
	if camera != "front" && camera != "back" {
		writeBadRequest(w, "camera must be front or back")
		return
	}

	quality := defaultPhotoQuality
	if q := r.URL.Query().Get("quality"); q != "" {
		parsed, err := strconv.Atoi(q)
		if err != nil || parsed < 1 || parsed > 100 {
			writeBadRequest(w, "quality must be an integer 1-100")
			return
		}
		quality = parsed
	}

	data, contentType, err := s.capturer.CameraPhoto(r.Context(), camera, quality)
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			writeUnavailable(w, "camera capability not available")
			return
		}
		s.logger.Error("camera capture failed", "camera", camera, "error", err)
		writeInternalError(w, "camera capture failed")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // Best-effort write; connection may be closed
	w.Write(data)
}

// handleCameraList returns the available camera names in the envelope.
func (s *Server) handleCameraList(w http.ResponseWriter, r *http.Request) {
	if s.capturer == nil {
		writeUnavailable(w, "camera capability not available")
		return
	}

	cameras, err := s.capturer.CameraList(r.Context())
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			writeUnavailable(w, "camera capability not available")
			return
		}
		s.logger.Error("camera list failed", "error", err)
		writeInternalError(w, "camera list failed")
		return
	}

	writeSuccess(w, map[string]any{"cameras": cameras})
}
