package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	syncer "github.com/nkoudou/fastcompta/internal/sync"
)

const sinceFormatHint = `the "since" parameter is required (ISO-8601 date or epoch milliseconds)`

// SyncHandler exposes the offline-sync protocol: GET pulls server deltas,
// POST pushes a device change set and pulls in the same round trip.
type SyncHandler struct {
	service *syncer.Service
}

func NewSyncHandler(service *syncer.Service) *SyncHandler {
	return &SyncHandler{service: service}
}

// Pull handles GET /api/sync?since=...
func (h *SyncHandler) Pull(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("since")
	if raw == "" {
		writeError(w, http.StatusBadRequest, sinceFormatHint)
		return
	}

	since, ok := syncer.ParseSince(raw)
	if !ok {
		writeError(w, http.StatusBadRequest, sinceFormatHint)
		return
	}

	resp, err := h.service.Pull(r.Context(), since)
	if err != nil {
		log.Printf("error syncing: %v", err)
		writeError(w, http.StatusInternalServerError, "synchronization failed")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Push handles POST /api/sync. Request-shape problems are rejected before
// any storage access; per-item outcomes travel in the response body.
func (h *SyncHandler) Push(w http.ResponseWriter, r *http.Request) {
	var req syncer.PushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.DeviceID == "" || req.ClientTime == 0 || req.Since == nil || req.Changes == nil {
		writeError(w, http.StatusBadRequest, "device_id, client_time, since and changes are required")
		return
	}

	since, ok := syncer.ParseSince(req.Since)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid since (ISO-8601 or epoch milliseconds)")
		return
	}

	resp, err := h.service.Push(r.Context(), &req, since)
	if err != nil {
		log.Printf("error pushing sync: %v", err)
		writeError(w, http.StatusInternalServerError, "push synchronization failed")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
