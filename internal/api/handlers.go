package api

import (
	"encoding/json/jsontext"
	"encoding/json/v2"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/pudottapommin/ephemeral-messages-service/pkg/storage"
)

func (h *handlers) messagePOST(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var dto MessageRequestData
	defer r.Body.Close()
	decoder := jsontext.NewDecoder(r.Body)
	if err := json.UnmarshalDecode(decoder, &dto); err != nil {
		h.l.Error("failed to decode request body", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	uid := strings.TrimSpace(dto.UID)
	if uid == "" {
		http.Error(w, "missing message id", http.StatusBadRequest)
		return
	}

	_, err := h.db.Create(ctx, uid, []byte(dto.EncryptedData), dto.ExpiresAt, dto.BurnAfterReading)
	switch {
	case errors.Is(err, storage.ErrDuplicateID):
		http.Error(w, "message id already exists", http.StatusBadRequest)
		return
	case errors.Is(err, storage.ErrInvalidExpiry):
		http.Error(w, "expiry must be in the future", http.StatusBadRequest)
		return
	case err != nil:
		h.l.Error("failed to store message", "id", uid, "error", err)
		http.Error(w, "error creating message", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, StatusResponseData{Status: "success", Message: "Message created successfully"})
}

func (h *handlers) messageGET(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := strings.TrimSpace(r.PathValue("uid"))
	if uid == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	m, err := h.db.Get(ctx, uid)
	switch {
	case errors.Is(err, storage.ErrRecordNotFound):
		http.Error(w, "message not found or expired", http.StatusNotFound)
		return
	case err != nil:
		h.l.Error("failed to get message", "id", uid, "error", err)
		http.Error(w, "error fetching message", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, MessageResponseData{
		EncryptedData:    string(m.Payload),
		ExpiresAt:        m.ExpiresAt,
		BurnAfterReading: m.BurnAfterReading,
	})
}

func (h *handlers) messageDELETE(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := strings.TrimSpace(r.PathValue("uid"))
	if uid == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	err := h.db.Delete(ctx, uid)
	switch {
	case errors.Is(err, storage.ErrRecordNotFound):
		http.Error(w, "message not found", http.StatusNotFound)
		return
	case err != nil:
		h.l.Error("failed to delete message", "id", uid, "error", err)
		http.Error(w, "error deleting message", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, StatusResponseData{Status: "success", Message: "Message deleted successfully"})
}

func (h *handlers) healthGET(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		h.l.Error("health probe failed", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		encoder := jsontext.NewEncoder(w)
		_ = json.MarshalEncode(encoder, HealthResponseData{Status: "unhealthy", Timestamp: time.Now().UTC()})
		return
	}
	h.writeJSON(w, HealthResponseData{Status: "healthy", Timestamp: time.Now().UTC()})
}

func (h *handlers) writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	encoder := jsontext.NewEncoder(w)
	if err := json.MarshalEncode(encoder, data); err != nil {
		h.l.Error("failed to encode response", "error", err)
		w.Header().Del("Content-Type")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
