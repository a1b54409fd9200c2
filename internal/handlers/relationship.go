package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"GraphDiary/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RelationshipHandler обрабатывает связи между записями.
type RelationshipHandler struct {
	Service *service.DiaryService
	Logger  *zap.SugaredLogger
}

// NewRelationshipHandler создаёт хендлер связей
func NewRelationshipHandler(diaryService *service.DiaryService, logger *zap.SugaredLogger) *RelationshipHandler {
	return &RelationshipHandler{Service: diaryService, Logger: logger}
}

// AddRelationshipRequest — контракт создания связи parent→child.
type AddRelationshipRequest struct {
	ParentID         string `json:"parent_id"`
	ChildID          string `json:"child_id"`
	RelationshipType string `json:"relationship_type,omitempty"`
}

// AddRelationshipResponse — ответ с id созданной связи.
type AddRelationshipResponse struct {
	ID string `json:"id"`
}

// Add создаёт направленную связь между двумя записями.
func (h *RelationshipHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddRelationshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("AddRelationship: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	id, err := h.Service.AddRelationship(req.ParentID, req.ChildID, req.RelationshipType)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.Logger.Errorw("AddRelationship: storage error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, AddRelationshipResponse{ID: id})
}

// Delete удаляет связь по id; отсутствующая связь — тоже успех.
func (h *RelationshipHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Service.DeleteRelationship(id); err != nil {
		if errors.Is(err, service.ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.Logger.Errorw("DeleteRelationship: storage error", "id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListForEntry возвращает связи записи, где она участвует с любой стороны.
func (h *RelationshipHandler) ListForEntry(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "id")

	rels, err := h.Service.GetRelationships(entryID)
	if err != nil {
		h.Logger.Errorw("GetRelationships: storage error", "entry_id", entryID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, rels)
}
