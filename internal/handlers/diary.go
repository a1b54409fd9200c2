package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"GraphDiary/internal/service"
	"GraphDiary/internal/storage"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DiaryHandler обрабатывает операции с записями дневника.
type DiaryHandler struct {
	Service *service.DiaryService
	Logger  *zap.SugaredLogger
}

// NewDiaryHandler создаёт хендлер записей
func NewDiaryHandler(diaryService *service.DiaryService, logger *zap.SugaredLogger) *DiaryHandler {
	return &DiaryHandler{Service: diaryService, Logger: logger}
}

// SaveRequest — контракт сохранения записи. Пустой id означает создание.
type SaveRequest struct {
	ID      string   `json:"id,omitempty"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// SaveResponse — ответ сохранения.
type SaveResponse struct {
	ID string `json:"id"`
}

// Save сохраняет запись дневника (создание или обновление с заменой тегов).
func (h *DiaryHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Save: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	id, err := h.Service.SaveEntry(req.ID, req.Title, req.Content, req.Tags)
	if err != nil {
		h.Logger.Errorw("Save: storage error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, SaveResponse{ID: id})
}

// Get возвращает запись по id с расшифрованным телом.
func (h *DiaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entry, err := h.Service.GetEntry(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "entry not found", http.StatusNotFound)
			return
		}
		h.Logger.Errorw("Get: storage error", "id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// List возвращает все записи, новые первыми.
func (h *DiaryHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.ListEntries()
	if err != nil {
		h.Logger.Errorw("List: storage error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// Search возвращает записи с тегом из query-параметра tag.
func (h *DiaryHandler) Search(w http.ResponseWriter, r *http.Request) {
	tag := r.URL.Query().Get("tag")
	if tag == "" {
		http.Error(w, "tag query parameter is required", http.StatusBadRequest)
		return
	}

	entries, err := h.Service.SearchEntriesByTag(tag)
	if err != nil {
		h.Logger.Errorw("Search: storage error", "tag", tag, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// Delete удаляет запись и каскадом её тегирования и связи.
func (h *DiaryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Service.DeleteEntry(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "entry not found", http.StatusNotFound)
			return
		}
		h.Logger.Errorw("Delete: storage error", "id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeJSON сериализует ответ с кодом статуса.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
