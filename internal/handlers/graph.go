package handlers

import (
	"net/http"

	"GraphDiary/internal/service"

	"go.uber.org/zap"
)

// GraphHandler отдаёт графовую проекцию хранилища.
type GraphHandler struct {
	Service *service.DiaryService
	Logger  *zap.SugaredLogger
}

// NewGraphHandler создаёт хендлер графа
func NewGraphHandler(diaryService *service.DiaryService, logger *zap.SugaredLogger) *GraphHandler {
	return &GraphHandler{Service: diaryService, Logger: logger}
}

// Get собирает и возвращает весь граф: узлы записей и тегов, рёбра
// тегирований и связей.
func (h *GraphHandler) Get(w http.ResponseWriter, r *http.Request) {
	graph, err := h.Service.GetGraph()
	if err != nil {
		h.Logger.Errorw("GetGraph: storage error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, graph)
}
