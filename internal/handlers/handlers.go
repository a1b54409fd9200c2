package handlers

import (
	"GraphDiary/internal/middleware"
	"GraphDiary/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(diaryService *service.DiaryService, logger *zap.SugaredLogger) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)

	// Handlers
	diaryHandler := NewDiaryHandler(diaryService, logger)
	relHandler := NewRelationshipHandler(diaryService, logger)
	graphHandler := NewGraphHandler(diaryService, logger)

	// Diary routes
	r.Post("/api/diary/save", diaryHandler.Save)
	r.Get("/api/diary", diaryHandler.List)
	r.Get("/api/diary/search", diaryHandler.Search)
	r.Get("/api/diary/{id}", diaryHandler.Get)
	r.Delete("/api/diary/{id}", diaryHandler.Delete)
	r.Get("/api/diary/{id}/relationships", relHandler.ListForEntry)

	// Relationship routes
	r.Post("/api/relationships", relHandler.Add)
	r.Delete("/api/relationships/{id}", relHandler.Delete)

	// Graph projection
	r.Get("/api/graph", graphHandler.Get)

	return &Handler{Router: r}
}
