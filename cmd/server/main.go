package main

import (
	"net/http"
	"os"

	"GraphDiary/internal/config"
	"GraphDiary/internal/handlers"
	"GraphDiary/internal/middleware"
	"GraphDiary/internal/service"
	"GraphDiary/internal/storage"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	// каталог данных из конфига пробрасывается хранилищу и ключу через env
	if cfg.DataDir != "" {
		_ = os.Setenv("DIARY_DATA_PATH", cfg.DataDir)
	}

	store, dbPath, err := storage.Open(sugar)
	if err != nil {
		sugar.Fatalw("failed to initialize storage", "error", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			sugar.Errorw("Failed to close storage", "error", err)
		}
	}()

	diaryService := service.NewDiaryService(store)
	h := handlers.NewHandler(diaryService, sugar)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
		"db", dbPath,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
