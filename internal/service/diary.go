package service

import (
	"errors"
	"fmt"

	"GraphDiary/internal/model"

	"github.com/google/uuid"
)

// DefaultRelationshipKind — тип связи по умолчанию.
const DefaultRelationshipKind = "depends_on"

// ErrValidation маркирует ошибки входных данных: слой HTTP отвечает на них
// статусом 400, а не 500.
var ErrValidation = errors.New("validation")

// Store определяет минимальный контракт хранилища для слоя сервиса.
type Store interface {
	SaveEntry(id, title, content string, tags []string) (string, error)
	GetEntry(id string) (*model.Entry, error)
	ListEntries() ([]model.Entry, error)
	SearchEntriesByTag(name string) ([]model.Entry, error)
	DeleteEntry(id string) error
	AddRelationship(id, parentID, childID, kind string) (string, error)
	DeleteRelationship(id string) error
	GetRelationships(entryID string) ([]model.Relationship, error)
	GetGraph() (*model.GraphData, error)
}

// DiaryService — тонкий слой диспетчеризации между хостом и хранилищем:
// валидация аргументов связи, тип по умолчанию, выпуск UUID. Остальные
// операции проксируются как есть.
type DiaryService struct {
	store Store
}

// NewDiaryService создаёт сервис поверх хранилища.
func NewDiaryService(store Store) *DiaryService {
	return &DiaryService{store: store}
}

// SaveEntry сохраняет запись (пустой id — создание новой).
func (s *DiaryService) SaveEntry(id, title, content string, tags []string) (string, error) {
	return s.store.SaveEntry(id, title, content, tags)
}

// GetEntry возвращает запись по id.
func (s *DiaryService) GetEntry(id string) (*model.Entry, error) {
	return s.store.GetEntry(id)
}

// ListEntries возвращает все записи, новые первыми.
func (s *DiaryService) ListEntries() ([]model.Entry, error) {
	return s.store.ListEntries()
}

// SearchEntriesByTag возвращает записи с указанным тегом.
func (s *DiaryService) SearchEntriesByTag(tag string) ([]model.Entry, error) {
	return s.store.SearchEntriesByTag(tag)
}

// DeleteEntry удаляет запись со всеми тегированиями и связями.
func (s *DiaryService) DeleteEntry(id string) error {
	return s.store.DeleteEntry(id)
}

// AddRelationship проверяет аргументы, подставляет тип по умолчанию,
// выпускает новый UUID связи и вставляет её в хранилище.
func (s *DiaryService) AddRelationship(parentID, childID, kind string) (string, error) {
	if parentID == "" {
		return "", fmt.Errorf("%w: parent id is required", ErrValidation)
	}
	if childID == "" {
		return "", fmt.Errorf("%w: child id is required", ErrValidation)
	}
	if kind == "" {
		kind = DefaultRelationshipKind
	}
	return s.store.AddRelationship(uuid.NewString(), parentID, childID, kind)
}

// DeleteRelationship удаляет связь по id; отсутствие связи — не ошибка.
func (s *DiaryService) DeleteRelationship(id string) error {
	if id == "" {
		return fmt.Errorf("%w: relationship id is required", ErrValidation)
	}
	return s.store.DeleteRelationship(id)
}

// GetRelationships возвращает связи записи (оба направления).
func (s *DiaryService) GetRelationships(entryID string) ([]model.Relationship, error) {
	return s.store.GetRelationships(entryID)
}

// GetGraph возвращает графовую проекцию хранилища.
func (s *DiaryService) GetGraph() (*model.GraphData, error) {
	return s.store.GetGraph()
}
