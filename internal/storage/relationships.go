package storage

import (
	"time"

	"GraphDiary/internal/model"
)

// AddRelationship вставляет направленную связь parent→child с меткой kind.
// Валидация id и выбор типа по умолчанию выполняются слоем диспетчеризации;
// циклы, петли и дубликаты рёбер хранилище не отслеживает.
func (s *Store) AddRelationship(id, parentID, childID, kind string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := nowRFC3339()
	if _, err := s.db.Exec(`INSERT INTO relationships (id, parent_id, child_id, relationship_type, created_at)
     VALUES (?, ?, ?, ?, ?)`, id, parentID, childID, kind, now); err != nil {
		return "", err
	}
	return id, nil
}

// DeleteRelationship удаляет связь по id. Ноль затронутых строк — не ошибка.
func (s *Store) DeleteRelationship(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM relationships WHERE id = ?`, id)
	return err
}

// GetRelationships возвращает все связи, где запись участвует с любой
// стороны, в порядке вставки.
func (s *Store) GetRelationships(entryID string) ([]model.Relationship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT id, parent_id, child_id, relationship_type, created_at
     FROM relationships
     WHERE parent_id = ? OR child_id = ?`, entryID, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []model.Relationship{}
	for rows.Next() {
		var r model.Relationship
		var createdAt string
		if err := rows.Scan(&r.ID, &r.ParentID, &r.ChildID, &r.RelationshipType, &createdAt); err != nil {
			return nil, err
		}
		r.CreatedAt = parseTimeOrNow(createdAt).Format(time.RFC3339)
		res = append(res, r)
	}
	return res, rows.Err()
}
