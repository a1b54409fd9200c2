package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"GraphDiary/internal/model"

	"github.com/google/uuid"
)

// entryRow — сырая строка diary_entries до расшифровки и разбора меток.
type entryRow struct {
	id        string
	title     string
	envelope  string
	createdAt string
	updatedAt string
}

// SaveEntry сохраняет запись дневника. Пустой id означает создание новой
// записи; непустой — обновление с полной заменой набора тегов. Теги
// создаются лениво по уникальному имени. Всё выполняется в одной
// транзакции.
//
// Обновление несуществующего id — молчаливый no-op: UPDATE затрагивает
// ноль строк, id возвращается как при успехе (поведение сохранено
// намеренно, см. DESIGN.md).
func (s *Store) SaveEntry(id, title, content string, tags []string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	env, err := s.cipher.Encrypt(content)
	if err != nil {
		return "", err
	}
	now := nowRFC3339()

	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer func() {
		// в случае panic или некоммита — откат
		_ = tx.Rollback()
	}()

	if id != "" {
		if _, err := tx.Exec(`UPDATE diary_entries SET title = ?, content = ?, updated_at = ? WHERE id = ?`,
			title, env, now, id); err != nil {
			return "", err
		}
		// полная замена набора тегов
		if _, err := tx.Exec(`DELETE FROM diary_tags WHERE diary_id = ?`, id); err != nil {
			return "", err
		}
	} else {
		id = uuid.NewString()
		if _, err := tx.Exec(`INSERT INTO diary_entries (id, title, content, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?)`, id, title, env, now, now); err != nil {
			return "", err
		}
	}

	for _, name := range tags {
		tagID, err := getOrCreateTag(tx, name)
		if err != nil {
			return "", err
		}
		if _, err := tx.Exec(`INSERT OR IGNORE INTO diary_tags (diary_id, tag_id) VALUES (?, ?)`,
			id, tagID); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// getOrCreateTag возвращает id тега по имени, создавая тег при отсутствии.
// Имя не обрезается и не нормализуется по регистру.
func getOrCreateTag(tx *sql.Tx, name string) (string, error) {
	var id string
	err := tx.QueryRow(`SELECT id FROM tags WHERE name = ?`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	id = uuid.NewString()
	if _, err := tx.Exec(`INSERT INTO tags (id, name) VALUES (?, ?)`, id, name); err != nil {
		return "", err
	}
	return id, nil
}

// GetEntry возвращает запись по id с расшифрованным телом и списком тегов.
func (s *Store) GetEntry(id string) (*model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var row entryRow
	err := s.db.QueryRow(`SELECT id, title, content, created_at, updated_at FROM diary_entries WHERE id = ?`, id).
		Scan(&row.id, &row.title, &row.envelope, &row.createdAt, &row.updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.buildEntry(row)
}

// buildEntry расшифровывает тело и добирает теги для одной строки.
func (s *Store) buildEntry(row entryRow) (*model.Entry, error) {
	content, err := s.cipher.Decrypt(row.envelope)
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", row.id, err)
	}
	tags, err := s.tagsForEntry(row.id)
	if err != nil {
		return nil, err
	}
	return &model.Entry{
		ID:        row.id,
		Title:     row.title,
		Content:   content,
		CreatedAt: parseTimeOrNow(row.createdAt),
		UpdatedAt: parseTimeOrNow(row.updatedAt),
		Tags:      tags,
	}, nil
}

// tagsForEntry возвращает имена тегов записи.
func (s *Store) tagsForEntry(entryID string) ([]string, error) {
	rows, err := s.db.Query(`SELECT t.name FROM tags t
     JOIN diary_tags dt ON t.id = dt.tag_id
     WHERE dt.diary_id = ?`, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tags := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tags = append(tags, name)
	}
	return tags, rows.Err()
}

// queryEntries выполняет запрос по diary_entries и собирает результат:
// сначала вычитываются все строки, затем для каждой — расшифровка и теги.
// Ошибка расшифровки любой строки фатальна для всего вызова.
func (s *Store) queryEntries(query string, args ...any) ([]model.Entry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	raw := []entryRow{}
	for rows.Next() {
		var r entryRow
		if err := rows.Scan(&r.id, &r.title, &r.envelope, &r.createdAt, &r.updatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		raw = append(raw, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	res := make([]model.Entry, 0, len(raw))
	for _, r := range raw {
		e, err := s.buildEntry(r)
		if err != nil {
			return nil, err
		}
		res = append(res, *e)
	}
	return res, nil
}

// ListEntries возвращает все записи, новые первыми (created_at DESC).
// Пагинации нет: хранилище рассчитано на корпус человеческого масштаба.
func (s *Store) ListEntries() ([]model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queryEntries(`SELECT id, title, content, created_at, updated_at
     FROM diary_entries ORDER BY created_at DESC`)
}

// SearchEntriesByTag возвращает записи с тегом name, новые первыми.
func (s *Store) SearchEntriesByTag(name string) ([]model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queryEntries(`SELECT e.id, e.title, e.content, e.created_at, e.updated_at
     FROM diary_entries e
     JOIN diary_tags dt ON e.id = dt.diary_id
     JOIN tags t ON dt.tag_id = t.id
     WHERE t.name = ?
     ORDER BY e.created_at DESC`, name)
}

// DeleteEntry удаляет запись и каскадом все её тегирования и связи.
// Каскад выполняется вручную внутри одной транзакции: сначала связи
// (оба направления), затем тегирования, затем сама запись. Это дублирует
// ON DELETE CASCADE из схемы, но защищает от соединения с выключенной
// PRAGMA foreign_keys. После коммита остаточные строки только
// диагностируются предупреждением в лог.
func (s *Store) DeleteEntry(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec(`DELETE FROM relationships WHERE parent_id = ? OR child_id = ?`, id, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM diary_tags WHERE diary_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.Exec(`DELETE FROM diary_entries WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	// диагностика сирот после коммита
	var rels, taggings int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM relationships WHERE parent_id = ? OR child_id = ?`, id, id).
		Scan(&rels); err == nil && rels > 0 {
		s.log.Warnw("orphan relationships remained after delete", "entry_id", id, "count", rels)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM diary_tags WHERE diary_id = ?`, id).
		Scan(&taggings); err == nil && taggings > 0 {
		s.log.Warnw("orphan taggings remained after delete", "entry_id", id, "count", taggings)
	}
	return nil
}
