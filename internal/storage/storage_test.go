package storage

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

// setTempDataDir изолирует каталог данных (БД и ключ) в temp.
func setTempDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DIARY_DATA_PATH", dir)
	return dir
}

// openTestStore открывает хранилище в temp-каталоге и закрывает его по
// завершении теста.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, _, err := Open(zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_CreatesFiles(t *testing.T) {
	dir := setTempDataDir(t)
	s, dbPath, err := Open(zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if dbPath != filepath.Join(dir, "diary.db") {
		t.Fatalf("unexpected db path: %q", dbPath)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("db file not created: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "encryption.key")); err != nil {
		t.Fatalf("key file not created: %v", err)
	}
}

func TestOpen_IdempotentInit(t *testing.T) {
	setTempDataDir(t)

	s1, _, err := Open(zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	id, err := s1.SaveEntry("", "persist", "body", []string{"keep"})
	if err != nil {
		t.Fatalf("SaveEntry: %v", err)
	}
	if err := s1.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// повторная инициализация на том же каталоге не трогает данные
	s2, _, err := Open(zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	defer s2.Close()

	e, err := s2.GetEntry(id)
	if err != nil {
		t.Fatalf("GetEntry after reopen: %v", err)
	}
	if e.Title != "persist" || e.Content != "body" {
		t.Fatalf("row altered by reinit: %+v", e)
	}
	if len(e.Tags) != 1 || e.Tags[0] != "keep" {
		t.Fatalf("tags altered by reinit: %v", e.Tags)
	}
}

func TestForeignKeys_EnforcedPerConnection(t *testing.T) {
	setTempDataDir(t)
	s := openTestStore(t)

	// вставка тегирования с несуществующими ссылками должна падать:
	// PRAGMA foreign_keys включается через DSN для каждого соединения пула
	if _, err := s.db.Exec(`INSERT INTO diary_tags (diary_id, tag_id) VALUES ('no-entry', 'no-tag')`); err == nil {
		t.Fatalf("foreign keys are not enforced")
	}
}
