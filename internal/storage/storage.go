package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"GraphDiary/internal/crypto"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Store — хранилище дневника поверх встроенной БД SQLite.
// Все публичные операции сериализуются одним мьютексом на процесс:
// ручной каскад в DeleteEntry требует консистентности read-before-write,
// а пул соединений при сериализованных вызовах не конкурирует.
type Store struct {
	mu     sync.Mutex
	db     *sql.DB
	cipher *crypto.Cipher
	log    *zap.SugaredLogger
}

// maxOpenConns ограничивает пул соединений встроенной БД.
const maxOpenConns = 4

// dataDir возвращает каталог данных приложения, создавая его при необходимости.
// Переопределяется через DIARY_DATA_PATH (см. internal/crypto).
func dataDir() (string, error) {
	base := os.Getenv("DIARY_DATA_PATH")
	if base == "" {
		cfgDir, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(cfgDir, "GraphDiary")
	}
	if err := os.MkdirAll(base, 0o700); err != nil {
		return "", err
	}
	return base, nil
}

// Open открывает (и создаёт при необходимости) файл БД в каталоге данных,
// загружает ключ шифрования и накатывает схему. Вторым значением
// возвращается путь к БД.
//
// PRAGMA foreign_keys действует на каждое соединение отдельно, поэтому
// включается через параметр DSN _pragma: драйвер применяет его при
// открытии каждого соединения пула.
func Open(log *zap.SugaredLogger) (*Store, string, error) {
	dir, err := dataDir()
	if err != nil {
		return nil, "", err
	}
	dbPath := filepath.Join(dir, "diary.db")
	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, "", err
	}
	db.SetMaxOpenConns(maxOpenConns)

	key, err := crypto.LoadOrCreateKey()
	if err != nil {
		_ = db.Close()
		return nil, "", err
	}
	cipher, err := crypto.NewCipher(key)
	if err != nil {
		_ = db.Close()
		return nil, "", err
	}

	s := &Store{db: db, cipher: cipher, log: log}
	if err := s.Migrate(); err != nil {
		_ = db.Close()
		return nil, "", err
	}
	return s, dbPath, nil
}

// Close закрывает соединение с БД.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Migrate гарантирует наличие необходимых таблиц. Идемпотентно: весь DDL
// использует IF NOT EXISTS, повторная инициализация не трогает данные.
func (s *Store) Migrate() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS diary_entries (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  content TEXT NOT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS tags (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS diary_tags (
  diary_id TEXT NOT NULL,
  tag_id TEXT NOT NULL,
  PRIMARY KEY (diary_id, tag_id),
  FOREIGN KEY (diary_id) REFERENCES diary_entries (id) ON DELETE CASCADE,
  FOREIGN KEY (tag_id) REFERENCES tags (id) ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS relationships (
  id TEXT PRIMARY KEY,
  parent_id TEXT NOT NULL,
  child_id TEXT NOT NULL,
  relationship_type TEXT NOT NULL,
  created_at TEXT NOT NULL,
  FOREIGN KEY (parent_id) REFERENCES diary_entries (id) ON DELETE CASCADE,
  FOREIGN KEY (child_id) REFERENCES diary_entries (id) ON DELETE CASCADE
);
`
	_, err := s.db.Exec(ddl)
	return err
}

// timeLayout — RFC-3339 с фиксированными девятью знаками долей секунды:
// метки сортируются лексикографически как TEXT, и ORDER BY created_at
// совпадает с хронологическим порядком.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// nowRFC3339 — единый формат временных меток в БД.
func nowRFC3339() string {
	return time.Now().UTC().Format(timeLayout)
}

// parseTimeOrNow разбирает метку RFC-3339; при ошибке возвращает текущее
// время (снисходительное поведение для легаси-строк, см. DESIGN.md).
func parseTimeOrNow(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Now().UTC()
	}
	return t
}
