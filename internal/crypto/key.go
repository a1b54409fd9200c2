package crypto

import (
	"crypto/rand"
	"io"
	"os"
	"path/filepath"
)

// keyLen — длина ключа для AES‑256 (в байтах).
const keyLen = 32

// dataDir возвращает каталог данных приложения, создавая его при необходимости.
// Базовый каталог можно переопределить через переменную окружения DIARY_DATA_PATH
// (используется та же логика, что и для файла БД SQLite).
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

// keyFilePath возвращает путь к файлу ключа рядом с БД SQLite.
func keyFilePath() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "encryption.key"), nil
}

// LoadOrCreateKey загружает существующий ключ или создаёт новый случайный.
// Файл короче 32 байт считается повреждённым и перезаписывается заново.
func LoadOrCreateKey() ([]byte, error) {
	path, err := keyFilePath()
	if err != nil {
		return nil, err
	}
	if b, err := os.ReadFile(path); err == nil && len(b) >= keyLen {
		return b[:keyLen], nil
	}
	// создаём новый ключ
	key := make([]byte, keyLen)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, err
	}
	// записываем с ограниченными правами доступа
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, err
	}
	return key, nil
}
