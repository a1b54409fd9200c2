package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// byteList сериализуется в JSON как массив беззнаковых целых (0..255),
// а не как base64-строка. Формат конверта в колонке content самоописываемый:
// {"nonce":[...12 байт...],"ciphertext":[...N+16 байт...]}.
type byteList []byte

func (b byteList) MarshalJSON() ([]byte, error) {
	ints := make([]uint16, len(b))
	for i, v := range b {
		ints[i] = uint16(v)
	}
	return json.Marshal(ints)
}

func (b *byteList) UnmarshalJSON(data []byte) error {
	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return err
	}
	out := make([]byte, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return fmt.Errorf("byte value out of range: %d", v)
		}
		out[i] = byte(v)
	}
	*b = out
	return nil
}

// envelope — конверт шифртекста, хранится как текст в колонке content.
// Тег GCM добавлен в конец ciphertext (стандартная комбинированная форма AEAD).
type envelope struct {
	Nonce      byteList `json:"nonce"`
	Ciphertext byteList `json:"ciphertext"`
}

// Cipher шифрует и расшифровывает тела записей дневника ключом процесса.
// Ключ не копируется наружу и живёт до конца процесса.
type Cipher struct {
	key []byte
}

// NewCipher создаёт Cipher для 32-байтового ключа AES-256.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != keyLen {
		return nil, errors.New("invalid key length")
	}
	return &Cipher{key: key}, nil
}

// Encrypt шифрует строку plain с помощью AES‑GCM со свежим случайным nonce
// и возвращает JSON-конверт.
func (c *Cipher) Encrypt(plain string) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	out := gcm.Seal(nil, nonce, []byte(plain), nil)
	env, err := json.Marshal(envelope{Nonce: nonce, Ciphertext: out})
	if err != nil {
		return "", err
	}
	return string(env), nil
}

// Decrypt разбирает JSON-конверт и расшифровывает его содержимое.
// Любая ошибка (битый JSON, неверный nonce, провал аутентификации,
// не-UTF-8 после расшифровки) фатальна для вызова: открытый текст
// вместо ошибки не подставляется.
func (c *Cipher) Decrypt(env string) (string, error) {
	var e envelope
	if err := json.Unmarshal([]byte(env), &e); err != nil {
		return "", fmt.Errorf("malformed envelope: %w", err)
	}
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	if len(e.Nonce) != gcm.NonceSize() {
		return "", errors.New("invalid nonce size")
	}
	plain, err := gcm.Open(nil, e.Nonce, e.Ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("decrypt failed: %w", err)
	}
	if !utf8.Valid(plain) {
		return "", errors.New("decrypted payload is not valid UTF-8")
	}
	return string(plain), nil
}
