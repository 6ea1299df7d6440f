package session

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/ganeshpawar09/CarZy-Admin/domain"
)

// FileStore implements domain.SessionStore as a single JSON record on disk,
// the device-local equivalent of the browser's storage slot. When a sealing
// key is configured the record is encrypted at rest, since it may carry a
// bearer token.
type FileStore struct {
	path   string
	key    []byte
	logger *logrus.Logger
}

// NewFileStore creates a session store at path. key is nil for plaintext
// storage, or 32 bytes to seal the record.
func NewFileStore(path string, key []byte, logger *logrus.Logger) *FileStore {
	return &FileStore{path: path, key: key, logger: logger}
}

// Load implements domain.SessionStore. It never fails: any read, unseal or
// parse problem is logged and treated as "no session".
func (s *FileStore) Load() *domain.Session {
	blob, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.WithError(err).Debug("Could not read session file")
		}
		return nil
	}

	if s.key != nil {
		blob, err = s.unseal(blob)
		if err != nil {
			s.logger.WithError(err).Warn("Could not unseal session file, treating as no session")
			return nil
		}
	}

	var session domain.Session
	if err := json.Unmarshal(blob, &session); err != nil {
		s.logger.WithError(err).Warn("Could not parse session file, treating as no session")
		return nil
	}
	return &session
}

// Save implements domain.SessionStore. The whole record is replaced; the
// write goes through a temp file and rename so a crash never leaves a
// half-written session behind.
func (s *FileStore) Save(session *domain.Session) error {
	blob, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if s.key != nil {
		blob, err = s.seal(blob)
		if err != nil {
			return fmt.Errorf("failed to seal session: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

// Clear implements domain.SessionStore
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// seal encrypts plain with ChaCha20-Poly1305, nonce prefixed to the box.
func (s *FileStore) seal(plain []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return aead.Seal(nonce, nonce, plain, nil), nil
}

func (s *FileStore) unseal(box []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, err
	}
	if len(box) < aead.NonceSize() {
		return nil, fmt.Errorf("sealed session record too short")
	}
	nonce, cipher := box[:aead.NonceSize()], box[aead.NonceSize():]
	return aead.Open(nil, nonce, cipher, nil)
}

// Compile-time interface compliance verification
var _ domain.SessionStore = (*FileStore)(nil)
