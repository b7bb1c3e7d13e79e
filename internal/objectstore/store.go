package objectstore

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidKey rejects object keys that could escape the store root.
	ErrInvalidKey = errors.New("invalid object key")
	// ErrNoSigningKey means the store cannot mint signed URLs.
	ErrNoSigningKey = errors.New("signing key not configured")
)

// Store keeps uploaded binaries on local disk and mints expiring HMAC-signed
// URLs for them. The permanent key is never part of an unsigned URL.
type Store struct {
	dir     string
	baseURL string
	secret  []byte
}

// New creates the store directory if needed.
func New(dir, baseURL string, secret []byte) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
	}, nil
}

// Save writes the object under a fresh random key and returns the key.
func (s *Store) Save(r io.Reader, ext string) (string, error) {
	ext = sanitizeExt(ext)
	key := uuid.NewString() + ext
	f, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return key, nil
}

// Open returns the stored object for streaming. The caller closes it.
func (s *Store) Open(key string) (*os.File, error) {
	if !validKey(key) {
		return nil, ErrInvalidKey
	}
	return os.Open(filepath.Join(s.dir, key))
}

// Remove deletes the stored object. Missing objects are not an error.
func (s *Store) Remove(key string) error {
	if !validKey(key) {
		return ErrInvalidKey
	}
	err := os.Remove(filepath.Join(s.dir, key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// SignedURL mints a URL valid until now+ttl.
func (s *Store) SignedURL(key string, ttl time.Duration) (string, error) {
	if !validKey(key) {
		return "", ErrInvalidKey
	}
	if len(s.secret) == 0 {
		return "", ErrNoSigningKey
	}
	exp := time.Now().Add(ttl).Unix()
	sig := s.sign(key, exp)
	return fmt.Sprintf("%s/files/%s?exp=%d&sig=%s", s.baseURL, key, exp, sig), nil
}

// Verify checks a signature produced by SignedURL and that it has not expired.
func (s *Store) Verify(key, expRaw, sig string) bool {
	if !validKey(key) || len(s.secret) == 0 {
		return false
	}
	exp, err := strconv.ParseInt(expRaw, 10, 64)
	if err != nil {
		return false
	}
	if time.Now().Unix() > exp {
		return false
	}
	expected := s.sign(key, exp)
	return hmac.Equal([]byte(expected), []byte(sig))
}

func (s *Store) sign(key string, exp int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s:%d", key, exp)
	return hex.EncodeToString(mac.Sum(nil))
}

func validKey(key string) bool {
	if key == "" || strings.ContainsAny(key, "/\\") || strings.Contains(key, "..") {
		return false
	}
	return true
}

func sanitizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
