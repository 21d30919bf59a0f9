// Package storage is the file storage collaborator. The core only sees the
// Store contract; policy (content-type allow-list, size cap) lives with the
// upload controller and is enforced before Save is invoked.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Object describes a stored file.
type Object struct {
	Key  string
	URL  string
	Size int64
}

type Store interface {
	// Save writes the bytes under a generated key within the given
	// subdirectory ("images" or "audio") and returns its public URL.
	Save(data []byte, subdir, ext string) (Object, error)
	// Remove deletes the stored bytes. Missing files are not an error.
	Remove(subdir, key string) error
}

// localStore keeps uploads on disk under root, served from baseURL by the
// echo static route.
type localStore struct {
	root    string
	baseURL string
}

func NewLocal(root, baseURL string) (Store, error) {
	for _, d := range []string{"images", "audio"} {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
	}
	return &localStore{root: root, baseURL: baseURL}, nil
}

func (s *localStore) Save(data []byte, subdir, ext string) (Object, error) {
	key := uuid.NewString() + "." + ext
	path := filepath.Join(s.root, subdir, key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Object{}, fmt.Errorf("write upload: %w", err)
	}
	return Object{
		Key:  key,
		URL:  s.baseURL + "/" + subdir + "/" + key,
		Size: int64(len(data)),
	}, nil
}

func (s *localStore) Remove(subdir, key string) error {
	err := os.Remove(filepath.Join(s.root, subdir, filepath.Base(key)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
