package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store persists one bookkeeping record per shop under a directory. The
// records exist for the authentication context's own use; nothing in this
// module reads them back, and the access token is never written.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. An empty dir disables
// persistence.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// storedSession is the on-disk record shape.
type storedSession struct {
	Shop     string    `json:"shop"`
	State    string    `json:"state"`
	IsOnline bool      `json:"is_online"`
	Scopes   []string  `json:"scopes"`
	Host     string    `json:"host"`
	SavedAt  time.Time `json:"saved_at"`
}

// Save writes the bookkeeping record for a session.
func (s *Store) Save(sess *Session, host string) error {
	if s.dir == "" {
		return nil
	}

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	record := storedSession{
		Shop:     sess.Shop,
		State:    sess.State,
		IsOnline: sess.IsOnline,
		Scopes:   Scopes,
		Host:     host,
		SavedAt:  time.Now().UTC(),
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session record: %w", err)
	}

	if err := os.WriteFile(s.path(sess.Shop), data, 0o600); err != nil {
		return fmt.Errorf("write session record: %w", err)
	}
	return nil
}

func (s *Store) path(shop string) string {
	// Shop hostnames contain only [a-z0-9.-], but don't trust that.
	name := strings.ReplaceAll(shop, string(filepath.Separator), "_")
	return filepath.Join(s.dir, name+".json")
}
