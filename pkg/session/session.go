// Package session persists the signed-in user's token between CLI
// invocations, in a config file under the cabcab home directory.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const configFile = "config.json"

type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

type fileFormat struct {
	Token string `json:"token"`
}

// Save writes the token, creating the config directory if needed.
func (s *Store) Save(token string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(fileFormat{Token: token})
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, configFile), data, 0o600)
}

// Load returns the saved token, or "" if none exists.
func (s *Store) Load() string {
	data, err := os.ReadFile(filepath.Join(s.dir, configFile))
	if err != nil {
		return ""
	}
	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return ""
	}
	return f.Token
}

// Clear removes the saved token. Clearing a missing session is not an
// error.
func (s *Store) Clear() error {
	err := os.Remove(filepath.Join(s.dir, configFile))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
