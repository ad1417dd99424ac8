package prefs

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/kirsle/configdir"
	"github.com/pkg/errors"
)

const AppName = "roster"

// FileStore persists preferences as a JSON file in the user configuration
// directory. Writes go through a temporary file then a rename so that a
// crash mid-save never corrupts the previous preferences.
type FileStore struct {
	mutex sync.Mutex
	dir   string
}

// Save implements Store.
func (s *FileStore) Save(state State) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := configdir.MakePath(s.dir); err != nil {
		return errors.WithStack(err)
	}

	file, err := os.OpenFile(s.Path()+"-new", os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0644)
	if err != nil {
		return errors.WithStack(err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("could not close preferences file", slog.Any("error", errors.WithStack(err)))
		}

		if err := os.Remove(file.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Error("could not remove temporary preferences file", slog.Any("error", errors.WithStack(err)))
		}
	}()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(state); err != nil {
		return errors.WithStack(err)
	}

	if err := os.Rename(file.Name(), s.Path()); err != nil {
		return errors.Wrap(err, "could not overwrite preferences")
	}

	return nil
}

// Load implements Store.
func (s *FileStore) Load() (State, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	defaults := State{
		Theme:  DefaultTheme,
		Locale: DefaultLocale,
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaults, nil
		}

		return defaults, errors.WithStack(err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return defaults, errors.WithStack(err)
	}

	return state, nil
}

func (s *FileStore) Path() string {
	return filepath.Join(s.dir, "preferences.json")
}

func NewFileStore() *FileStore {
	return &FileStore{
		dir: configdir.LocalConfig(AppName),
	}
}

// NewFileStoreAt is used by tests to keep preferences out of the real user
// configuration directory.
func NewFileStoreAt(dir string) *FileStore {
	return &FileStore{
		dir: dir,
	}
}

var _ Store = &FileStore{}
