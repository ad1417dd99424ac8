package fixture

import (
	"encoding/json"
	"log/slog"
	"path/filepath"

	"github.com/bornholm/roster/internal/core/model"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Export writes the given people to path as the JSON array served by the
// static backend in production. The written file reads back through
// [static.DataSource] as an identical collection.
func Export(fs afero.Fs, path string, people []model.Person) (int64, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return 0, errors.WithStack(err)
		}
	}

	file, err := fs.Create(path)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("could not close export file", slog.Any("error", errors.WithStack(err)))
		}
	}()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(people); err != nil {
		return 0, errors.WithStack(err)
	}

	info, err := fs.Stat(path)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return info.Size(), nil
}
