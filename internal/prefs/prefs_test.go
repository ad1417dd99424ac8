package prefs

import (
	"testing"

	"github.com/pkg/errors"
)

func TestContainerDefaults(t *testing.T) {
	container, err := NewContainer(nil)
	if err != nil {
		t.Fatalf("could not create container: %+v", errors.WithStack(err))
	}

	state := container.State()

	if e, g := DefaultTheme, state.Theme; e != g {
		t.Errorf("state.Theme: expected '%s', got '%s'", e, g)
	}

	if e, g := DefaultLocale, state.Locale; e != g {
		t.Errorf("state.Locale: expected '%s', got '%s'", e, g)
	}
}

func TestContainerToggleTheme(t *testing.T) {
	container, err := NewContainer(nil)
	if err != nil {
		t.Fatalf("could not create container: %+v", errors.WithStack(err))
	}

	if err := container.ToggleTheme(); err != nil {
		t.Fatalf("could not toggle theme: %+v", errors.WithStack(err))
	}

	if e, g := ThemeDark, container.State().Theme; e != g {
		t.Errorf("state.Theme: expected '%s', got '%s'", e, g)
	}

	if err := container.ToggleTheme(); err != nil {
		t.Fatalf("could not toggle theme: %+v", errors.WithStack(err))
	}

	if e, g := ThemeLight, container.State().Theme; e != g {
		t.Errorf("state.Theme: expected '%s', got '%s'", e, g)
	}
}

func TestDurablePreferencesSurviveRestart(t *testing.T) {
	dir := t.TempDir()

	container, err := NewContainer(NewFileStoreAt(dir))
	if err != nil {
		t.Fatalf("could not create container: %+v", errors.WithStack(err))
	}

	container.SetSearchText("ana")
	container.SetFilter("Engineering")

	if err := container.ToggleTheme(); err != nil {
		t.Fatalf("could not toggle theme: %+v", errors.WithStack(err))
	}

	if err := container.SetLocale("fr"); err != nil {
		t.Fatalf("could not set locale: %+v", errors.WithStack(err))
	}

	// Simulated restart: a fresh container over the same store
	restarted, err := NewContainer(NewFileStoreAt(dir))
	if err != nil {
		t.Fatalf("could not create container: %+v", errors.WithStack(err))
	}

	state := restarted.State()

	if e, g := ThemeDark, state.Theme; e != g {
		t.Errorf("state.Theme: expected '%s', got '%s'", e, g)
	}

	if e, g := "fr", state.Locale; e != g {
		t.Errorf("state.Locale: expected '%s', got '%s'", e, g)
	}

	// Session-scoped state never reaches the store
	if e, g := "", state.SearchText; e != g {
		t.Errorf("state.SearchText: expected '%s', got '%s'", e, g)
	}

	if e, g := "", state.ActiveFilter; e != g {
		t.Errorf("state.ActiveFilter: expected '%s', got '%s'", e, g)
	}
}

func TestFileStoreIgnoresInvalidTheme(t *testing.T) {
	dir := t.TempDir()

	store := NewFileStoreAt(dir)

	if err := store.Save(State{Theme: "sepia", Locale: "fr"}); err != nil {
		t.Fatalf("could not save state: %+v", errors.WithStack(err))
	}

	container, err := NewContainer(store)
	if err != nil {
		t.Fatalf("could not create container: %+v", errors.WithStack(err))
	}

	state := container.State()

	if e, g := DefaultTheme, state.Theme; e != g {
		t.Errorf("state.Theme: expected '%s', got '%s'", e, g)
	}

	if e, g := "fr", state.Locale; e != g {
		t.Errorf("state.Locale: expected '%s', got '%s'", e, g)
	}
}

func TestFileStoreLoadWithoutFile(t *testing.T) {
	store := NewFileStoreAt(t.TempDir())

	state, err := store.Load()
	if err != nil {
		t.Fatalf("could not load state: %+v", errors.WithStack(err))
	}

	if e, g := DefaultTheme, state.Theme; e != g {
		t.Errorf("state.Theme: expected '%s', got '%s'", e, g)
	}
}
