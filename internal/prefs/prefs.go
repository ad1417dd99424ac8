package prefs

import (
	"sync"

	"github.com/pkg/errors"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"

	DefaultTheme  = ThemeLight
	DefaultLocale = "en"
)

func ValidTheme(theme string) bool {
	return theme == ThemeLight || theme == ThemeDark
}

// State is the ephemeral presentation state of the directory. It is owned
// by the consumer, never by the server-state cache; the two never share
// data beyond filtering what gets displayed.
type State struct {
	SearchText   string `json:"-"`
	ActiveFilter string `json:"-"`
	Theme        string `json:"theme"`
	Locale       string `json:"locale"`
}

// Container holds the current State and applies transitions to it. Theme
// and locale survive restarts through the configured store; search text
// and filter do not.
type Container struct {
	mutex sync.RWMutex
	state State
	store Store
}

// Store persists the durable subset of the State.
type Store interface {
	Save(state State) error
	Load() (State, error)
}

func (c *Container) State() State {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.state
}

func (c *Container) SetSearchText(text string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.state.SearchText = text
}

func (c *Container) SetFilter(filter string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.state.ActiveFilter = filter
}

func (c *Container) ToggleTheme() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.state.Theme == ThemeDark {
		c.state.Theme = ThemeLight
	} else {
		c.state.Theme = ThemeDark
	}

	if err := c.persist(); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (c *Container) SetLocale(locale string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.state.Locale = locale

	if err := c.persist(); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (c *Container) persist() error {
	if c.store == nil {
		return nil
	}

	if err := c.store.Save(c.state); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func NewContainer(store Store) (*Container, error) {
	container := &Container{
		state: State{
			Theme:  DefaultTheme,
			Locale: DefaultLocale,
		},
		store: store,
	}

	if store != nil {
		state, err := store.Load()
		if err != nil {
			return nil, errors.WithStack(err)
		}

		if ValidTheme(state.Theme) {
			container.state.Theme = state.Theme
		}

		if state.Locale != "" {
			container.state.Locale = state.Locale
		}
	}

	return container, nil
}
