// Package settings persists user preferences between runs.
package settings

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

type Settings struct {
	Fullscreen bool `yaml:"fullscreen"`
	ShowDebug  bool `yaml:"show_debug"`
}

func Default() Settings {
	return Settings{}
}

// Manager loads and saves Settings through gdata. A nil gdata manager keeps
// settings in memory only.
type Manager struct {
	store    *gdata.Manager
	settings Settings
	logger   *zap.Logger
}

// Open creates the gdata store for appName. Failing to open storage is not
// fatal: the returned manager works in memory and the error is logged.
func Open(appName string, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	store, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		logger.Warn("settings storage unavailable, using defaults", zap.Error(err))
		store = nil
	}
	return NewManager(store, logger)
}

func NewManager(store *gdata.Manager, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Manager{store: store, settings: Default(), logger: logger}
	if err := m.Load(); err != nil {
		logger.Warn("failed to load settings, using defaults", zap.Error(err))
	}
	return m
}

func (m *Manager) Load() error {
	if m.store == nil || !m.store.ObjectPropExists(settingsObject, settingsProperty) {
		m.settings = Default()
		return nil
	}

	data, err := m.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		m.settings = Default()
		return fmt.Errorf("settings: load: %w", err)
	}

	loaded := Default()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		m.settings = Default()
		return fmt.Errorf("settings: unmarshal: %w", err)
	}
	m.settings = loaded
	return nil
}

func (m *Manager) Save() error {
	if m.store == nil {
		return nil
	}
	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("settings: marshal: %w", err)
	}
	if err := m.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("settings: save: %w", err)
	}
	return nil
}

func (m *Manager) Get() Settings {
	return m.settings
}

// Persistent reports whether settings survive a restart.
func (m *Manager) Persistent() bool {
	return m.store != nil
}

func (m *Manager) ToggleFullscreen() bool {
	m.settings.Fullscreen = !m.settings.Fullscreen
	m.saveOrLog()
	return m.settings.Fullscreen
}

func (m *Manager) ToggleDebug() bool {
	m.settings.ShowDebug = !m.settings.ShowDebug
	m.saveOrLog()
	return m.settings.ShowDebug
}

func (m *Manager) saveOrLog() {
	if err := m.Save(); err != nil {
		m.logger.Warn("failed to save settings", zap.Error(err))
	}
}
