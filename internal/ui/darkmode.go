package ui

import (
	"log"
	"sync"
)

const (
	DarkModeKey      = "darkMode"
	DarkModeEnabled  = "enabled"
	DarkModeDisabled = "disabled"
	DarkModeClass    = "dark-mode"
)

// Preferences is persistent key/value storage that outlives a page session.
type Preferences interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// MemoryPreferences keeps preferences for the lifetime of the process.
type MemoryPreferences struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryPreferences() *MemoryPreferences {
	return &MemoryPreferences{values: make(map[string]string)}
}

func (m *MemoryPreferences) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryPreferences) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func darkModeStored(prefs Preferences) bool {
	v, _ := prefs.Get(DarkModeKey)
	return v == DarkModeEnabled
}

func (c *Controller) toggleDarkMode() {
	c.darkMode = !c.darkMode
	value := DarkModeDisabled
	if c.darkMode {
		value = DarkModeEnabled
	}
	if err := c.prefs.Set(DarkModeKey, value); err != nil {
		log.Printf("[WARN] Failed to store %s preference: %v", DarkModeKey, err)
	}
}
