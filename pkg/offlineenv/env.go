package offlineenv

import (
	"os"
	"sync"
)

// Env reads and writes environment variables.
type Env interface {
	LookupEnv(key string) (string, bool)
	Setenv(key, value string) error
}

// RealEnv uses the process environment.
type RealEnv struct{}

func (r *RealEnv) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

func (r *RealEnv) Setenv(key, value string) error {
	return os.Setenv(key, value)
}

// MapEnv is an in-memory Env for tests.
type MapEnv struct {
	mu   sync.Mutex
	Vars map[string]string
}

func (m *MapEnv) LookupEnv(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Vars[key]
	return v, ok
}

func (m *MapEnv) Setenv(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Vars == nil {
		m.Vars = make(map[string]string)
	}
	m.Vars[key] = value
	return nil
}
