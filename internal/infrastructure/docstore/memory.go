package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/luewire/DailyFlow-HabitTracker/internal/core/ports"
)

// Memory is an in-process DocumentStore used by tests and local development.
// FailNextWrite lets tests exercise the reconcile-on-write-failure path.
type Memory struct {
	mu          sync.Mutex
	collections map[string]map[string][]byte
	nextErr     error
}

func NewMemory() *Memory {
	return &Memory{collections: make(map[string]map[string][]byte)}
}

// FailNextWrite makes the next mutating call return err instead of applying.
func (m *Memory) FailNextWrite(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextErr = err
}

func (m *Memory) takeErr() error {
	err := m.nextErr
	m.nextErr = nil
	return err
}

func (m *Memory) coll(name string) map[string][]byte {
	c, ok := m.collections[name]
	if !ok {
		c = make(map[string][]byte)
		m.collections[name] = c
	}
	return c
}

func (m *Memory) Get(ctx context.Context, collection, key string, out interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok := m.coll(collection)[key]
	if !ok {
		return ports.ErrNotFound
	}
	return json.Unmarshal(raw, out)
}

func (m *Memory) SetIfAbsent(ctx context.Context, collection, key string, doc interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.takeErr(); err != nil {
		return false, err
	}

	c := m.coll(collection)
	if _, exists := c[key]; exists {
		return false, nil
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return false, err
	}
	c[key] = raw
	return true, nil
}

func (m *Memory) Set(ctx context.Context, collection, key string, doc interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.takeErr(); err != nil {
		return err
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	m.coll(collection)[key] = raw
	return nil
}

func (m *Memory) UpdateField(ctx context.Context, collection, key, field string, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.takeErr(); err != nil {
		return err
	}
	return m.updateFieldLocked(collection, key, field, value)
}

func (m *Memory) updateFieldLocked(collection, key, field string, value interface{}) error {
	c := m.coll(collection)
	raw, ok := c[key]
	if !ok {
		return ports.ErrNotFound
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("corrupt document %s/%s: %w", collection, key, err)
	}

	fieldRaw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	doc[field] = fieldRaw

	updated, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	c[key] = updated
	return nil
}

func (m *Memory) BatchUpdateField(ctx context.Context, collection string, updates []ports.FieldUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.takeErr(); err != nil {
		return err
	}

	// Validate every target first so the batch is all-or-nothing.
	c := m.coll(collection)
	for _, u := range updates {
		if _, ok := c[u.Key]; !ok {
			return ports.ErrNotFound
		}
	}
	for _, u := range updates {
		if err := m.updateFieldLocked(collection, u.Key, u.Field, u.Value); err != nil {
			return err
		}
	}
	return nil
}

func (m *Memory) List(ctx context.Context, collection, keyPrefix string, each func(raw []byte) error) error {
	m.mu.Lock()
	c := m.coll(collection)
	keys := make([]string, 0, len(c))
	for k := range c {
		if strings.HasPrefix(k, keyPrefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	payloads := make([][]byte, 0, len(keys))
	for _, k := range keys {
		payloads = append(payloads, c[k])
	}
	m.mu.Unlock()

	for _, raw := range payloads {
		if err := each(raw); err != nil {
			return err
		}
	}
	return nil
}

func (m *Memory) Delete(ctx context.Context, collection, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.takeErr(); err != nil {
		return err
	}

	c := m.coll(collection)
	if _, ok := c[key]; !ok {
		return ports.ErrNotFound
	}
	delete(c, key)
	return nil
}
