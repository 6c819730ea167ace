package store

import "errors"

// Base carries the identity shared by stored records.
type Base struct {
	ID string
}

// Key returns the lookup key.
func (b *Base) Key() string { return b.ID }

// Item is one stored record.
type Item struct {
	Base
	Name string
}

// Store keeps items in memory.
type Store struct {
	items map[string]*Item
}

func New() *Store {
	return &Store{items: make(map[string]*Item)}
}

// Put adds an item, rejecting duplicates.
func (s *Store) Put(name string) error {
	if _, ok := s.items[name]; ok {
		return errors.New("duplicate " + name)
	}
	s.items[name] = &Item{Base: Base{ID: name}, Name: name}
	return nil
}
