// Package wishlist tracks the products a session has saved.
package wishlist

import "github.com/google/uuid"

// Set is a set of product ids with toggle semantics
type Set struct {
	ids map[uuid.UUID]struct{}
}

// NewSet builds a set holding the given product ids
func NewSet(ids ...uuid.UUID) *Set {
	s := &Set{ids: make(map[uuid.UUID]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Toggle adds the product if absent and removes it if present. It reports
// whether the product is in the set afterwards.
func (s *Set) Toggle(productID uuid.UUID) bool {
	if _, ok := s.ids[productID]; ok {
		delete(s.ids, productID)
		return false
	}
	s.ids[productID] = struct{}{}
	return true
}

// Contains reports membership
func (s *Set) Contains(productID uuid.UUID) bool {
	_, ok := s.ids[productID]
	return ok
}

func (s *Set) Len() int {
	return len(s.ids)
}

// IDs returns the members in no particular order
func (s *Set) IDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	return out
}
