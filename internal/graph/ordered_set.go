package graph

import "github.com/collegeconnect/socialgraph/pkg/models"

// orderedSet keeps insertion order with O(1) membership.
type orderedSet struct {
	index map[models.UserID]int
	items []models.UserID
}

func newOrderedSet() *orderedSet {
	return &orderedSet{index: make(map[models.UserID]int)}
}

func (s *orderedSet) has(id models.UserID) bool {
	_, ok := s.index[id]
	return ok
}

// add appends id and reports whether it was absent.
func (s *orderedSet) add(id models.UserID) bool {
	if s.has(id) {
		return false
	}
	s.index[id] = len(s.items)
	s.items = append(s.items, id)
	return true
}

// remove deletes id, keeping the relative order of the rest.
func (s *orderedSet) remove(id models.UserID) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	copy(s.items[i:], s.items[i+1:])
	s.items = s.items[:len(s.items)-1]
	delete(s.index, id)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j]] = j
	}
	return true
}

func (s *orderedSet) len() int {
	return len(s.items)
}

func (s *orderedSet) values() []models.UserID {
	out := make([]models.UserID, len(s.items))
	copy(out, s.items)
	return out
}
