package queue

import "sort"

// Selection is a set of record keys chosen by a user. It is independent of
// how records are grouped for display.
type Selection struct {
	keys map[string]struct{}
}

func NewSelection(keys ...string) *Selection {
	s := &Selection{keys: make(map[string]struct{}, len(keys))}
	s.Add(keys...)
	return s
}

func (s *Selection) Add(keys ...string) {
	for _, k := range keys {
		if k == "" {
			continue
		}
		s.keys[k] = struct{}{}
	}
}

func (s *Selection) Remove(keys ...string) {
	for _, k := range keys {
		delete(s.keys, k)
	}
}

// Toggle flips membership of key and reports whether it is now selected
func (s *Selection) Toggle(key string) bool {
	if s.Has(key) {
		s.Remove(key)
		return false
	}
	s.Add(key)
	return s.Has(key)
}

func (s *Selection) Has(key string) bool {
	_, ok := s.keys[key]
	return ok
}

func (s *Selection) Len() int {
	return len(s.keys)
}

func (s *Selection) Clear() {
	s.keys = make(map[string]struct{})
}

// Keys returns the selected keys sorted
func (s *Selection) Keys() []string {
	out := make([]string, 0, len(s.keys))
	for k := range s.keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Prune drops keys that no longer match a record and returns how many were dropped
func (s *Selection) Prune(records []Record) int {
	live := make(map[string]struct{}, len(records))
	for _, r := range records {
		if k, ok := r.Key(); ok {
			live[k] = struct{}{}
		}
	}

	dropped := 0
	for k := range s.keys {
		if _, ok := live[k]; !ok {
			delete(s.keys, k)
			dropped++
		}
	}
	return dropped
}

// Resolve returns the selected records in list order
func (s *Selection) Resolve(records []Record) []Record {
	out := make([]Record, 0, len(s.keys))
	for _, r := range records {
		if k, ok := r.Key(); ok && s.Has(k) {
			out = append(out, r)
		}
	}
	return out
}
