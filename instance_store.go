package di

// InstanceStore is a single-slot cell holding at most one produced value.
// A stored nil still counts as populated.
type InstanceStore struct {
	instance  any
	populated bool
}

// Store sets the slot, replacing any previous value.
func (s *InstanceStore) Store(instance any) {
	s.instance = instance
	s.populated = true
}

// Has reports whether a value has been stored.
func (s *InstanceStore) Has() bool {
	return s.populated
}

// Get returns the stored value. Callers check Has first; an empty store
// returns nil.
func (s *InstanceStore) Get() any {
	return s.instance
}
