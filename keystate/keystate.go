package keystate

import (
	"slices"
	"sync"

	"github.com/dasdy/nuhxboard/model"
)

// PressState is the set of key codes currently held down.
// Input delivery writes to it while renderers read it, so every access goes through stateLock.
type PressState struct {
	pressed   map[uint32]struct{}
	stateLock sync.RWMutex
}

func New() *PressState {
	return &PressState{
		pressed:   make(map[uint32]struct{}),
		stateLock: sync.RWMutex{},
	}
}

// KeyDown marks code as pressed. Returns false when it already was.
func (s *PressState) KeyDown(code uint32) bool {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	if _, ok := s.pressed[code]; ok {
		return false
	}

	s.pressed[code] = struct{}{}

	return true
}

// KeyUp marks code as released. Returns false when it was not pressed.
func (s *PressState) KeyUp(code uint32) bool {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	if _, ok := s.pressed[code]; !ok {
		return false
	}

	delete(s.pressed, code)

	return true
}

// Apply reports whether the event changed the set.
func (s *PressState) Apply(event model.KeyEvent) bool {
	if event.Pressed {
		return s.KeyDown(event.Code)
	}

	return s.KeyUp(event.Code)
}

func (s *PressState) IsPressed(code uint32) bool {
	s.stateLock.RLock()
	defer s.stateLock.RUnlock()

	_, ok := s.pressed[code]

	return ok
}

// Pressed returns a sorted snapshot of held codes.
func (s *PressState) Pressed() []uint32 {
	s.stateLock.RLock()
	defer s.stateLock.RUnlock()

	result := make([]uint32, 0, len(s.pressed))
	for code := range s.pressed {
		result = append(result, code)
	}

	slices.Sort(result)

	return result
}

// Set is a point-in-time copy of the held codes.
type Set map[uint32]struct{}

func (s Set) IsPressed(code uint32) bool {
	_, ok := s[code]

	return ok
}

// Snapshot copies the held codes under a single lock so that readers see one consistent state.
func (s *PressState) Snapshot() Set {
	s.stateLock.RLock()
	defer s.stateLock.RUnlock()

	result := make(Set, len(s.pressed))
	for code := range s.pressed {
		result[code] = struct{}{}
	}

	return result
}

func (s *PressState) Reset() {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	clear(s.pressed)
}
