package partition

import "sync"

// ProgressUpdate is a progress report from one of several concurrently
// running enumerations.
type ProgressUpdate struct {
	// GeneratorIndex identifies the enumeration that sent the update.
	GeneratorIndex int
	// Value is the completed fraction, from 0.0 to 1.0.
	Value float64
}

// ProgressReporter receives the completed fraction of a single enumeration.
type ProgressReporter func(progress float64)

// ProgressObserver is notified of progress of any enumeration.
type ProgressObserver interface {
	Update(generatorIndex int, progress float64)
}

// ProgressSubject fans progress out to a set of observers.
type ProgressSubject struct {
	mu        sync.RWMutex
	observers []ProgressObserver
}

// NewProgressSubject returns a subject with no observers.
func NewProgressSubject() *ProgressSubject {
	return &ProgressSubject{}
}

// Register adds an observer. Nil observers are ignored.
func (s *ProgressSubject) Register(o ProgressObserver) {
	if o == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Unregister removes an observer if present.
func (s *ProgressSubject) Unregister(o ProgressObserver) {
	if o == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.observers {
		if existing == o {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// Notify forwards an update to every registered observer.
func (s *ProgressSubject) Notify(generatorIndex int, progress float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.observers {
		o.Update(generatorIndex, progress)
	}
}

// ObserverCount returns the number of registered observers.
func (s *ProgressSubject) ObserverCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}

// AsReporter binds the subject to one generator index.
func (s *ProgressSubject) AsReporter(generatorIndex int) ProgressReporter {
	return func(progress float64) {
		s.Notify(generatorIndex, progress)
	}
}
