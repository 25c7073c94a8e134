package partition

import (
	"fmt"
	"iter"
	"sort"
	"sync"
)

// Generator produces every partition of {1,…,n} exactly once. Different
// generators may visit the partitions in different orders.
type Generator interface {
	// Name returns the identifier used in the registry and in reports.
	Name() string
	// Partitions returns an iterator over the partitions of {1,…,n}. The
	// yielded values are views into a buffer owned by the iterator and are
	// only valid during the yield call.
	Partitions(n int) iter.Seq[Partition]
}

// SuccessorGenerator exposes the in-place successor engine as a Generator.
type SuccessorGenerator struct{}

// Name returns the registry name of the generator.
func (g *SuccessorGenerator) Name() string { return "successor" }

// Partitions implements Generator.
func (g *SuccessorGenerator) Partitions(n int) iter.Seq[Partition] { return All(n) }

// GeneratorFactory creates and caches generators by name.
type GeneratorFactory interface {
	// Register adds a creator under name, replacing any previous one and
	// dropping its cached instance.
	Register(name string, creator func() Generator)
	// Has reports whether a generator is registered under name.
	Has(name string) bool
	// Create builds a new generator instance.
	Create(name string) (Generator, error)
	// Get returns the cached instance for name, creating it on first use.
	Get(name string) (Generator, error)
	// MustGet is like Get but panics on unknown names.
	MustGet(name string) Generator
	// List returns the registered names in sorted order.
	List() []string
	// GetAll returns one instance of every registered generator.
	GetAll() map[string]Generator
}

// DefaultFactory is the thread-safe GeneratorFactory used by the
// application.
type DefaultFactory struct {
	mu       sync.RWMutex
	creators map[string]func() Generator
	cache    map[string]Generator
}

// NewDefaultFactory returns a factory preloaded with the built-in
// generators.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{
		creators: make(map[string]func() Generator),
		cache:    make(map[string]Generator),
	}
	f.Register("successor", func() Generator { return &SuccessorGenerator{} })
	f.Register("rgs", func() Generator { return &RGSGenerator{} })
	return f
}

// NewTestFactory returns a factory that serves the given instances as is.
func NewTestFactory(generators map[string]Generator) *DefaultFactory {
	f := &DefaultFactory{
		creators: make(map[string]func() Generator),
		cache:    make(map[string]Generator),
	}
	for name, gen := range generators {
		gen := gen
		f.creators[name] = func() Generator { return gen }
		f.cache[name] = gen
	}
	return f
}

// Register implements GeneratorFactory.
func (f *DefaultFactory) Register(name string, creator func() Generator) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creators[name] = creator
	delete(f.cache, name)
}

// Has implements GeneratorFactory.
func (f *DefaultFactory) Has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.creators[name]
	return ok
}

// Create implements GeneratorFactory.
func (f *DefaultFactory) Create(name string) (Generator, error) {
	f.mu.RLock()
	creator, ok := f.creators[name]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown generator: %q", name)
	}
	return creator(), nil
}

// Get implements GeneratorFactory.
func (f *DefaultFactory) Get(name string) (Generator, error) {
	f.mu.RLock()
	gen, ok := f.cache[name]
	f.mu.RUnlock()
	if ok {
		return gen, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen, ok := f.cache[name]; ok {
		return gen, nil
	}
	creator, ok := f.creators[name]
	if !ok {
		return nil, fmt.Errorf("unknown generator: %q", name)
	}
	gen = creator()
	f.cache[name] = gen
	return gen, nil
}

// MustGet implements GeneratorFactory.
func (f *DefaultFactory) MustGet(name string) Generator {
	gen, err := f.Get(name)
	if err != nil {
		panic(err)
	}
	return gen
}

// List implements GeneratorFactory.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll implements GeneratorFactory.
func (f *DefaultFactory) GetAll() map[string]Generator {
	all := make(map[string]Generator)
	for _, name := range f.List() {
		if gen, err := f.Get(name); err == nil {
			all[name] = gen
		}
	}
	return all
}

var (
	globalFactory     *DefaultFactory
	globalFactoryOnce sync.Once
)

// GlobalFactory returns the process-wide factory.
func GlobalFactory() *DefaultFactory {
	globalFactoryOnce.Do(func() {
		globalFactory = NewDefaultFactory()
	})
	return globalFactory
}

// RegisterGenerator adds a generator to the global factory.
func RegisterGenerator(name string, creator func() Generator) {
	GlobalFactory().Register(name, creator)
}
