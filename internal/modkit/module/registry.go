package module

import "sync"

// process wide ports by module name, filled by api.Mount
var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register stores a module's ports under name, replacing any previous set
func Register(name string, ports any) {
	mu.Lock()
	reg[name] = ports
	mu.Unlock()
}

// Lookup finds an interface T in the ports registered under name
// resolved per call so modules mounted later are still found
func Lookup[T any](name string) (T, bool) {
	mu.RLock()
	p, ok := reg[name]
	mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	return extract[T](p)
}

// Reset clears the registry for tests
func Reset() {
	mu.Lock()
	reg = map[string]any{}
	mu.Unlock()
}
