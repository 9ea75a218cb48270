package engine

import (
	"sync"

	"github.com/stencilworks/stencil/internal/errors"
)

// Registry maps engine names to implementations. Built-ins are fixed at
// construction; custom engines are added at runtime and take precedence
// over a built-in of the same name.
type Registry struct {
	builtin      map[string]Engine
	builtinNames []string
	custom       map[string]Engine
	customNames  []string
	mutex        sync.RWMutex
}

// NewRegistry creates a registry pre-populated with the built-in engines.
func NewRegistry() *Registry {
	r := &Registry{
		builtin: make(map[string]Engine),
		custom:  make(map[string]Engine),
	}
	r.addBuiltin(EnginePlush, &PlushEngine{})
	r.addBuiltin(EngineHandlebars, &HandlebarsEngine{})
	r.addBuiltin(EngineAmber, &AmberEngine{})
	return r
}

func (r *Registry) addBuiltin(name string, e Engine) {
	r.builtin[name] = e
	r.builtinNames = append(r.builtinNames, name)
}

// Register adds a custom engine under name, overwriting a previous custom
// registration. Registering over a built-in name is allowed; the custom
// engine shadows it on lookup.
func (r *Registry) Register(name string, e Engine) error {
	if name == "" {
		return errors.NewConfigError(errors.ErrCodeEngineInvalid, "engine name cannot be empty")
	}
	if e == nil {
		return errors.NewConfigError(errors.ErrCodeEngineInvalid, "engine implementation cannot be nil")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.custom[name]; !exists {
		r.customNames = append(r.customNames, name)
	}
	r.custom[name] = e
	return nil
}

// Get returns the engine registered under name, custom registrations first.
func (r *Registry) Get(name string) (Engine, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if e, ok := r.custom[name]; ok {
		return e, true
	}
	if e, ok := r.builtin[name]; ok {
		return e, true
	}
	return nil, false
}

// Names returns all registered engine names, built-ins first, each group in
// registration order. A custom name equal to a built-in name appears twice.
func (r *Registry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.builtinNames)+len(r.customNames))
	names = append(names, r.builtinNames...)
	names = append(names, r.customNames...)
	return names
}
