package viewmodel

import (
	"fmt"
	"strings"

	"github.com/nikbrunner/starter/internal/log"
)

// ErrorPolicy decides what Load does with a failed fetch.
type ErrorPolicy int

const (
	// PolicySurface notifies error subscribers and returns the error.
	PolicySurface ErrorPolicy = iota
	// PolicyIgnore logs the failure and leaves the lists untouched.
	PolicyIgnore
)

func (p ErrorPolicy) String() string {
	switch p {
	case PolicySurface:
		return "surface"
	case PolicyIgnore:
		return "ignore"
	default:
		return fmt.Sprintf("ErrorPolicy(%d)", int(p))
	}
}

// ParsePolicy maps a config value onto an ErrorPolicy. Empty means surface.
func ParsePolicy(s string) (ErrorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "surface":
		return PolicySurface, nil
	case "ignore":
		return PolicyIgnore, nil
	default:
		return PolicySurface, fmt.Errorf("unknown error policy %q", s)
	}
}

// Params holds parameters for creating a new ViewModel.
type Params[T any] struct {
	Name   func(T) string // text matched by Query
	Policy ErrorPolicy
}

// ViewModel holds the full record list and the filtered view of it.
// It is not safe for concurrent use.
type ViewModel[T any] struct {
	name   func(T) string
	policy ErrorPolicy

	original []T
	visible  []T
	query    string
	loaded   bool

	nextID      int
	observers   map[int]func([]T)
	errObserver map[int]func(error)
	order       []int
}

// New creates an empty ViewModel.
func New[T any](params Params[T]) *ViewModel[T] {
	name := params.Name
	if name == nil {
		name = func(v T) string { return fmt.Sprint(v) }
	}
	return &ViewModel[T]{
		name:        name,
		policy:      params.Policy,
		observers:   make(map[int]func([]T)),
		errObserver: make(map[int]func(error)),
	}
}

// Load is the fetch continuation.
func (vm *ViewModel[T]) Load(records []T, err error) error {
	if err != nil {
		if vm.policy == PolicyIgnore {
			log.WarningLog.Printf("fetch failed, keeping %d records: %v", len(vm.original), err)
			return nil
		}
		for _, id := range vm.order {
			if fn, ok := vm.errObserver[id]; ok {
				fn(err)
			}
		}
		return err
	}

	vm.original = append([]T(nil), records...)
	vm.visible = vm.original
	vm.query = ""
	vm.loaded = true
	vm.notify()
	return nil
}

// Query narrows the visible list to records whose name contains text,
// ignoring case. Whitespace-only text restores the full list; any other text
// is matched as typed, surrounding spaces included. Observers are notified
// on every call.
func (vm *ViewModel[T]) Query(text string) {
	vm.query = text
	if strings.TrimSpace(text) == "" {
		vm.visible = vm.original
		vm.notify()
		return
	}

	needle := strings.ToLower(text)
	matches := make([]T, 0, len(vm.original))
	for _, r := range vm.original {
		if strings.Contains(strings.ToLower(vm.name(r)), needle) {
			matches = append(matches, r)
		}
	}
	vm.visible = matches
	vm.notify()
}

// Replace swaps the record at index i of the original list, e.g. after a
// favorite toggle, and re-applies the current query.
func (vm *ViewModel[T]) Replace(i int, record T) bool {
	if i < 0 || i >= len(vm.original) {
		return false
	}
	updated := append([]T(nil), vm.original...)
	updated[i] = record
	vm.original = updated
	vm.Query(vm.query)
	return true
}

// Subscribe registers fn for visible-list changes.
func (vm *ViewModel[T]) Subscribe(fn func([]T)) (unsubscribe func()) {
	id := vm.register()
	vm.observers[id] = fn
	return func() { vm.unregister(id) }
}

// SubscribeErrors registers fn for fetch failures under PolicySurface.
func (vm *ViewModel[T]) SubscribeErrors(fn func(error)) (unsubscribe func()) {
	id := vm.register()
	vm.errObserver[id] = fn
	return func() { vm.unregister(id) }
}

func (vm *ViewModel[T]) Visible() []T { return vm.visible }
func (vm *ViewModel[T]) Original() []T { return vm.original }
func (vm *ViewModel[T]) QueryText() string { return vm.query }
func (vm *ViewModel[T]) Loaded() bool { return vm.loaded }
func (vm *ViewModel[T]) Policy() ErrorPolicy { return vm.policy }

func (vm *ViewModel[T]) notify() {
	for _, id := range vm.order {
		if fn, ok := vm.observers[id]; ok {
			fn(vm.visible)
		}
	}
}

func (vm *ViewModel[T]) register() int {
	vm.nextID++
	vm.order = append(vm.order, vm.nextID)
	return vm.nextID
}

func (vm *ViewModel[T]) unregister(id int) {
	delete(vm.observers, id)
	delete(vm.errObserver, id)
	for i, v := range vm.order {
		if v == id {
			vm.order = append(vm.order[:i:i], vm.order[i+1:]...)
			return
		}
	}
}
