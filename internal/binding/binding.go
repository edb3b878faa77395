package binding

import "fmt"

// State is the lifecycle position of a binding.
type State int

const (
	// Unassigned bindings were declared without a value.
	Unassigned State = iota
	// Assigned bindings hold a readable value.
	Assigned
	// Moved bindings transferred their value to another binding.
	Moved
)

func (s State) String() string {
	switch s {
	case Unassigned:
		return "unassigned"
	case Assigned:
		return "assigned"
	case Moved:
		return "moved"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Binding is a named storage slot whose reads and writes are guarded.
//
// A Binding is immutable unless created with LetMut or DeclareMut. An
// immutable binding still accepts exactly one assignment when it was
// declared without a value.
//
// Bindings are not safe for concurrent use.
type Binding[T any] struct {
	name    string
	value   T
	state   State
	mutable bool
	movedTo string
}

// Let creates an immutable binding holding v.
func Let[T any](name string, v T) *Binding[T] {
	return &Binding[T]{name: name, value: v, state: Assigned}
}

// LetMut creates a mutable binding holding v.
func LetMut[T any](name string, v T) *Binding[T] {
	return &Binding[T]{name: name, value: v, state: Assigned, mutable: true}
}

// Declare creates an immutable binding with no value.
func Declare[T any](name string) *Binding[T] {
	return &Binding[T]{name: name}
}

// DeclareMut creates a mutable binding with no value.
func DeclareMut[T any](name string) *Binding[T] {
	return &Binding[T]{name: name, mutable: true}
}

// Name returns the binding name.
func (b *Binding[T]) Name() string { return b.name }

// Mutable reports whether the binding accepts reassignment.
func (b *Binding[T]) Mutable() bool { return b.mutable }

// State returns the current lifecycle state.
func (b *Binding[T]) State() State { return b.state }

// Get returns the bound value.
func (b *Binding[T]) Get() (T, error) {
	var zero T
	if err := b.readable(); err != nil {
		return zero, err
	}
	return b.value, nil
}

// Set assigns v.
//
// The first assignment of an unassigned binding always succeeds. Any later
// assignment requires the binding to be mutable. A mutable moved binding is
// re-initialized.
func (b *Binding[T]) Set(v T) error {
	if b.state != Unassigned && !b.mutable {
		return &Fault{
			Code:    FaultImmutableAssign,
			Binding: b.name,
			Message: fmt.Sprintf("cannot assign twice to immutable binding %q", b.name),
			Details: map[string]string{"state": b.state.String()},
		}
	}
	b.value = v
	b.state = Assigned
	b.movedTo = ""
	return nil
}

// Update replaces the value with fn applied to the current value.
func (b *Binding[T]) Update(fn func(T) T) error {
	cur, err := b.Get()
	if err != nil {
		return err
	}
	return b.Set(fn(cur))
}

// Move transfers the value to a new immutable binding named to.
// The receiver becomes Moved and no longer holds the value.
func (b *Binding[T]) Move(to string) (*Binding[T], error) {
	if err := b.readable(); err != nil {
		return nil, err
	}
	dst := Let(to, b.value)
	var zero T
	b.value = zero
	b.state = Moved
	b.movedTo = to
	return dst, nil
}

func (b *Binding[T]) readable() error {
	switch b.state {
	case Unassigned:
		return &Fault{
			Code:    FaultUnassigned,
			Binding: b.name,
			Message: fmt.Sprintf("binding %q read before assignment", b.name),
		}
	case Moved:
		return &Fault{
			Code:    FaultUseAfterMove,
			Binding: b.name,
			Message: fmt.Sprintf("binding %q used after its value moved to %q", b.name, b.movedTo),
			Details: map[string]string{"moved_to": b.movedTo},
		}
	}
	return nil
}
