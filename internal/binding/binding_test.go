package binding

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLetImmutableRejectsReassignment(t *testing.T) {
	y := Let("y", 1)

	err := y.Update(func(v int) int { return 15 + v })
	require.Error(t, err)
	assert.True(t, IsImmutableAssign(err))

	// Value unchanged after rejected assignment
	got, err := y.Get()
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestLetMutAcceptsReassignment(t *testing.T) {
	y := LetMut("y", 1)

	require.NoError(t, y.Update(func(v int) int { return 15 + v }))

	got, err := y.Get()
	require.NoError(t, err)
	assert.Equal(t, 16, got)
	assert.True(t, y.Mutable())
}

func TestMoveInvalidatesSource(t *testing.T) {
	v := Let("v", []int{1, 2, 3})

	v2, err := v.Move("v2")
	require.NoError(t, err)
	assert.Equal(t, Moved, v.State())
	assert.Equal(t, "v2", v2.Name())
	assert.False(t, v2.Mutable())

	_, err = v.Get()
	require.Error(t, err)
	assert.True(t, IsUseAfterMove(err))

	f, ok := AsFault(err)
	require.True(t, ok)
	assert.Equal(t, "v", f.Binding)
	assert.Equal(t, "v2", f.Details["moved_to"])

	got, err := v2.Get()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestMoveTwiceFails(t *testing.T) {
	v := Let("v", []int{1})
	_, err := v.Move("v2")
	require.NoError(t, err)

	_, err = v.Move("v3")
	assert.True(t, IsUseAfterMove(err))
}

func TestMutableMovedBindingCanBeReinitialized(t *testing.T) {
	v := LetMut("v", []int{1})
	_, err := v.Move("v2")
	require.NoError(t, err)

	require.NoError(t, v.Set([]int{4}))
	got, err := v.Get()
	require.NoError(t, err)
	assert.Equal(t, []int{4}, got)
}

func TestImmutableMovedBindingCannotBeReinitialized(t *testing.T) {
	v := Let("v", []int{1})
	_, err := v.Move("v2")
	require.NoError(t, err)

	err = v.Set([]int{4})
	assert.True(t, IsImmutableAssign(err))
}

func TestDeclareRejectsReadBeforeAssignment(t *testing.T) {
	k := Declare[int]("k")
	assert.Equal(t, Unassigned, k.State())

	_, err := k.Get()
	require.Error(t, err)
	assert.True(t, IsUnassigned(err))

	require.NoError(t, k.Set(10))
	got, err := k.Get()
	require.NoError(t, err)
	assert.Equal(t, 10, got)
}

func TestDeclareAllowsExactlyOneAssignment(t *testing.T) {
	k := Declare[int]("k")
	require.NoError(t, k.Set(10))

	err := k.Set(11)
	assert.True(t, IsImmutableAssign(err))

	m := DeclareMut[int]("m")
	require.NoError(t, m.Set(10))
	require.NoError(t, m.Set(11))
}

func TestMoveUnassignedFails(t *testing.T) {
	k := Declare[string]("k")
	_, err := k.Move("k2")
	assert.True(t, IsUnassigned(err))
}

func TestUpdateOnUnassignedDoesNotCallFn(t *testing.T) {
	k := DeclareMut[int]("k")
	called := false
	err := k.Update(func(v int) int {
		called = true
		return v
	})
	assert.True(t, IsUnassigned(err))
	assert.False(t, called)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unassigned", Unassigned.String())
	assert.Equal(t, "assigned", Assigned.String())
	assert.Equal(t, "moved", Moved.String())
	assert.Equal(t, "State(9)", State(9).String())
}

func TestFaultHelpersUnwrap(t *testing.T) {
	_, err := Declare[int]("k").Get()
	wrapped := fmt.Errorf("lesson init: %w", err)

	assert.True(t, IsUnassigned(wrapped))
	assert.Equal(t, FaultUnassigned, CodeOf(wrapped))
	assert.False(t, IsOutOfBounds(wrapped))
	assert.Equal(t, FaultCode(""), CodeOf(fmt.Errorf("plain")))
}

func TestFaultErrorFormat(t *testing.T) {
	f := &Fault{Code: FaultUseAfterMove, Binding: "v", Message: "gone"}
	assert.Equal(t, "USE_AFTER_MOVE: gone (binding=v)", f.Error())

	f = &Fault{Code: FaultOutOfBounds, Message: "bad index"}
	assert.Equal(t, "OUT_OF_BOUNDS: bad index", f.Error())
}
