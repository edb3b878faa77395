package binding

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// At returns seq[i] for a sequence bound to name.
// Indices outside [0, len(seq)) yield an OUT_OF_BOUNDS fault instead of a panic.
func At[T any](name string, seq []T, i int) (T, error) {
	if i < 0 || i >= len(seq) {
		var zero T
		return zero, outOfBounds(name, i, len(seq))
	}
	return seq[i], nil
}

// Checked runs fn and converts a Go runtime index panic into an
// OUT_OF_BOUNDS fault. Any other panic is re-raised.
func Checked(name string, fn func() error) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		re, ok := r.(runtime.Error)
		if !ok || !strings.Contains(re.Error(), "out of range") {
			panic(r)
		}
		f := &Fault{
			Code:    FaultOutOfBounds,
			Binding: name,
			Message: re.Error(),
		}
		if idx, length, ok := parseIndexPanic(re.Error()); ok {
			f = outOfBounds(name, idx, length)
		}
		err = f
	}()
	return fn()
}

func outOfBounds(name string, i, length int) *Fault {
	return &Fault{
		Code:    FaultOutOfBounds,
		Binding: name,
		Message: fmt.Sprintf("index %d out of range [0, %d)", i, length),
		Details: map[string]string{
			"index":  strconv.Itoa(i),
			"length": strconv.Itoa(length),
		},
	}
}

// parseIndexPanic extracts index and length from
// "runtime error: index out of range [10] with length 3".
func parseIndexPanic(msg string) (int, int, bool) {
	open := strings.Index(msg, "[")
	closing := strings.Index(msg, "] with length ")
	if open < 0 || closing < open {
		return 0, 0, false
	}
	idx, err := strconv.Atoi(msg[open+1 : closing])
	if err != nil {
		return 0, 0, false
	}
	length, err := strconv.Atoi(strings.TrimSpace(msg[closing+len("] with length "):]))
	if err != nil {
		return 0, 0, false
	}
	return idx, length, true
}
