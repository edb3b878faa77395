package lesson

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/roach88/bindcheck/internal/binding"
	"github.com/roach88/bindcheck/internal/params"
)

// Lesson names, in program order.
const (
	Bounds     = "bounds"
	Mutability = "mutability"
	Ownership  = "ownership"
	Init       = "init"
)

// Lesson is one binding rule with a rejected and an accepted variant.
type Lesson struct {
	Name  string
	Title string

	// Rule states what the guard enforces.
	Rule string

	// Fault is the code the broken variant raises.
	Fault binding.FaultCode

	// Broken and Fixed are the source lines of each variant.
	Broken string
	Fixed  string

	// Contrast describes the same misuse where nothing checks it.
	Contrast string

	run func(p params.Params, broken bool, emit func(format string, args ...any)) error
}

// Run executes one variant, passing each printed line to emit.
func (l Lesson) Run(p params.Params, broken bool, emit func(format string, args ...any)) error {
	return l.run(p, broken, emit)
}

// All returns the lessons in program order.
func All() []Lesson {
	return []Lesson{
		{
			Name:     Bounds,
			Title:    "Out-of-bounds access",
			Rule:     "An index outside [0, length) is rejected before any element is read.",
			Fault:    binding.FaultOutOfBounds,
			Broken:   "let v = [1, 2, 3];\nlet x = v[10];\nprintln!(\"x= {}\", x);",
			Fixed:    "let v = [1, 2, 3];\nlet x = v[2];\nprintln!(\"x= {}\", x);",
			Contrast: "std::vector operator[] performs no check: vec[10] reads past the buffer and the program prints whatever is there.",
			run:      runBounds,
		},
		{
			Name:     Mutability,
			Title:    "Mutable vs immutable",
			Rule:     "A binding not marked mutable accepts no reassignment.",
			Fault:    binding.FaultImmutableAssign,
			Broken:   "let y = 1;\ny = 15 + y;\nprintln!(\"y= {}\", y);",
			Fixed:    "let mut y = 1;\ny = 15 + y;\nprintln!(\"y= {}\", y);",
			Contrast: "Variables are mutable by default; only an explicit const rejects y2 += 1.",
			run:      runMutability,
		},
		{
			Name:     Ownership,
			Title:    "Ownership transfer",
			Rule:     "After a value moves to a new binding, the old name cannot be read.",
			Fault:    binding.FaultUseAfterMove,
			Broken:   "let v = vec![1, 2, 3];\nlet v2 = v;\nprintln!(\"v= {:?}\", v);\nprintln!(\"v2= {:?}\", v2);",
			Fixed:    "let v = vec![1, 2, 3];\nlet v2 = v;\nprintln!(\"v2= {:?}\", v2);",
			Contrast: "A raw pointer stays usable after delete; reading through it is use-after-free and only sometimes crashes.",
			run:      runOwnership,
		},
		{
			Name:     Init,
			Title:    "Uninitialized variables",
			Rule:     "A binding declared without a value cannot be read until it is assigned.",
			Fault:    binding.FaultUnassigned,
			Broken:   "let k: i32;\nprintln!(\"{}\", k);\nk = 10;\nprintln!(\"k= {}\", k);",
			Fixed:    "let k: i32;\nk = 10;\nprintln!(\"k= {}\", k);",
			Contrast: "int k; holds an indeterminate value and printing it shows garbage.",
			run:      runInit,
		},
	}
}

// Names returns the lesson names in program order.
func Names() []string {
	lessons := All()
	names := make([]string, len(lessons))
	for i, l := range lessons {
		names[i] = l.Name
	}
	return names
}

// Find returns the lesson with the given name.
func Find(name string) (Lesson, bool) {
	for _, l := range All() {
		if l.Name == name {
			return l, true
		}
	}
	return Lesson{}, false
}

func runBounds(p params.Params, broken bool, emit func(string, ...any)) error {
	v := binding.Let("v", slices.Clone(p.Bounds.Seq))
	seq, err := v.Get()
	if err != nil {
		return err
	}

	idx := p.Bounds.FixedIndex
	if broken {
		idx = p.Bounds.Index
	}
	x, err := binding.At(v.Name(), seq, idx)
	if err != nil {
		return err
	}
	emit("x= %d", x)
	return nil
}

func runMutability(p params.Params, broken bool, emit func(string, ...any)) error {
	y := binding.LetMut("y", p.Mutability.Initial)
	if broken {
		y = binding.Let("y", p.Mutability.Initial)
	}

	if err := y.Update(func(cur int) int { return p.Mutability.Increment + cur }); err != nil {
		return err
	}
	got, err := y.Get()
	if err != nil {
		return err
	}
	emit("y= %d", got)
	return nil
}

func runOwnership(p params.Params, broken bool, emit func(string, ...any)) error {
	v := binding.Let("v", slices.Clone(p.Ownership.Vec))
	v2, err := v.Move("v2")
	if err != nil {
		return err
	}

	if broken {
		old, err := v.Get()
		if err != nil {
			return err
		}
		emit("v= %s", FormatSeq(old))
	}

	got, err := v2.Get()
	if err != nil {
		return err
	}
	emit("v2= %s", FormatSeq(got))
	return nil
}

func runInit(p params.Params, broken bool, emit func(string, ...any)) error {
	k := binding.Declare[int]("k")

	if broken {
		early, err := k.Get()
		if err != nil {
			return err
		}
		emit("%d", early)
	}

	if err := k.Set(p.Init.Value); err != nil {
		return err
	}
	got, err := k.Get()
	if err != nil {
		return err
	}
	emit("k= %d", got)
	return nil
}

// FormatSeq renders a sequence as [a, b, c].
func FormatSeq(seq []int) string {
	parts := make([]string, len(seq))
	for i, n := range seq {
		parts[i] = strconv.Itoa(n)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ParseToggles resolves lesson names (or "all") into the set of lessons
// that run their broken variant. Names may be comma-separated.
func ParseToggles(names []string) (map[string]bool, error) {
	broken := make(map[string]bool)
	for _, raw := range names {
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if name == "all" {
				for _, n := range Names() {
					broken[n] = true
				}
				continue
			}
			if _, ok := Find(name); !ok {
				return nil, fmt.Errorf("unknown lesson %q: must be one of %v or all", name, Names())
			}
			broken[name] = true
		}
	}
	return broken, nil
}
