// Package lesson implements the four binding-rule demonstrations and the
// program that runs them in order.
//
// Each Lesson carries a broken variant that misuses a binding and a fixed
// variant that compiles cleanly in a statically checked language. A
// Program chooses the variant per lesson from its Broken set, so toggling
// one lesson is the equivalent of uncommenting one line in the source:
//
//	prog := lesson.NewProgram(p, map[string]bool{lesson.Ownership: true}, nil)
//	report, err := prog.Run(os.Stdout)
//	// prints "x= 3", "y= 16", then err is a USE_AFTER_MOVE fault
//
// Run stops at the first fault like a runtime check would. Check runs every
// lesson and collects all faults like a compiler reporting diagnostics.
package lesson
