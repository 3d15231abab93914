package arena

import (
	"errors"
	"fmt"
)

var ErrOverflow = errors.New("arena capacity exceeded")

// Mark is a saved cursor. Releasing it frees everything allocated after it.
type Mark int

// Span addresses a contiguous run of slots handed out by Allocate.
type Span struct {
	Start int
	Len   int
}

// Arena is a fixed-capacity bump allocator. Slots are reclaimed only in bulk,
// by releasing a Mark, so allocations must be released in LIFO order.
// An Arena is not safe for concurrent use.
type Arena[T any] struct {
	items     []T
	cursor    int
	highWater int
}

func New[T any](capacity int) *Arena[T] {
	if capacity < 0 {
		capacity = 0
	}

	return &Arena[T]{
		items: make([]T, capacity),
	}
}

// Allocate reserves n slots at the cursor. On overflow nothing is reserved.
func (that *Arena[T]) Allocate(n int) (Span, error) {
	if n < 0 {
		return Span{}, fmt.Errorf("invalid allocation size %d", n)
	}

	if that.cursor+n > len(that.items) {
		return Span{}, fmt.Errorf("%w: requested %d at %d of %d", ErrOverflow, n, that.cursor, len(that.items))
	}

	span := Span{Start: that.cursor, Len: n}
	that.cursor += n

	if that.cursor > that.highWater {
		that.highWater = that.cursor
	}

	return span, nil
}

func (that *Arena[T]) Mark() Mark {
	return Mark(that.cursor)
}

// Release resets the cursor to mark. A mark above the cursor means a frame
// was released out of order, which corrupts sibling frames.
func (that *Arena[T]) Release(mark Mark) {
	if int(mark) < 0 || int(mark) > that.cursor {
		panic(fmt.Sprintf("arena: release to mark %d with cursor at %d", mark, that.cursor))
	}

	that.cursor = int(mark)
}

// Reset empties the arena and clears the high-water mark.
func (that *Arena[T]) Reset() {
	that.cursor = 0
	that.highWater = 0
}

// At returns the slot at index i. The pointer is valid until the enclosing
// mark is released.
func (that *Arena[T]) At(i int) *T {
	return &that.items[i]
}

// Slice exposes the slots of span. Capacity is clipped to the span so appends
// never spill into neighbouring allocations.
func (that *Arena[T]) Slice(span Span) []T {
	end := span.Start + span.Len
	return that.items[span.Start:end:end]
}

func (that *Arena[T]) Len() int {
	return that.cursor
}

func (that *Arena[T]) Cap() int {
	return len(that.items)
}

// HighWater is the peak cursor since creation or the last Reset.
func (that *Arena[T]) HighWater() int {
	return that.highWater
}
