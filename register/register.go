package register

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// New creates a Register with the given number of cells, all set to 0.
func New(fields int) *Register {
	if fields < 0 {
		fields = 0
	}
	log.Debugf("register created with %d fields", fields)
	return &Register{
		cells: make([]cell, fields),
	}
}

// Fields returns the number of cells.
func (r *Register) Fields() int {
	return len(r.cells)
}

func (r *Register) lookup(field int) *cell {
	if field < 0 || field >= len(r.cells) {
		return nil
	}
	return &r.cells[field]
}

// Write stores value in the given field under that field's lock only.
// Writes to an unknown field are silently dropped.
func (r *Register) Write(field, value int) {
	c := r.lookup(field)
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = value
}

// Read returns the current value of the given field, or Missing if the field
// does not exist.
func (r *Register) Read(field int) int {
	c := r.lookup(field)
	if c == nil {
		return Missing
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.value
}

// Snapshot formats every field as "[v0, v1, ...]".
//
// Each field is copied under its own lock and the lock is released before the
// next field is taken, so the result is not a joint state: a concurrent writer
// may land between two copies.
func (r *Register) Snapshot() string {
	values := make([]int, len(r.cells))
	for i := range r.cells {
		values[i] = r.Read(i)
	}

	var b strings.Builder
	b.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteByte(']')
	return b.String()
}
