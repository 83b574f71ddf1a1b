package register

import (
	"sync"
)

// DefaultFields is the number of cells the benchmark structure carries.
const DefaultFields = 2

// Missing is returned by Read for a field index the register does not have.
const Missing = -1

// cell is a single value owned by its own mutex.
type cell struct {
	mu    sync.Mutex
	value int
}

// noCopy lets go vet flag a Register passed by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Register is a fixed set of independently locked integer cells. Operations on
// one cell never wait on another cell's lock. It must only be shared by pointer.
type Register struct {
	noCopy noCopy
	cells []cell
}
