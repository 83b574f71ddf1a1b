package bench

import (
	"github.com/andrew200611/Lab3-mutex/register"
	"github.com/andrew200611/Lab3-mutex/workload"
)

// Execute runs ops in order against r. Unknown operations and unknown fields
// are tolerated the way the register tolerates them.
//
// The returned value folds every read and snapshot result together. It has no
// meaning; callers keep it only so the reads are not optimized away.
func Execute(r *register.Register, ops []workload.Operation) int64 {
	var sink int64
	for _, op := range ops {
		switch op.Kind {
		case workload.Read:
			sink += int64(r.Read(op.Field))
		case workload.Write:
			r.Write(op.Field, op.Value)
		case workload.Snapshot:
			sink += int64(len(r.Snapshot()))
		}
	}
	return sink
}
