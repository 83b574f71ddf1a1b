package bench

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/andrew200611/Lab3-mutex/register"
	"github.com/andrew200611/Lab3-mutex/workload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteAppliesWrites(t *testing.T) {
	r := register.New(register.DefaultFields)
	ops := []workload.Operation{
		workload.Parse("write 0 1"),
		workload.Parse("read 0"),
		workload.Parse("write 1 1"),
		workload.Parse("string"),
	}

	sink := Execute(r, ops)

	assert.Equal(t, "[1, 1]", r.Snapshot())
	assert.Equal(t, int64(1+len("[1, 1]")), sink)
}

func TestExecuteToleratesUnknown(t *testing.T) {
	r := register.New(register.DefaultFields)
	ops := []workload.Operation{
		workload.Parse("write 2 5"),
		workload.Parse("read 2"),
		workload.Parse("bogus"),
		workload.Parse(""),
	}

	assert.NotPanics(t, func() {
		assert.Equal(t, int64(0), Execute(r, ops))
	})
	assert.Equal(t, "[0, 0]", r.Snapshot(), "unknown operations must not touch the fields")
}

func TestExecuteUnknownField(t *testing.T) {
	r := register.New(register.DefaultFields)
	ops := []workload.Operation{
		workload.WriteOp(2, 5),
		workload.ReadOp(2),
	}

	assert.Equal(t, int64(register.Missing), Execute(r, ops))
	assert.Equal(t, "[0, 0]", r.Snapshot())
}

func TestExecuteIgnoresNearMissLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "near_miss.txt")
	content := "write 0 7\nwrite 1 -3\nwrite  0   9\nread 0 \n read 1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ops, err := workload.Load(path)
	require.NoError(t, err)
	require.Len(t, ops, 5)
	for _, op := range ops {
		assert.Equal(t, workload.Unknown, op.Kind, "%q is not a recognized command", op.String())
	}

	r := register.New(register.DefaultFields)
	assert.Equal(t, int64(0), Execute(r, ops))
	assert.Equal(t, "[0, 0]", r.Snapshot(), "only the exact command lines may change a field")
}

func TestExecuteEmpty(t *testing.T) {
	r := register.New(register.DefaultFields)
	assert.Equal(t, int64(0), Execute(r, nil))
}
