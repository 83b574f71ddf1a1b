package workload

import (
	"bufio"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pingcap/errors"
)

// ErrUnavailable is the cause of every error returned when a workload file
// cannot be created, opened, read or written.
var ErrUnavailable = errors.New("workload: source unavailable")

// IsUnavailable reports whether err was caused by ErrUnavailable.
func IsUnavailable(err error) bool {
	return err != nil && errors.Cause(err) == ErrUnavailable
}

// Save writes ops to path, one command per line. Operations with no text are
// skipped: they would save as blank lines, which Load ignores.
func Save(path string, ops []Operation) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Annotatef(ErrUnavailable, "create %s: %v", path, err)
	}

	w := bufio.NewWriter(f)
	for _, op := range ops {
		line := op.String()
		if line == "" {
			continue
		}
		w.WriteString(line)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return errors.Annotatef(ErrUnavailable, "write %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		return errors.Annotatef(ErrUnavailable, "close %s: %v", path, err)
	}

	log.Debugf("saved %d commands to %s", len(ops), path)
	return nil
}

// Load reads a workload file written by Save. Blank lines are skipped and no
// other validation is done: unrecognized lines load as Unknown operations.
func Load(path string) ([]Operation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Annotatef(ErrUnavailable, "open %s: %v", path, err)
	}
	defer f.Close()

	var ops []Operation
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		ops = append(ops, Parse(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Annotatef(ErrUnavailable, "read %s: %v", path, err)
	}

	log.Debugf("loaded %d commands from %s", len(ops), path)
	return ops, nil
}
