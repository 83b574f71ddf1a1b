package workload

import (
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pingcap/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultCount is the number of commands generated per workload file.
const DefaultCount = 1000000

// Commands are the tokens the reference workloads draw from, in weight order.
var Commands = []string{
	"read 0",
	"write 0 1",
	"read 1",
	"write 1 1",
	"string",
}

// Weight pairs a command line with its relative weight.
type Weight struct {
	Command string  `toml:"command" json:"command"`
	Weight  float64 `toml:"weight" json:"weight"`
}

// Mix is an ordered weighted set of commands. Weights need not sum to 1.
type Mix []Weight

// Weighted pairs weights with Commands in order. Extra weights are ignored and
// missing ones count as zero.
func Weighted(weights ...float64) Mix {
	mix := make(Mix, len(Commands))
	for i, cmd := range Commands {
		mix[i].Command = cmd
		if i < len(weights) {
			mix[i].Weight = weights[i]
		}
	}
	return mix
}

// Validate reports whether the mix can be sampled from.
func (m Mix) Validate() error {
	if len(m) == 0 {
		return errors.New("workload mix is empty")
	}

	var total float64
	for _, w := range m {
		if w.Command == "" {
			return errors.New("workload mix has an empty command")
		}
		if w.Weight < 0 {
			return errors.Errorf("workload weight must be >= 0: %q=%v", w.Command, w.Weight)
		}
		total += w.Weight
	}
	if total <= 0 {
		return errors.New("workload mix has no positive weight")
	}
	return nil
}

func (m Mix) weights() []float64 {
	w := make([]float64, len(m))
	for i := range m {
		w[i] = m[i].Weight
	}
	return w
}

// Generator produces workloads drawn from a Mix.
type Generator struct {
	Mix   Mix    // Commands and their relative weights
	Count int    // Number of commands to generate
	Seed  uint64 // Random seed, 0 picks one from the clock
}

// NewGenerator creates a Generator with the variant 17 mix: 5% read 0,
// 5% write 0, 30% read 1, 5% write 1 and 55% string.
func NewGenerator() *Generator {
	return &Generator{
		Mix:   Weighted(5, 5, 30, 5, 55),
		Count: DefaultCount,
	}
}

// Generate draws Count commands independently from the mix, with replacement.
func (g *Generator) Generate() ([]Operation, error) {
	if err := g.Mix.Validate(); err != nil {
		return nil, err
	}
	if g.Count < 0 {
		return nil, errors.Errorf("workload count must be >= 0: %d", g.Count)
	}

	seed := g.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	dist := distuv.NewCategorical(g.Mix.weights(), rand.NewPCG(seed, seed>>1|1))

	choices := make([]Operation, len(g.Mix))
	for i, w := range g.Mix {
		choices[i] = Parse(w.Command)
	}

	ops := make([]Operation, 0, g.Count)
	for i := 0; i < g.Count; i++ {
		ops = append(ops, choices[int(dist.Rand())])
	}

	log.Debugf("generated %d commands from %d choices (seed %d)", len(ops), len(choices), seed)
	return ops, nil
}

// GenerateFile generates a workload and saves it to path.
func (g *Generator) GenerateFile(path string) error {
	ops, err := g.Generate()
	if err != nil {
		return errors.Annotatef(err, "generate %s", path)
	}
	return Save(path, ops)
}

// Counts returns how many times each command line appears in ops.
func Counts(ops []Operation) map[string]int {
	counts := make(map[string]int)
	for _, op := range ops {
		counts[op.String()]++
	}
	return counts
}
