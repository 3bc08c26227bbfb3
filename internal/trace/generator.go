package trace

import "math/rand"

// Synthetic trace parameters from spec.md §6: a 1 MiB address space split
// into a "hot" quintile (80% of accesses) and the remaining four-fifths
// (20% of accesses), 70/30 read/write, with an optional chance of reusing
// the previous access's row with a new column (spatial locality).
const (
	addressSpace    = 1 << 20
	hotAddressCount = addressSpace / 5
)

// Generator produces a synthetic (op, address) stream conforming to
// spec.md §6. Determinism is not required by spec; callers seed rng for
// reproducible runs in tests.
type Generator struct {
	rng             *rand.Rand
	spatialLocality float64
	lastRow         uint64
	haveLast        bool
}

// NewGenerator returns a Generator seeded from seed. A fixed seed yields a
// deterministic stream, useful for tests; production use should seed from
// a time source.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng:             rand.New(rand.NewSource(seed)),
		spatialLocality: 0.3,
	}
}

// WithSpatialLocality overrides the probability (0..1) that a generated
// access reuses the previous access's row with a new column, per
// original_source's spatial-locality rule (spec.md §6 names it as an
// optional 30% rule; this expansion keeps it configurable rather than
// hard-coded).
func (g *Generator) WithSpatialLocality(p float64) *Generator {
	g.spatialLocality = p
	return g
}

// Next produces the next synthetic access.
func (g *Generator) Next() Access {
	var address uint64

	if g.haveLast && g.rng.Float64() < g.spatialLocality {
		// Reuse the previous row (bits 2-11 in the legacy decoder), vary
		// only the column (bits 0-1).
		address = (g.lastRow << 2) | uint64(g.rng.Intn(4))
	} else if g.rng.Intn(100) < 80 {
		address = uint64(g.rng.Intn(hotAddressCount))
	} else {
		address = uint64(hotAddressCount + g.rng.Intn(addressSpace-hotAddressCount))
	}

	g.lastRow = address >> 2
	g.haveLast = true

	op := OpWrite
	if g.rng.Intn(100) < 70 {
		op = OpRead
	}

	return Access{Op: op, Address: address}
}

// GenerateN produces n synthetic accesses, reporting progress every 10% of
// n (for n >= 10 so the increment is meaningful) through onProgress, which
// may be nil. Adapted from original_source's generateTrace progress
// banner, dropped by the distilled spec.
func (g *Generator) GenerateN(n uint64, onProgress func(done, total uint64)) []Access {
	accesses := make([]Access, 0, n)

	step := n / 10
	for i := uint64(0); i < n; i++ {
		accesses = append(accesses, g.Next())

		if onProgress != nil && step > 0 && i > 0 && i%step == 0 {
			onProgress(i, n)
		}
	}

	return accesses
}
