// Package dataset produces the small in-memory tables the report is
// rendered from: synthetic normal samples and categorical samples.
// All generation is seeded and deterministic.
package dataset

import (
	"fmt"
	"math/rand"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
)

// Synthetic is a fixed-size table of three uncorrelated standard
// normal columns "x", "y", and "z". It is immutable once generated.
type Synthetic struct {
	tab *table.Table
}

// NewSynthetic generates count independent (x, y, z) triples drawn
// from a standard normal distribution. Generation is deterministic
// for a fixed (count, seed).
func NewSynthetic(count int, seed int64) (*Synthetic, error) {
	if count <= 0 {
		return nil, fmt.Errorf("sample count must be positive; got %d", count)
	}
	rng := rand.New(rand.NewSource(seed))
	xs := make([]float64, count)
	ys := make([]float64, count)
	zs := make([]float64, count)
	for i := 0; i < count; i++ {
		xs[i] = rng.NormFloat64()
		ys[i] = rng.NormFloat64()
		zs[i] = rng.NormFloat64()
	}
	tab := new(table.Builder).
		Add("x", xs).
		Add("y", ys).
		Add("z", zs).
		Done()
	return &Synthetic{tab}, nil
}

// Table returns the sample as a gg table. Callers must not modify it.
func (s *Synthetic) Table() *table.Table { return s.tab }

// Len returns the number of rows.
func (s *Synthetic) Len() int { return s.tab.Len() }

// Columns returns the numeric column names, in order.
func (s *Synthetic) Columns() []string { return s.tab.Columns() }

// Summary returns the sample mean and standard deviation of col.
func (s *Synthetic) Summary(col string) (mean, stddev float64) {
	sample := stats.Sample{Xs: s.tab.MustColumn(col).([]float64)}
	return sample.Mean(), sample.StdDev()
}

// alphabet is the fixed label universe for categorical samples.
const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Categorical pairs a label drawn from a small fixed alphabet with an
// independent standard normal value per row. Columns are "label" and
// "value". It is immutable once generated.
type Categorical struct {
	tab    *table.Table
	levels []string
}

// NewCategorical generates count rows, each labeled with one of the
// first alphabetSize letters chosen uniformly at random, paired with
// an independently drawn standard normal value. Generation is
// deterministic for a fixed (count, seed, alphabetSize).
func NewCategorical(count int, seed int64, alphabetSize int) (*Categorical, error) {
	if count <= 0 {
		return nil, fmt.Errorf("sample count must be positive; got %d", count)
	}
	if alphabetSize <= 0 || alphabetSize > len(alphabet) {
		return nil, fmt.Errorf("alphabet size must be in [1, %d]; got %d", len(alphabet), alphabetSize)
	}
	rng := rand.New(rand.NewSource(seed))
	labels := make([]string, count)
	values := make([]float64, count)
	for i := 0; i < count; i++ {
		labels[i] = string(alphabet[rng.Intn(alphabetSize)])
		values[i] = rng.NormFloat64()
	}
	tab := new(table.Builder).
		Add("label", labels).
		Add("value", values).
		Done()
	levels := make([]string, alphabetSize)
	for i := range levels {
		levels[i] = string(alphabet[i])
	}
	return &Categorical{tab, levels}, nil
}

// Table returns the sample as a gg table. Callers must not modify it.
func (c *Categorical) Table() *table.Table { return c.tab }

// Len returns the number of rows.
func (c *Categorical) Len() int { return c.tab.Len() }

// Levels returns the full label alphabet the sample was drawn from,
// in order. Every label in the table is one of these, but a small
// sample need not cover all of them.
func (c *Categorical) Levels() []string {
	out := make([]string, len(c.levels))
	copy(out, c.levels)
	return out
}
