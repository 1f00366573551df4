package quantizer

import (
	"errors"
	"fmt"

	"github.com/imagepalette/imagepalette/colour"
)

// DefaultMaxColours is the leaf budget used when the caller does not
// choose one.
const DefaultMaxColours = 16

// ErrInvalidConfiguration is returned when the quantizer is asked to
// run with an unusable configuration, such as a non-positive budget.
var ErrInvalidConfiguration = errors.New("invalid quantizer configuration")

// Config holds the quantizer's only tunable: the leaf budget.
type Config struct {
	// MaxColours bounds the number of live leaves during insertion
	// and therefore the number of records in the output.
	MaxColours int
}

// DefaultConfig returns the default quantizer configuration.
func DefaultConfig() Config {
	return Config{MaxColours: DefaultMaxColours}
}

// Validate validates the quantizer configuration.
func (c Config) Validate() error {
	if c.MaxColours < 1 {
		return fmt.Errorf("%w: colour count must be at least 1, got %d", ErrInvalidConfiguration, c.MaxColours)
	}
	if c.MaxColours > 256 {
		return fmt.Errorf("%w: colour count too large: %d (maximum: 256)", ErrInvalidConfiguration, c.MaxColours)
	}
	return nil
}

// Quantize feeds every pixel into an octree, enforcing the leaf
// budget after each insertion, and returns the surviving colours
// ranked by descending pixel count.
//
// A single insertion creates at most one new leaf, but one reduction
// can absorb several, so the budget loop may fire zero or many times
// per pixel. Budgets below the root's fan-out (at most 8) cannot
// always be met because the root itself is never a reduction
// candidate; in that case the loop stops once no candidate remains
// and the output may exceed the budget. Budgets of 8 or more are
// always honoured.
func Quantize(pixels []colour.RGB, maxColours int) ([]colour.Record, error) {
	cfg := Config{MaxColours: maxColours}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tree := NewTree()
	for _, px := range pixels {
		tree.Insert(px)
		for tree.Leaves() > maxColours {
			if !tree.Reduce() {
				break
			}
		}
	}

	return tree.Palette(), nil
}
