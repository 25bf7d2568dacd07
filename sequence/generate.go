// SPDX-License-Identifier: MIT

package sequence

import (
	"math/rand"
)

// Generation defaults.
const (
	// DefaultAlphabet is the nucleotide alphabet used by Generate.
	DefaultAlphabet = "ACGT"

	// DefaultSeed seeds Generate when neither WithSeed nor WithRand is given,
	// so unseeded calls are still reproducible.
	DefaultSeed int64 = 1
)

// GenOption configures Generate.
type GenOption func(*genConfig)

type genConfig struct {
	alphabet string
	seed     int64
	rng      *rand.Rand // shared stream; wins over seed when set
	name     string
}

// WithSeed seeds a private RNG for this call.
func WithSeed(seed int64) GenOption {
	return func(c *genConfig) { c.seed = seed }
}

// WithRand draws from r, so several calls can share one stream.
// Panics if r is nil.
func WithRand(r *rand.Rand) GenOption {
	if r == nil {
		panic("sequence: WithRand: nil *rand.Rand")
	}

	return func(c *genConfig) { c.rng = r }
}

// WithAlphabet sets the symbols to draw from (each byte is one symbol).
func WithAlphabet(symbols string) GenOption {
	return func(c *genConfig) { c.alphabet = symbols }
}

// WithName names the generated sequence.
func WithName(name string) GenOption {
	return func(c *genConfig) { c.name = name }
}

// Generate returns n symbols drawn uniformly from the alphabet.
//
// Errors:
//   - ErrBadLength if n < 0.
//   - ErrEmptyAlphabet if the alphabet is empty.
func Generate(n int, opts ...GenOption) (Sequence, error) {
	cfg := genConfig{alphabet: DefaultAlphabet, seed: DefaultSeed}
	for _, opt := range opts {
		opt(&cfg)
	}
	if n < 0 {
		return Sequence{}, ErrBadLength
	}
	if cfg.alphabet == "" {
		return Sequence{}, ErrEmptyAlphabet
	}

	rng := cfg.rng
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.seed))
	}
	data := make([]byte, n)
	for i := range data {
		data[i] = cfg.alphabet[rng.Intn(len(cfg.alphabet))]
	}

	return Sequence{name: cfg.name, data: data}, nil
}
