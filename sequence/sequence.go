// SPDX-License-Identifier: MIT

// Package sequence supplies the immutable input sequences of an alignment.
//
// A Sequence is a byte buffer plus an optional name. It is copied on the way
// in and on the way out, so holders can share it between goroutines freely.
// Sources are plain files or a single FASTA record (Read/ReadFile), string
// literals (FromString) and seeded random generation (Generate).
package sequence

import (
	"bytes"
)

// Sequence is an immutable run of symbols.
type Sequence struct {
	name string
	data []byte
}

// New copies data into a new Sequence.
func New(name string, data []byte) Sequence {
	return Sequence{name: name, data: bytes.Clone(data)}
}

// FromString builds an unnamed Sequence from s.
func FromString(s string) Sequence {
	return Sequence{data: []byte(s)}
}

// Name returns the record name ("" when the source had none).
func (s Sequence) Name() string { return s.name }

// Len returns the number of symbols.
func (s Sequence) Len() int { return len(s.data) }

// At returns symbol i (0-based). It panics when i is out of range, like a slice index.
func (s Sequence) At(i int) byte { return s.data[i] }

// Bytes returns a copy of the symbols.
func (s Sequence) Bytes() []byte { return bytes.Clone(s.data) }

// IndexByte returns the first position of c, or -1.
func (s Sequence) IndexByte(c byte) int { return bytes.IndexByte(s.data, c) }

// String returns the symbols as a string.
func (s Sequence) String() string { return string(s.data) }

// Equal reports whether s and o hold the same symbols. Names are ignored.
func (s Sequence) Equal(o Sequence) bool { return bytes.Equal(s.data, o.data) }
