// Package registry selects a header decoder from an image's leading signature bytes.
package registry

import (
	"bytes"
	"cmp"
	"slices"

	"github.com/simonhull/imagemeta/internal/binary"
	"github.com/simonhull/imagemeta/internal/types"
)

// SignatureLen is the number of leading bytes inspected for dispatch.
const SignatureLen = 2

// DecodeFunc decodes one image. Implementations hold no state between calls
// and must seek to every offset they need.
type DecodeFunc func(cur *binary.Cursor, h types.ImageHandle, insp types.Inspector) (*types.Metadata, error)

// Entry binds a format to its signature predicate and decoder.
type Entry struct {
	// Match reports whether sig (SignatureLen bytes) belongs to this format.
	Match  func(sig []byte) bool
	Decode DecodeFunc
	// Priority orders entries whose predicates could overlap. Higher wins.
	Priority int
	Format   types.Format
}

// Registry is an immutable, priority-ordered set of entries with a fallback.
// It is safe for concurrent use without locking.
type Registry struct {
	fallback Entry
	entries  []Entry
}

// New builds a registry. fallback is chosen whenever no entry matches and
// needs no Match predicate. Entries with equal priority keep argument order.
func New(fallback Entry, entries ...Entry) *Registry {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return cmp.Compare(b.Priority, a.Priority)
	})
	return &Registry{fallback: fallback, entries: sorted}
}

// Select reads the signature from the start of the stream and returns the
// matching entry. The cursor is left just past the signature.
//
// Select never fails: streams too short to hold a signature, and signatures
// nobody claims, go to the fallback.
func (r *Registry) Select(cur *binary.Cursor) Entry {
	if err := cur.Seek(0); err != nil {
		return r.fallback
	}
	sig, err := cur.ReadBytes(SignatureLen, "format signature")
	if err != nil {
		return r.fallback
	}
	return r.SelectSignature(sig)
}

// SelectSignature returns the first entry whose predicate accepts sig.
func (r *Registry) SelectSignature(sig []byte) Entry {
	for _, e := range r.entries {
		if e.Match != nil && e.Match(sig) {
			return e
		}
	}
	return r.fallback
}

// Formats returns the registered formats in match order, fallback last.
func (r *Registry) Formats() []types.Format {
	formats := make([]types.Format, 0, len(r.entries)+1)
	for _, e := range r.entries {
		formats = append(formats, e.Format)
	}
	return append(formats, r.fallback.Format)
}

// Prefix returns a predicate matching signatures that start with magic.
func Prefix(magic []byte) func(sig []byte) bool {
	return func(sig []byte) bool {
		return bytes.HasPrefix(sig, magic)
	}
}
