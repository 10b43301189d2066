package model

import (
	"fmt"
	"strconv"
)

// NodeIndex is a dense, zero-based node identifier.
// It is transient: indices are assigned per run and are only meaningful
// within the run that assigned them.
type NodeIndex = int32

// NoRoot marks the absence of a forced root node.
const NoRoot NodeIndex = -1

// KeyKind discriminates the source type of a Key.
type KeyKind uint8

const (
	// KeyKindInvalid is the zero Key. It represents an absent value (SQL NULL).
	KeyKindInvalid KeyKind = iota
	// KeyKindInt64 is a signed integer key.
	KeyKindInt64
	// KeyKindUint64 is an unsigned integer key.
	KeyKindUint64
	// KeyKindString is a text key (includes rendered UUIDs and the like).
	KeyKindString
	// KeyKindBytes is a raw byte-string key.
	KeyKindBytes
)

// Key is the user-facing stable identifier for a node or edge.
//
// A Key is an immutable value type. Equality is defined by canonical content:
// two keys with the same Canonical() form refer to the same entity even when
// their source types differ.
type Key struct {
	kind KeyKind
	num  uint64
	str  string
}

// Int64Key creates a Key from a signed integer.
func Int64Key(v int64) Key {
	return Key{kind: KeyKindInt64, num: uint64(v)}
}

// Uint64Key creates a Key from an unsigned integer.
func Uint64Key(v uint64) Key {
	return Key{kind: KeyKindUint64, num: v}
}

// StringKey creates a Key from text.
func StringKey(s string) Key {
	return Key{kind: KeyKindString, str: s}
}

// BytesKey creates a Key from a raw byte string. The bytes are copied.
func BytesKey(b []byte) Key {
	return Key{kind: KeyKindBytes, str: string(b)}
}

// Kind returns the source type discriminator of the key.
func (k Key) Kind() KeyKind { return k.kind }

// Valid reports whether the key holds a value. The zero Key is invalid and
// stands for an absent (NULL) identifier.
func (k Key) Valid() bool { return k.kind != KeyKindInvalid }

// Canonical returns the canonical content encoding of the key.
//
// Non-byte-string kinds render to text so that heterogeneous source types
// compare correctly by content. The canonical form is what the registry
// hashes and compares; the original Key is kept for round-tripping.
func (k Key) Canonical() string {
	switch k.kind {
	case KeyKindInt64:
		return strconv.FormatInt(int64(k.num), 10)
	case KeyKindUint64:
		return strconv.FormatUint(k.num, 10)
	case KeyKindString, KeyKindBytes:
		return k.str
	default:
		return ""
	}
}

// Int64 returns the signed integer value, if the key holds one.
func (k Key) Int64() (int64, bool) {
	if k.kind != KeyKindInt64 {
		return 0, false
	}
	return int64(k.num), true
}

// Uint64 returns the unsigned integer value, if the key holds one.
func (k Key) Uint64() (uint64, bool) {
	if k.kind != KeyKindUint64 {
		return 0, false
	}
	return k.num, true
}

// Text returns the string value, if the key holds text or bytes.
func (k Key) Text() (string, bool) {
	if k.kind != KeyKindString && k.kind != KeyKindBytes {
		return "", false
	}
	return k.str, true
}

// String returns a human-readable representation.
func (k Key) String() string {
	if !k.Valid() {
		return "Key(<null>)"
	}
	return fmt.Sprintf("Key(%s)", k.Canonical())
}

// NullFloat is a float64 that may be absent. It mirrors sql.NullFloat64
// without pulling database/sql into every package.
type NullFloat struct {
	Float64 float64
	Valid   bool
}

// Float wraps a present float64.
func Float(v float64) NullFloat {
	return NullFloat{Float64: v, Valid: true}
}

// EdgeRecord is one assembled edge. Its position in the assembled edge list
// is the internal edge index, valid only within the run that built it.
type EdgeRecord struct {
	// Key is the external edge identifier from the input row.
	Key Key
	// Source and Target are dense endpoint indices assigned by the registry.
	Source NodeIndex
	Target NodeIndex
	// Cost is the non-negative edge cost as supplied in the input row.
	Cost float64
}

// RootSpec is an optional forced root. The zero value means auto-select
// (no forced root).
type RootSpec struct {
	idx    NodeIndex
	forced bool
}

// AutoRoot returns the unrooted specification.
func AutoRoot() RootSpec { return RootSpec{} }

// RootIndex returns a specification forcing the given dense index as root.
func RootIndex(i NodeIndex) RootSpec { return RootSpec{idx: i, forced: true} }

// Forced reports whether a root is forced, and which one.
func (r RootSpec) Forced() (NodeIndex, bool) { return r.idx, r.forced }

// Index returns the forced root index, or NoRoot when auto-selecting.
func (r RootSpec) Index() NodeIndex {
	if !r.forced {
		return NoRoot
	}
	return r.idx
}

// String returns a human-readable representation.
func (r RootSpec) String() string {
	if !r.forced {
		return "Root(auto)"
	}
	return fmt.Sprintf("Root(%d)", r.idx)
}

// ResultRow is the externally visible output shape: one row per selected
// edge, in the solver's own selection order.
type ResultRow struct {
	// Seq is the 1-based position of the row in the result stream.
	Seq int
	// Edge, Source and Target are the original external identifiers.
	Edge   Key
	Source Key
	Target Key
	// Cost is the edge cost exactly as supplied in the input row.
	Cost float64
}

// String returns a human-readable representation.
func (r ResultRow) String() string {
	return fmt.Sprintf("ResultRow(%d: %s %s-%s cost=%g)",
		r.Seq, r.Edge.Canonical(), r.Source.Canonical(), r.Target.Canonical(), r.Cost)
}
