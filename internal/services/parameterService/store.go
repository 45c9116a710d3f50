package parameterservice

import (
	"fmt"
	"sort"
)

// Kind is the namespace a parameter lives in.
type Kind string

const (
	KindOffset        Kind = "offsets"
	KindSize          Kind = "sizes"
	KindBlockSize     Kind = "block_sizes"
	KindCountPerBlock Kind = "count_per_block"
	KindAddress       Kind = "addresses"
	KindConstant      Kind = "constants"
)

// Kinds lists every parameter kind in display order.
var Kinds = []Kind{KindOffset, KindSize, KindBlockSize, KindCountPerBlock, KindAddress, KindConstant}

// Key addresses one parameter.
//
// Offsets use Struct and Field. Sizes, block sizes and per-block counts use
// Struct only. Addresses and constants use Field only, holding the bare name.
type Key struct {
	Kind   Kind
	Struct string
	Field  string
}

// OffsetKey returns the key of a field offset within a structure.
func OffsetKey(structure, field string) Key {
	return Key{Kind: KindOffset, Struct: structure, Field: field}
}

// SizeKey returns the key of a structure's size.
func SizeKey(structure string) Key { return Key{Kind: KindSize, Struct: structure} }

// BlockSizeKey returns the key of the allocation block size for a structure.
func BlockSizeKey(structure string) Key { return Key{Kind: KindBlockSize, Struct: structure} }

// CountPerBlockKey returns the key of the number of structures per block.
func CountPerBlockKey(structure string) Key { return Key{Kind: KindCountPerBlock, Struct: structure} }

// AddressKey returns the key of a fixed address.
func AddressKey(name string) Key { return Key{Kind: KindAddress, Field: name} }

// ConstantKey returns the key of a scalar constant.
func ConstantKey(name string) Key { return Key{Kind: KindConstant, Field: name} }

// Path renders the key as a dotted path, e.g. "offsets.task.bsd_info".
func (k Key) Path() string {
	switch {
	case k.Struct != "" && k.Field != "":
		return fmt.Sprintf("%s.%s.%s", k.Kind, k.Struct, k.Field)
	case k.Struct != "":
		return fmt.Sprintf("%s.%s", k.Kind, k.Struct)
	default:
		return fmt.Sprintf("%s.%s", k.Kind, k.Field)
	}
}

func (k Key) String() string { return k.Path() }

// Entry is one resolved parameter.
type Entry struct {
	Key   Key
	Value uint64
}

// Store holds resolved parameters.
//
// Writes are allowed until Freeze is called; the last write for a key wins.
// A frozen store is read-only and may be shared between goroutines.
type Store struct {
	values map[Key]uint64
	frozen bool
}

// NewStore returns an empty, writable store.
func NewStore() *Store {
	return &Store{values: make(map[Key]uint64)}
}

// Set writes a value. It panics if the store is frozen.
func (s *Store) Set(key Key, value uint64) {
	if s.frozen {
		panic(fmt.Errorf("%w: set %s", ErrStoreFrozen, key))
	}
	s.values[key] = value
}

// Get reads a value. It panics with a *MissingParameterError if the key was
// never set: callers rely on every parameter being present after a
// successful resolution, and a defaulted offset would be silently wrong.
func (s *Store) Get(key Key) uint64 {
	v, ok := s.values[key]
	if !ok {
		panic(&MissingParameterError{Key: key})
	}
	return v
}

// Lookup reads a value without panicking.
func (s *Store) Lookup(key Key) (uint64, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Len returns the number of entries.
func (s *Store) Len() int { return len(s.values) }

// Freeze makes the store read-only.
func (s *Store) Freeze() { s.frozen = true }

// Frozen reports whether Freeze has been called.
func (s *Store) Frozen() bool { return s.frozen }

// Entries returns all entries sorted by kind (in Kinds order) and then by path.
func (s *Store) Entries() []Entry {
	order := make(map[Kind]int, len(Kinds))
	for i, k := range Kinds {
		order[k] = i
	}

	entries := make([]Entry, 0, len(s.values))
	for k, v := range s.values {
		entries = append(entries, Entry{Key: k, Value: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i].Key, entries[j].Key
		if order[a.Kind] != order[b.Kind] {
			return order[a.Kind] < order[b.Kind]
		}
		return a.Path() < b.Path()
	})
	return entries
}

func (s *Store) SetOffset(structure, field string, v uint64) { s.Set(OffsetKey(structure, field), v) }
func (s *Store) SetSize(structure string, v uint64)          { s.Set(SizeKey(structure), v) }
func (s *Store) SetBlockSize(structure string, v uint64)     { s.Set(BlockSizeKey(structure), v) }
func (s *Store) SetCountPerBlock(structure string, v uint64) { s.Set(CountPerBlockKey(structure), v) }
func (s *Store) SetAddress(name string, v uint64)            { s.Set(AddressKey(name), v) }
func (s *Store) SetConstant(name string, v uint64)           { s.Set(ConstantKey(name), v) }

func (s *Store) Offset(structure, field string) uint64 { return s.Get(OffsetKey(structure, field)) }
func (s *Store) Size(structure string) uint64          { return s.Get(SizeKey(structure)) }
func (s *Store) BlockSize(structure string) uint64     { return s.Get(BlockSizeKey(structure)) }
func (s *Store) CountPerBlock(structure string) uint64 { return s.Get(CountPerBlockKey(structure)) }
func (s *Store) Address(name string) uint64            { return s.Get(AddressKey(name)) }
func (s *Store) Constant(name string) uint64           { return s.Get(ConstantKey(name)) }
