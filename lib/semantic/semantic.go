package semantic

import (
	"bytes"
	"fmt"
)

// --------------------------------------------------------------------------
// Grammar Definition
// --------------------------------------------------------------------------

// Grammar is the pair of predicates that defines which values a semantic
// string may hold, together with the string's bounded capacity. A value is
// acceptable iff every byte passes IsValidCharacter and the value as a
// whole passes IsValidContent.
//
// Grammar implementations must be stateless: the String type instantiates
// them from their zero value.
type Grammar interface {
	// Name returns a short human-readable name of the grammar, used in
	// error messages.
	Name() string
	// Capacity returns the maximum number of bytes a value may hold.
	Capacity() int
	// IsValidCharacter reports whether c may appear anywhere in a value.
	IsValidCharacter(c byte) bool
	// IsValidContent reports whether value as a whole is acceptable.
	IsValidContent(value string) bool
}

// --------------------------------------------------------------------------
// Semantic String
// --------------------------------------------------------------------------

// String is a bounded ASCII string that is validated against the grammar G
// on construction and on every mutation. The zero value is the empty
// string; whether that is a legal value depends on G (it is not for
// FileName), so instances should always be obtained through New or the
// typed constructors.
type String[G Grammar] struct {
	value []byte
}

// New validates source against the grammar G and returns a String holding
// it. It fails with RetCExceedsMaximumLength if source is longer than the
// grammar's capacity and with RetCInvalidContent if either predicate
// rejects it.
func New[G Grammar](source string) (String[G], error) {
	var g G

	if len(source) > g.Capacity() {
		return String[G]{}, NewError(RetCExceedsMaximumLength,
			fmt.Sprintf("%s value of length %d exceeds capacity %d", g.Name(), len(source), g.Capacity()))
	}
	if err := validate[G](source); err != nil {
		return String[G]{}, err
	}

	return String[G]{value: []byte(source)}, nil
}

// validate runs both grammar predicates over candidate.
func validate[G Grammar](candidate string) error {
	var g G

	for i := 0; i < len(candidate); i++ {
		if !g.IsValidCharacter(candidate[i]) {
			return NewError(RetCInvalidContent,
				fmt.Sprintf("character %q at position %d is not allowed in a %s", candidate[i], i, g.Name()))
		}
	}
	if !g.IsValidContent(candidate) {
		return NewError(RetCInvalidContent,
			fmt.Sprintf("%q is not a valid %s", candidate, g.Name()))
	}
	return nil
}

// --------------------------------------------------------------------------
// Accessors
// --------------------------------------------------------------------------

// String returns the held value.
func (s String[G]) String() string {
	return string(s.value)
}

// Len returns the length of the held value in bytes.
func (s String[G]) Len() int {
	return len(s.value)
}

// IsEmpty reports whether the held value is empty.
func (s String[G]) IsEmpty() bool {
	return len(s.value) == 0
}

// Capacity returns the maximum length a value of this type may have.
func (s String[G]) Capacity() int {
	var g G
	return g.Capacity()
}

// --------------------------------------------------------------------------
// Mutating Operations
// --------------------------------------------------------------------------

// Append appends value to the held string. The operation is atomic: on any
// failure the prior value is left untouched.
func (s *String[G]) Append(value string) error {
	return s.Insert(s.Len(), value, len(value))
}

// Insert inserts the first count bytes of value at byte position pos. The
// candidate result is validated against both grammar predicates before it
// replaces the held value; on any failure the prior value is left
// untouched.
func (s *String[G]) Insert(pos int, value string, count int) error {
	var g G

	if pos < 0 || pos > len(s.value) || count < 0 || count > len(value) {
		return NewError(RetCInvalidContent,
			fmt.Sprintf("insert position %d / count %d out of range for %s of length %d", pos, count, g.Name(), len(s.value)))
	}
	if len(s.value)+count > g.Capacity() {
		return NewError(RetCExceedsMaximumLength,
			fmt.Sprintf("%s value of length %d exceeds capacity %d", g.Name(), len(s.value)+count, g.Capacity()))
	}

	// Build the candidate in a scratch buffer so the live value is never
	// observable in a half-mutated state.
	candidate := make([]byte, 0, len(s.value)+count)
	candidate = append(candidate, s.value[:pos]...)
	candidate = append(candidate, value[:count]...)
	candidate = append(candidate, s.value[pos:]...)

	if err := validate[G](string(candidate)); err != nil {
		return err
	}

	s.value = candidate
	return nil
}

// --------------------------------------------------------------------------
// Ordering
// --------------------------------------------------------------------------

// Compare compares two semantic strings byte-wise, lexicographic on code
// units with shorter-is-less on common-prefix ties. The result is -1, 0 or
// +1 as in bytes.Compare.
func (s String[G]) Compare(other String[G]) int {
	return bytes.Compare(s.value, other.value)
}

// Equal reports whether both strings hold the same value.
func (s String[G]) Equal(other String[G]) bool {
	return bytes.Equal(s.value, other.value)
}

// Less reports whether s orders strictly before other.
func (s String[G]) Less(other String[G]) bool {
	return s.Compare(other) < 0
}
