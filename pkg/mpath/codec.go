package mpath

import (
	"fmt"
	"math"
	"math/bits"
	"strings"
)

const (
	// DefaultAlphabet is the ASCII-ordered set of digits, upper and lower
	// case letters.
	DefaultAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLabelLength allows 62^4 = 14 776 336 children per node.
	DefaultLabelLength = 4
)

// Codec maps non-negative integers to fixed-width strings over an ordered
// alphabet. All labels of one Codec have the same width, so the
// lexicographic order of labels matches the numeric order of indices.
//
// Codec is immutable and safe for concurrent use.
type Codec struct {
	alphabet string
	digits   [256]int16
	base     int
	length   int
	// capacity is the number of representable indices, 0 if it exceeds
	// the range of int.
	capacity int
}

// NewCodec returns Codec encoding indices with labels of the given length.
//
// Alphabet must consist of at least two distinct ASCII symbols in strictly
// ascending order and must not contain Separator.
func NewCodec(alphabet string, length int) (*Codec, error) {
	if len(alphabet) < 2 {
		return nil, fmt.Errorf("%w: at least 2 symbols required, got %d", ErrInvalidAlphabet, len(alphabet))
	}
	if length < 1 {
		return nil, fmt.Errorf("%w: label length %d", ErrInvalidAlphabet, length)
	}
	if strings.Contains(alphabet, Separator) {
		return nil, fmt.Errorf("%w: contains separator %q", ErrInvalidAlphabet, Separator)
	}

	c := &Codec{
		alphabet: alphabet,
		base:     len(alphabet),
		length:   length,
	}

	for i := range c.digits {
		c.digits[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		ch := alphabet[i]
		if ch >= 0x80 {
			return nil, fmt.Errorf("%w: non-ASCII symbol at %d", ErrInvalidAlphabet, i)
		}
		if i > 0 && alphabet[i-1] >= ch {
			return nil, fmt.Errorf("%w: symbols are not in ascending order at %d", ErrInvalidAlphabet, i)
		}
		c.digits[ch] = int16(i)
	}

	c.capacity = 1
	for i := 0; i < length; i++ {
		hi, lo := bits.Mul64(uint64(c.capacity), uint64(c.base))
		if hi != 0 || lo > math.MaxInt {
			c.capacity = 0
			break
		}
		c.capacity = int(lo)
	}

	return c, nil
}

// DefaultCodec returns Codec over DefaultAlphabet with DefaultLabelLength.
func DefaultCodec() *Codec {
	c, err := NewCodec(DefaultAlphabet, DefaultLabelLength)
	if err != nil {
		// constants are valid, only a programmer error can lead here
		panic(err)
	}
	return c
}

// Alphabet returns the ordered set of label symbols.
func (c *Codec) Alphabet() string {
	return c.alphabet
}

// Base returns the size of the alphabet.
func (c *Codec) Base() int {
	return c.base
}

// LabelLength returns the width of every label.
func (c *Codec) LabelLength() int {
	return c.length
}

// Capacity returns the number of indices representable by one label. The
// second value is false if it does not fit into int (any non-negative int
// can then be encoded).
func (c *Codec) Capacity() (int, bool) {
	return c.capacity, c.capacity != 0
}

// Encode returns the label of the n-th child.
//
// Returns ErrNegativeIndex for negative n and ErrOverflow if n needs more
// than LabelLength symbols.
func (c *Codec) Encode(n int) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("%w: %d", ErrNegativeIndex, n)
	}

	buf := make([]byte, c.length)
	i := c.length
	for v := n; v > 0; v /= c.base {
		if i == 0 {
			return "", fmt.Errorf("%w: %d needs more than %d base-%d digits", ErrOverflow, n, c.length, c.base)
		}
		i--
		buf[i] = c.alphabet[v%c.base]
	}
	for ; i > 0; i-- {
		buf[i-1] = c.alphabet[0]
	}

	return string(buf), nil
}

// Decode returns the index encoded by the label.
func (c *Codec) Decode(label string) (int, error) {
	if len(label) != c.length {
		return 0, fmt.Errorf("%w: %q is not %d symbols long", ErrInvalidLabel, label, c.length)
	}

	var total uint64
	for i := 0; i < len(label); i++ {
		d := c.digits[label[i]]
		if d < 0 {
			return 0, fmt.Errorf("%w: %q contains %q", ErrInvalidLabel, label, label[i])
		}

		hi, lo := bits.Mul64(total, uint64(c.base))
		lo += uint64(d)
		if hi != 0 || lo < uint64(d) || lo > math.MaxInt {
			return 0, fmt.Errorf("%w: %q", ErrOverflow, label)
		}
		total = lo
	}

	return int(total), nil
}

// Valid reports whether label can be decoded.
func (c *Codec) Valid(label string) bool {
	_, err := c.Decode(label)
	return err == nil
}
