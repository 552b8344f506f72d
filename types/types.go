package types

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/holiman/uint256"
)

// HumanAddress is a printable address string. Just use it as a label for developers.
type HumanAddress = string

// CanonicalAddress is the binary form of an address, used as a storage key
type CanonicalAddress = []byte

// Uint64 is a wrapper for uint64, but it is marshalled to and from JSON as a string
type Uint64 uint64

func (u Uint64) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatUint(uint64(u), 10))
}

func (u *Uint64) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("cannot unmarshal %s into Uint64, expected string-encoded integer", data)
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("cannot unmarshal %s into Uint64, failed to parse integer", data)
	}
	*u = Uint64(v)
	return nil
}

// Uint128 is an unsigned 128-bit integer amount. It is marshalled to and from
// JSON as a string with the decimal representation.
//
// The zero value is a usable 0.
type Uint128 struct {
	inner uint256.Int
}

// NewUint128 creates a Uint128 from a uint64.
func NewUint128(v uint64) Uint128 {
	var u Uint128
	u.inner.SetUint64(v)
	return u
}

// ParseUint128 parses a decimal string into a Uint128. Values of 2^128 or
// more and anything that is not a plain decimal number are rejected.
func ParseUint128(s string) (Uint128, error) {
	var u Uint128
	if err := u.inner.SetFromDecimal(s); err != nil {
		return Uint128{}, fmt.Errorf("cannot parse %q as Uint128: %w", s, err)
	}
	if u.inner.BitLen() > 128 {
		return Uint128{}, fmt.Errorf("cannot parse %q as Uint128: value exceeds 128 bits", s)
	}
	return u, nil
}

// Add returns u + o. ok is false when the sum does not fit in 128 bits.
func (u Uint128) Add(o Uint128) (sum Uint128, ok bool) {
	_, carry := sum.inner.AddOverflow(&u.inner, &o.inner)
	if carry || sum.inner.BitLen() > 128 {
		return Uint128{}, false
	}
	return sum, true
}

// Sub returns u - o. ok is false when o is larger than u.
func (u Uint128) Sub(o Uint128) (diff Uint128, ok bool) {
	_, borrow := diff.inner.SubOverflow(&u.inner, &o.inner)
	if borrow {
		return Uint128{}, false
	}
	return diff, true
}

func (u Uint128) IsZero() bool {
	return u.inner.IsZero()
}

func (u Uint128) Equal(o Uint128) bool {
	return u.inner.Eq(&o.inner)
}

// String returns the decimal representation, e.g. "12345".
func (u Uint128) String() string {
	return u.inner.Dec()
}

func (u Uint128) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

func (u *Uint128) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("cannot unmarshal %s into Uint128, expected string-encoded integer", data)
	}
	v, err := ParseUint128(s)
	if err != nil {
		return fmt.Errorf("cannot unmarshal %s into Uint128, failed to parse integer", data)
	}
	*u = v
	return nil
}

// Coin is a string representation of the sdk.Coin type (more portable than sdk.Int)
type Coin struct {
	Denom  string `json:"denom"`  // type, eg. "ATOM"
	Amount string `json:"amount"` // string encoding of decimal value, eg. "12.3456"
}

func NewCoin(amount uint64, denom string) Coin {
	return Coin{
		Denom:  denom,
		Amount: strconv.FormatUint(amount, 10),
	}
}

// Array is a wrapper around a slice that ensures that we get "[]" JSON for nil values.
// When unmarshalling, we get an empty slice for "[]" and "null".
type Array[C any] []C

// MarshalJSON ensures that we get "[]" for nil arrays
func (a Array[C]) MarshalJSON() ([]byte, error) {
	if len(a) == 0 {
		return []byte("[]"), nil
	}
	var raw []C = a
	return json.Marshal(raw)
}

// UnmarshalJSON ensures that we get an empty slice for "[]" and "null"
func (a *Array[C]) UnmarshalJSON(data []byte) error {
	var raw []C
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	// make sure we deserialize [] back to empty slice
	if len(raw) == 0 {
		raw = []C{}
	}
	*a = raw
	return nil
}
