package bridge

import (
	"fmt"

	"github.com/btcsuite/btcutil/bech32"
)

// AddressHRP is the human-readable bech32 prefix used for this ledger's
// addresses (the accounts that can hold roles, receive refunds/reverse-swap
// payouts, and act as the bootstrap admin).
const AddressHRP = "fetbridge"

// Address is a 20-byte ledger account identifier with a bech32 text
// encoding, adapted from the teacher's crypto.Address.
type Address struct {
	bytes [20]byte
}

// NewAddress constructs an Address from exactly 20 raw bytes.
func NewAddress(b []byte) (Address, error) {
	if len(b) != 20 {
		return Address{}, fmt.Errorf("bridge: address must be 20 bytes, got %d", len(b))
	}
	var addr Address
	copy(addr.bytes[:], b)
	return addr, nil
}

// String renders the address using the bech32 human-readable encoding.
func (a Address) String() string {
	conv, err := bech32.ConvertBits(a.bytes[:], 8, 5, true)
	if err != nil {
		panic(fmt.Errorf("bridge: convert address bits: %w", err))
	}
	encoded, err := bech32.Encode(AddressHRP, conv)
	if err != nil {
		panic(fmt.Errorf("bridge: encode address: %w", err))
	}
	return encoded
}

// Bytes returns a defensive copy of the raw 20-byte address.
func (a Address) Bytes() []byte {
	return append([]byte(nil), a.bytes[:]...)
}

// IsZero reports whether the address is the unset zero value.
func (a Address) IsZero() bool {
	return a.bytes == [20]byte{}
}

// DecodeAddress parses a bech32-encoded address string.
func DecodeAddress(s string) (Address, error) {
	hrp, decoded, err := bech32.Decode(s)
	if err != nil {
		return Address{}, fmt.Errorf("bridge: invalid address %q: %w", s, err)
	}
	if hrp != AddressHRP {
		return Address{}, fmt.Errorf("bridge: invalid address prefix %q, want %q", hrp, AddressHRP)
	}
	conv, err := bech32.ConvertBits(decoded, 5, 8, false)
	if err != nil {
		return Address{}, fmt.Errorf("bridge: decode address bits: %w", err)
	}
	return NewAddress(conv)
}
