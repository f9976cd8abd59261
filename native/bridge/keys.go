package bridge

import (
	"encoding/binary"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// Storage key prefixes, keccak256-hashed the way the teacher's
// core/state/manager.go derives fixed-width collision-resistant prefixes
// (tokenListKey, loyaltyGlobalKeyBytes) ahead of variable-length suffixes.
var (
	configPrefix        = ethcrypto.Keccak256([]byte("bridge/config"))
	accessControlPrefix = ethcrypto.Keccak256([]byte("bridge/access-control"))
	refundsPrefix       = ethcrypto.Keccak256([]byte("bridge/refunds"))
)

// configKey is the single fixed key the State singleton is stored under.
func configKey() []byte {
	return configPrefix
}

// roleKey scopes the access-control store to a single role name; members are
// stored as a sorted list under this one key (see access_control.go).
func roleKey(role string) []byte {
	buf := make([]byte, len(accessControlPrefix)+len(role))
	copy(buf, accessControlPrefix)
	copy(buf[len(accessControlPrefix):], role)
	return buf
}

// refundKey encodes a swap id as a big-endian 8-byte suffix, per §9 (stable
// key ordering for debugging scans, even though the core never range-scans).
func refundKey(swapID uint64) []byte {
	buf := make([]byte, len(refundsPrefix)+8)
	copy(buf, refundsPrefix)
	binary.BigEndian.PutUint64(buf[len(refundsPrefix):], swapID)
	return buf
}
