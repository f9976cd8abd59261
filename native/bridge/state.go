package bridge

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/fetchai/fetch-ethereum-bridge-v1/storage"
)

// DefaultDenom is the denomination assumed when instantiate doesn't supply
// one explicitly, per §6.
const DefaultDenom = "afet"

// State is the single serialized configuration/accounting record the
// contract keeps, RLP-encoded under one fixed key the way the teacher's
// core/state singletons (e.g. StakingGlobalIndex) are stored. Every *big.Int
// field follows the teacher's native/swap convention of representing
// unsigned 128-bit token quantities as *big.Int rather than a fixed-width
// type the standard library doesn't offer.
type State struct {
	Supply       *big.Int
	FeesAccrued  *big.Int
	NextSwapID   uint64
	SealedReverseSwapID uint64 `json:"-"` // reserved; never mutated, left out of JSON output

	RelayEon uint64

	UpperSwapLimit *big.Int
	LowerSwapLimit *big.Int
	SwapFee        *big.Int

	Cap *big.Int

	ReverseAggregatedAllowance            *big.Int
	ReverseAggregatedAllowanceApproverCap *big.Int

	PausedSinceBlockPublicAPI  uint64
	PausedSinceBlockRelayerAPI uint64

	Denom           string
	ContractAddress Address
}

// rlpState mirrors State field-for-field in a form safe for RLP: go-ethereum's
// rlp package requires non-nil *big.Int pointers and cannot encode the
// Address value type's unexported array directly, so it is carried as bytes.
type rlpState struct {
	Supply                                 *big.Int
	FeesAccrued                            *big.Int
	NextSwapID                             uint64
	SealedReverseSwapID                    uint64
	RelayEon                                uint64
	UpperSwapLimit                          *big.Int
	LowerSwapLimit                          *big.Int
	SwapFee                                 *big.Int
	Cap                                     *big.Int
	ReverseAggregatedAllowance              *big.Int
	ReverseAggregatedAllowanceApproverCap   *big.Int
	PausedSinceBlockPublicAPI               uint64
	PausedSinceBlockRelayerAPI              uint64
	Denom                                   string
	ContractAddress                         []byte
}

func zeroIfNil(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}

// LoadState reads and decodes the State singleton. Returns ErrNotConfigured
// if instantiate has not yet run.
func LoadState(store storage.KVStore) (*State, error) {
	data, ok, err := store.Get(configKey())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotConfigured
	}
	var stored rlpState
	if err := rlp.DecodeBytes(data, &stored); err != nil {
		return nil, err
	}
	addr, err := NewAddress(stored.ContractAddress)
	if err != nil {
		return nil, err
	}
	return &State{
		Supply:                                 stored.Supply,
		FeesAccrued:                             stored.FeesAccrued,
		NextSwapID:                              stored.NextSwapID,
		SealedReverseSwapID:                     stored.SealedReverseSwapID,
		RelayEon:                                stored.RelayEon,
		UpperSwapLimit:                          stored.UpperSwapLimit,
		LowerSwapLimit:                          stored.LowerSwapLimit,
		SwapFee:                                 stored.SwapFee,
		Cap:                                     stored.Cap,
		ReverseAggregatedAllowance:              stored.ReverseAggregatedAllowance,
		ReverseAggregatedAllowanceApproverCap:   stored.ReverseAggregatedAllowanceApproverCap,
		PausedSinceBlockPublicAPI:               stored.PausedSinceBlockPublicAPI,
		PausedSinceBlockRelayerAPI:              stored.PausedSinceBlockRelayerAPI,
		Denom:                                   stored.Denom,
		ContractAddress:                         addr,
	}, nil
}

// Save persists the State singleton.
func (s *State) Save(store storage.KVStore) error {
	stored := rlpState{
		Supply:                                 zeroIfNil(s.Supply),
		FeesAccrued:                             zeroIfNil(s.FeesAccrued),
		NextSwapID:                              s.NextSwapID,
		SealedReverseSwapID:                     s.SealedReverseSwapID,
		RelayEon:                                s.RelayEon,
		UpperSwapLimit:                          zeroIfNil(s.UpperSwapLimit),
		LowerSwapLimit:                          zeroIfNil(s.LowerSwapLimit),
		SwapFee:                                 zeroIfNil(s.SwapFee),
		Cap:                                     zeroIfNil(s.Cap),
		ReverseAggregatedAllowance:              zeroIfNil(s.ReverseAggregatedAllowance),
		ReverseAggregatedAllowanceApproverCap:   zeroIfNil(s.ReverseAggregatedAllowanceApproverCap),
		PausedSinceBlockPublicAPI:               s.PausedSinceBlockPublicAPI,
		PausedSinceBlockRelayerAPI:              s.PausedSinceBlockRelayerAPI,
		Denom:                                   s.Denom,
		ContractAddress:                         s.ContractAddress.Bytes(),
	}
	encoded, err := rlp.EncodeToBytes(stored)
	if err != nil {
		return err
	}
	return store.Set(configKey(), encoded)
}

// ValidateLimits enforces §3 invariant 2: swap_fee < lower_swap_limit <=
// upper_swap_limit.
func (s *State) ValidateLimits() error {
	if s.SwapFee.Cmp(s.LowerSwapLimit) >= 0 {
		return ErrSwapLimitsInconsistent
	}
	if s.LowerSwapLimit.Cmp(s.UpperSwapLimit) > 0 {
		return ErrSwapLimitsInconsistent
	}
	return nil
}

// PublicAPIPaused reports whether the public swap-in API is paused at
// currentHeight, per §3: paused when currentHeight >= paused_since_block.
func (s *State) PublicAPIPaused(currentHeight uint64) bool {
	return s.PausedSinceBlockPublicAPI <= currentHeight
}

// RelayerAPIPaused reports whether the relayer-facing API is paused at
// currentHeight.
func (s *State) RelayerAPIPaused(currentHeight uint64) bool {
	return s.PausedSinceBlockRelayerAPI <= currentHeight
}
