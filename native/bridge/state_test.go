package bridge

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/fetchai/fetch-ethereum-bridge-v1/storage"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	addr := testAddress(t, 9)
	return &State{
		Supply:                                 big.NewInt(0),
		FeesAccrued:                            big.NewInt(0),
		NextSwapID:                             0,
		RelayEon:                               0,
		UpperSwapLimit:                         big.NewInt(1000),
		LowerSwapLimit:                         big.NewInt(110),
		SwapFee:                                big.NewInt(100),
		Cap:                                    big.NewInt(100000),
		ReverseAggregatedAllowance:              big.NewInt(10000),
		ReverseAggregatedAllowanceApproverCap:   big.NewInt(5000),
		PausedSinceBlockPublicAPI:              math.MaxUint64,
		PausedSinceBlockRelayerAPI:             math.MaxUint64,
		Denom:                                  "atestfet",
		ContractAddress:                        addr,
	}
}

func TestStateSaveLoadRoundTrip(t *testing.T) {
	store := storage.NewMemStore()
	state := newTestState(t)
	state.Supply = big.NewInt(110)
	state.NextSwapID = 1

	if err := state.Save(store); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := LoadState(store)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if loaded.Supply.Cmp(state.Supply) != 0 {
		t.Fatalf("supply mismatch: %s != %s", loaded.Supply, state.Supply)
	}
	if loaded.NextSwapID != state.NextSwapID {
		t.Fatalf("next swap id mismatch: %d != %d", loaded.NextSwapID, state.NextSwapID)
	}
	if loaded.Denom != state.Denom {
		t.Fatalf("denom mismatch: %s != %s", loaded.Denom, state.Denom)
	}
	if loaded.ContractAddress.String() != state.ContractAddress.String() {
		t.Fatalf("address mismatch: %s != %s", loaded.ContractAddress, state.ContractAddress)
	}
}

func TestLoadStateNotConfigured(t *testing.T) {
	store := storage.NewMemStore()
	if _, err := LoadState(store); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestValidateLimits(t *testing.T) {
	state := newTestState(t)
	if err := state.ValidateLimits(); err != nil {
		t.Fatalf("expected valid limits, got %v", err)
	}

	state.SwapFee = big.NewInt(110)
	if err := state.ValidateLimits(); !errors.Is(err, ErrSwapLimitsInconsistent) {
		t.Fatalf("expected ErrSwapLimitsInconsistent for fee==lower, got %v", err)
	}

	state = newTestState(t)
	state.LowerSwapLimit = big.NewInt(2000)
	if err := state.ValidateLimits(); !errors.Is(err, ErrSwapLimitsInconsistent) {
		t.Fatalf("expected ErrSwapLimitsInconsistent for lower>upper, got %v", err)
	}
}

func TestPauseGating(t *testing.T) {
	state := newTestState(t)
	if state.PublicAPIPaused(100) {
		t.Fatalf("expected unpaused with default MaxUint64 threshold")
	}
	state.PausedSinceBlockPublicAPI = 50
	if !state.PublicAPIPaused(50) {
		t.Fatalf("expected paused when current height equals threshold")
	}
	if state.PublicAPIPaused(49) {
		t.Fatalf("expected unpaused just below threshold")
	}
}
