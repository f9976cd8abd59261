package bridge

import "math/big"

// RefundStatus reports whether a given outbound swap id has been refunded.
type RefundStatus struct {
	SwapID     uint64
	Refunded   bool
}

// HasRole is the read-only role-membership query (§4.9).
func (e *Engine) HasRole(addr Address, role Role) bool {
	return e.ac.HasRole(addr, role)
}

// RelayEon returns the current relay eon.
func (e *Engine) RelayEon() (uint64, error) {
	state, err := LoadState(e.store)
	if err != nil {
		return 0, err
	}
	return state.RelayEon, nil
}

// Supply returns the current notional supply.
func (e *Engine) Supply() (*big.Int, error) {
	state, err := LoadState(e.store)
	if err != nil {
		return nil, err
	}
	return state.Supply, nil
}

// Cap returns the configured supply ceiling.
func (e *Engine) Cap() (*big.Int, error) {
	state, err := LoadState(e.store)
	if err != nil {
		return nil, err
	}
	return state.Cap, nil
}

// SwapMax returns upper_swap_limit.
func (e *Engine) SwapMax() (*big.Int, error) {
	state, err := LoadState(e.store)
	if err != nil {
		return nil, err
	}
	return state.UpperSwapLimit, nil
}

// SwapMin returns lower_swap_limit. Supplemental to the mandatory query set,
// justified by operational symmetry with SwapMax and the original
// implementation's swap_min/swap_max pairing.
func (e *Engine) SwapMin() (*big.Int, error) {
	state, err := LoadState(e.store)
	if err != nil {
		return nil, err
	}
	return state.LowerSwapLimit, nil
}

// SwapFee returns the flat per-transfer fee. Supplemental: an operator
// dashboard computing effective payout amounts needs this without
// reconstructing it from SetLimits call history.
func (e *Engine) SwapFee() (*big.Int, error) {
	state, err := LoadState(e.store)
	if err != nil {
		return nil, err
	}
	return state.SwapFee, nil
}

// FeesAccrued returns the fee balance awaiting WithdrawFees. Supplemental:
// WithdrawFees needs a caller-visible ceiling to target.
func (e *Engine) FeesAccrued() (*big.Int, error) {
	state, err := LoadState(e.store)
	if err != nil {
		return nil, err
	}
	return state.FeesAccrued, nil
}

// ReverseAggregatedAllowance returns the remaining reverse allowance budget.
func (e *Engine) ReverseAggregatedAllowance() (*big.Int, error) {
	state, err := LoadState(e.store)
	if err != nil {
		return nil, err
	}
	return state.ReverseAggregatedAllowance, nil
}

// ReverseAggregatedAllowanceApproverCap returns the Approver's unilateral
// adjustment ceiling. Supplemental: an Approver needs to know their own
// ceiling before calling SetReverseAggregatedAllowance.
func (e *Engine) ReverseAggregatedAllowanceApproverCap() (*big.Int, error) {
	state, err := LoadState(e.store)
	if err != nil {
		return nil, err
	}
	return state.ReverseAggregatedAllowanceApproverCap, nil
}

// NextSwapId returns the counter assigned to the next outbound Swap.
// Supplemental: a relayer constructing a Refund needs to know the valid id
// range (id < next_swap_id) ahead of time.
func (e *Engine) NextSwapId() (uint64, error) {
	state, err := LoadState(e.store)
	if err != nil {
		return 0, err
	}
	return state.NextSwapID, nil
}

// RefundStatusOf reports whether id has already been refunded. Supplemental:
// lets an operator check idempotence before retrying a failed relay.
func (e *Engine) RefundStatusOf(id uint64) (RefundStatus, error) {
	refunded, err := e.refunds.HasRefund(id)
	if err != nil {
		return RefundStatus{}, err
	}
	return RefundStatus{SwapID: id, Refunded: refunded}, nil
}

// PausedPublicApiSince returns the public API's pause threshold block.
func (e *Engine) PausedPublicApiSince() (uint64, error) {
	state, err := LoadState(e.store)
	if err != nil {
		return 0, err
	}
	return state.PausedSinceBlockPublicAPI, nil
}

// PausedRelayerApiSince returns the relayer API's pause threshold block.
func (e *Engine) PausedRelayerApiSince() (uint64, error) {
	state, err := LoadState(e.store)
	if err != nil {
		return 0, err
	}
	return state.PausedSinceBlockRelayerAPI, nil
}

// Denom returns the canonical token denomination.
func (e *Engine) Denom() (string, error) {
	state, err := LoadState(e.store)
	if err != nil {
		return "", err
	}
	return state.Denom, nil
}

// FullState returns the entire State singleton for diagnostic dumps.
func (e *Engine) FullState() (*State, error) {
	return LoadState(e.store)
}
