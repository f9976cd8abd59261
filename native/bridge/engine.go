package bridge

import (
	"math/big"

	"github.com/fetchai/fetch-ethereum-bridge-v1/storage"
)

// Coin is a single {denom, amount} pair, mirroring the host's funds
// representation (§6: info.funds is a list of {denom, amount}).
type Coin struct {
	Denom  string
	Amount *big.Int
}

// Transfer is a bank-transfer instruction the host must execute on the
// engine's behalf (§6: response.messages).
type Transfer struct {
	To     Address
	Denom  string
	Amount *big.Int
}

// ExecuteResult is what every mutating Engine method returns: zero or more
// bank transfers plus the attribute event describing what happened.
type ExecuteResult struct {
	Transfers []Transfer
	Event     Event
}

// Engine is the bridge's state machine core. It is not safe for concurrent
// invocation by design (mirroring the teacher's Trie wrapper, which is
// documented as not safe for concurrent use): callers serialize calls to a
// given instance outside the core.
type Engine struct {
	store   storage.KVStore
	ac      *AccessControl
	refunds *RefundLedger
}

// NewEngine constructs an Engine bound to store.
func NewEngine(store storage.KVStore) *Engine {
	return &Engine{
		store:   store,
		ac:      NewAccessControl(store),
		refunds: NewRefundLedger(store),
	}
}

// AccessControl exposes the engine's underlying access-control store, for
// query-side role checks.
func (e *Engine) AccessControl() *AccessControl {
	return e.ac
}

// InstantiateParams carries the instantiate-time configuration, per §6.
type InstantiateParams struct {
	NextSwapID                            uint64
	Cap                                   *big.Int
	UpperSwapLimit                        *big.Int
	LowerSwapLimit                        *big.Int
	SwapFee                               *big.Int
	ReverseAggregatedAllowance            *big.Int
	ReverseAggregatedAllowanceApproverCap *big.Int
	PausedSinceBlock                      *uint64
	Denom                                 string
}

// Instantiate initializes the State singleton and grants Admin to owner. It
// is the one-time constructor-equivalent entry point (§6).
func (e *Engine) Instantiate(owner Address, contractAddress Address, currentHeight uint64, params InstantiateParams) error {
	denom := params.Denom
	if denom == "" {
		denom = DefaultDenom
	}
	pauseBlock := uint64(maxUint64)
	if params.PausedSinceBlock != nil {
		pauseBlock = *params.PausedSinceBlock
		if pauseBlock < currentHeight {
			pauseBlock = currentHeight
		}
	}
	state := &State{
		Supply:                                 new(big.Int),
		FeesAccrued:                            new(big.Int),
		NextSwapID:                             params.NextSwapID,
		RelayEon:                               0,
		UpperSwapLimit:                         params.UpperSwapLimit,
		LowerSwapLimit:                         params.LowerSwapLimit,
		SwapFee:                                params.SwapFee,
		Cap:                                    params.Cap,
		ReverseAggregatedAllowance:              params.ReverseAggregatedAllowance,
		ReverseAggregatedAllowanceApproverCap:   params.ReverseAggregatedAllowanceApproverCap,
		PausedSinceBlockPublicAPI:              pauseBlock,
		PausedSinceBlockRelayerAPI:             pauseBlock,
		Denom:                                  denom,
		ContractAddress:                        contractAddress,
	}
	if err := state.ValidateLimits(); err != nil {
		return err
	}
	if err := e.ac.AddRole(owner, RoleAdmin); err != nil {
		return err
	}
	return state.Save(e.store)
}

func fundsAmount(funds []Coin, denom string) (*big.Int, error) {
	for _, coin := range funds {
		if coin.Denom == denom {
			return coin.Amount, nil
		}
	}
	return nil, ErrUnrecognizedDenom
}

// Swap executes the outbound Swap handler (§4.2).
func (e *Engine) Swap(currentHeight uint64, funds []Coin, destination string) (*ExecuteResult, error) {
	state, err := LoadState(e.store)
	if err != nil {
		return nil, err
	}
	if state.PublicAPIPaused(currentHeight) {
		return nil, ErrContractPaused
	}
	amount, err := fundsAmount(funds, state.Denom)
	if err != nil {
		return nil, err
	}
	if amount.Cmp(state.LowerSwapLimit) < 0 || amount.Cmp(state.UpperSwapLimit) > 0 {
		return nil, ErrSwapLimitsViolated
	}
	newSupply := new(big.Int).Add(state.Supply, amount)
	if newSupply.Cmp(state.Cap) > 0 {
		return nil, ErrCapExceeded
	}
	swapID := state.NextSwapID
	state.Supply = newSupply
	state.NextSwapID++
	if err := state.Save(e.store); err != nil {
		return nil, err
	}
	return &ExecuteResult{Event: swapEvent(destination, swapID, amount)}, nil
}

// ReverseSwap executes the inbound ReverseSwap handler (§4.3).
func (e *Engine) ReverseSwap(caller Address, currentHeight uint64, rid, to, sender, originTxHash string, amount *big.Int, relayEon uint64) (*ExecuteResult, error) {
	state, err := LoadState(e.store)
	if err != nil {
		return nil, err
	}
	if !e.ac.HasRole(caller, RoleRelayer) {
		return nil, ErrOnlyRelayer
	}
	if relayEon != state.RelayEon {
		return nil, ErrRelayEon
	}
	if state.RelayerAPIPaused(currentHeight) {
		return nil, ErrContractPaused
	}
	if amount.Cmp(state.ReverseAggregatedAllowance) > 0 {
		return nil, ErrAllowanceExceeded
	}
	if amount.Cmp(state.Supply) > 0 {
		return nil, ErrSupplyExceeded
	}
	toAddr, err := DecodeAddress(to)
	if err != nil {
		return nil, err
	}

	var transfers []Transfer
	effective := new(big.Int)
	if amount.Cmp(state.SwapFee) > 0 {
		effective = new(big.Int).Sub(amount, state.SwapFee)
		transfers = append(transfers, Transfer{To: toAddr, Denom: state.Denom, Amount: effective})
	}
	charged := new(big.Int).Sub(amount, effective)

	state.Supply = new(big.Int).Sub(state.Supply, amount)
	state.ReverseAggregatedAllowance = new(big.Int).Sub(state.ReverseAggregatedAllowance, amount)
	state.FeesAccrued = new(big.Int).Add(state.FeesAccrued, charged)
	if err := state.Save(e.store); err != nil {
		return nil, err
	}
	return &ExecuteResult{
		Transfers: transfers,
		Event:     reverseSwapEvent(rid, to, sender, originTxHash, effective, charged),
	}, nil
}

func (e *Engine) refund(caller Address, currentHeight uint64, id uint64, to string, amount *big.Int, relayEon uint64, fee *big.Int, action string) (*ExecuteResult, error) {
	state, err := LoadState(e.store)
	if err != nil {
		return nil, err
	}
	if !e.ac.HasRole(caller, RoleRelayer) {
		return nil, ErrOnlyRelayer
	}
	if relayEon != state.RelayEon {
		return nil, ErrRelayEon
	}
	if state.RelayerAPIPaused(currentHeight) {
		return nil, ErrContractPaused
	}
	if id >= state.NextSwapID {
		return nil, ErrInvalidSwapId
	}
	alreadyRefunded, err := e.refunds.HasRefund(id)
	if err != nil {
		return nil, err
	}
	if alreadyRefunded {
		return nil, ErrAlreadyRefunded
	}
	if amount.Cmp(state.ReverseAggregatedAllowance) > 0 {
		return nil, ErrAllowanceExceeded
	}
	if amount.Cmp(state.Supply) > 0 {
		return nil, ErrSupplyExceeded
	}
	toAddr, err := DecodeAddress(to)
	if err != nil {
		return nil, err
	}

	if err := e.refunds.MarkRefunded(id); err != nil {
		return nil, err
	}
	state.Supply = new(big.Int).Sub(state.Supply, amount)
	state.ReverseAggregatedAllowance = new(big.Int).Sub(state.ReverseAggregatedAllowance, amount)
	state.FeesAccrued = new(big.Int).Add(state.FeesAccrued, fee)

	var transfers []Transfer
	if amount.Cmp(fee) > 0 {
		payout := new(big.Int).Sub(amount, fee)
		transfers = append(transfers, Transfer{To: toAddr, Denom: state.Denom, Amount: payout})
	}
	if err := state.Save(e.store); err != nil {
		return nil, err
	}
	return &ExecuteResult{
		Transfers: transfers,
		Event:     refundEvent(action, id, to, amount, fee),
	}, nil
}

// Refund executes the fee-charging refund handler (§4.4).
func (e *Engine) Refund(caller Address, currentHeight uint64, id uint64, to string, amount *big.Int, relayEon uint64) (*ExecuteResult, error) {
	state, err := LoadState(e.store)
	if err != nil {
		return nil, err
	}
	return e.refund(caller, currentHeight, id, to, amount, relayEon, state.SwapFee, "refund")
}

// RefundInFull executes the fee-waived refund handler, used when the
// failure is the bridge's fault (§4.4).
func (e *Engine) RefundInFull(caller Address, currentHeight uint64, id uint64, to string, amount *big.Int, relayEon uint64) (*ExecuteResult, error) {
	return e.refund(caller, currentHeight, id, to, amount, relayEon, new(big.Int), "refund_in_full")
}

func (e *Engine) canPause(caller Address, sinceBlock, currentHeight uint64) error {
	if sinceBlock > currentHeight {
		if !e.ac.HasRole(caller, RoleAdmin) {
			return ErrOnlyAdmin
		}
		return nil
	}
	if e.ac.HasRole(caller, RoleAdmin) || e.ac.HasRole(caller, RoleMonitor) {
		return nil
	}
	return ErrOnlyAdmin
}

func (e *Engine) pause(caller Address, currentHeight, sinceBlock uint64, setter func(*State, uint64), action string) (*ExecuteResult, error) {
	if err := e.canPause(caller, sinceBlock, currentHeight); err != nil {
		return nil, err
	}
	state, err := LoadState(e.store)
	if err != nil {
		return nil, err
	}
	clamped := sinceBlock
	if clamped < currentHeight {
		clamped = currentHeight
	}
	setter(state, clamped)
	if err := state.Save(e.store); err != nil {
		return nil, err
	}
	return &ExecuteResult{Event: pauseEvent(action, clamped)}, nil
}

// PausePublicApi executes §4.5's public-API pause/unpause handler.
func (e *Engine) PausePublicApi(caller Address, currentHeight, sinceBlock uint64) (*ExecuteResult, error) {
	return e.pause(caller, currentHeight, sinceBlock, func(s *State, v uint64) { s.PausedSinceBlockPublicAPI = v }, "pause_public_api")
}

// PauseRelayerApi executes §4.5's relayer-API pause/unpause handler.
func (e *Engine) PauseRelayerApi(caller Address, currentHeight, sinceBlock uint64) (*ExecuteResult, error) {
	return e.pause(caller, currentHeight, sinceBlock, func(s *State, v uint64) { s.PausedSinceBlockRelayerAPI = v }, "pause_relayer_api")
}

// NewRelayEon bumps the relay eon (§4.5), invalidating any pending
// relayer-signed message that still carries the old eon.
func (e *Engine) NewRelayEon(caller Address, currentHeight uint64) (*ExecuteResult, error) {
	state, err := LoadState(e.store)
	if err != nil {
		return nil, err
	}
	if !e.ac.HasRole(caller, RoleRelayer) {
		return nil, ErrOnlyRelayer
	}
	if state.RelayerAPIPaused(currentHeight) {
		return nil, ErrContractPaused
	}
	state.RelayEon++
	if err := state.Save(e.store); err != nil {
		return nil, err
	}
	return &ExecuteResult{Event: newRelayEonEvent(state.RelayEon)}, nil
}

// Deposit credits attached funds directly to supply (§4.6).
func (e *Engine) Deposit(caller Address, funds []Coin) (*ExecuteResult, error) {
	state, err := LoadState(e.store)
	if err != nil {
		return nil, err
	}
	if !e.ac.HasRole(caller, RoleAdmin) {
		return nil, ErrOnlyAdmin
	}
	amount, err := fundsAmount(funds, state.Denom)
	if err != nil {
		return nil, err
	}
	state.Supply = new(big.Int).Add(state.Supply, amount)
	if err := state.Save(e.store); err != nil {
		return nil, err
	}
	return &ExecuteResult{Event: treasuryEvent("deposit", amount, "")}, nil
}

// Withdraw transfers amount out of supply to destination (§4.6).
func (e *Engine) Withdraw(caller Address, amount *big.Int, destination string) (*ExecuteResult, error) {
	state, err := LoadState(e.store)
	if err != nil {
		return nil, err
	}
	if !e.ac.HasRole(caller, RoleAdmin) {
		return nil, ErrOnlyAdmin
	}
	if amount.Cmp(state.Supply) > 0 {
		return nil, ErrSupplyExceeded
	}
	destAddr, err := DecodeAddress(destination)
	if err != nil {
		return nil, err
	}
	state.Supply = new(big.Int).Sub(state.Supply, amount)
	if err := state.Save(e.store); err != nil {
		return nil, err
	}
	return &ExecuteResult{
		Transfers: []Transfer{{To: destAddr, Denom: state.Denom, Amount: amount}},
		Event:     treasuryEvent("withdraw", amount, destination),
	}, nil
}

// WithdrawFees transfers amount out of fees_accrued to destination (§4.6).
func (e *Engine) WithdrawFees(caller Address, amount *big.Int, destination string) (*ExecuteResult, error) {
	state, err := LoadState(e.store)
	if err != nil {
		return nil, err
	}
	if !e.ac.HasRole(caller, RoleAdmin) {
		return nil, ErrOnlyAdmin
	}
	if amount.Cmp(state.FeesAccrued) > 0 {
		return nil, ErrSupplyExceeded
	}
	destAddr, err := DecodeAddress(destination)
	if err != nil {
		return nil, err
	}
	state.FeesAccrued = new(big.Int).Sub(state.FeesAccrued, amount)
	if err := state.Save(e.store); err != nil {
		return nil, err
	}
	return &ExecuteResult{
		Transfers: []Transfer{{To: destAddr, Denom: state.Denom, Amount: amount}},
		Event:     treasuryEvent("withdraw_fees", amount, destination),
	}, nil
}

// SetCap sets the supply cap (§4.7), Admin-only.
func (e *Engine) SetCap(caller Address, amount *big.Int) (*ExecuteResult, error) {
	state, err := LoadState(e.store)
	if err != nil {
		return nil, err
	}
	if !e.ac.HasRole(caller, RoleAdmin) {
		return nil, ErrOnlyAdmin
	}
	state.Cap = amount
	if err := state.Save(e.store); err != nil {
		return nil, err
	}
	return &ExecuteResult{Event: paramEvent("set_cap", amount)}, nil
}

// SetLimits sets the per-transfer swap bounds and fee (§4.7), re-validating
// swap_fee < swap_min <= swap_max.
func (e *Engine) SetLimits(caller Address, swapMin, swapMax, swapFee *big.Int) (*ExecuteResult, error) {
	state, err := LoadState(e.store)
	if err != nil {
		return nil, err
	}
	if !e.ac.HasRole(caller, RoleAdmin) {
		return nil, ErrOnlyAdmin
	}
	previous := *state
	state.LowerSwapLimit = swapMin
	state.UpperSwapLimit = swapMax
	state.SwapFee = swapFee
	if err := state.ValidateLimits(); err != nil {
		*state = previous
		return nil, err
	}
	if err := state.Save(e.store); err != nil {
		return nil, err
	}
	return &ExecuteResult{Event: limitsEvent(swapMin, swapMax, swapFee)}, nil
}

// SetReverseAggregatedAllowance adjusts the reverse aggregated allowance
// (§4.7). Admin may set any value; Approver may only raise or lower it up to
// the configured approver cap.
func (e *Engine) SetReverseAggregatedAllowance(caller Address, amount *big.Int) (*ExecuteResult, error) {
	state, err := LoadState(e.store)
	if err != nil {
		return nil, err
	}
	isAdmin := e.ac.HasRole(caller, RoleAdmin)
	if !isAdmin {
		if !e.ac.HasRole(caller, RoleApprover) {
			return nil, ErrOnlyAdmin
		}
		if amount.Cmp(state.ReverseAggregatedAllowanceApproverCap) > 0 {
			return nil, ErrOnlyAdmin
		}
	}
	state.ReverseAggregatedAllowance = amount
	if err := state.Save(e.store); err != nil {
		return nil, err
	}
	return &ExecuteResult{Event: paramEvent("set_reverse_aggregated_allowance", amount)}, nil
}

// SetReverseAggregatedAllowanceApproverCap sets the approver cap (§4.7),
// Admin-only.
func (e *Engine) SetReverseAggregatedAllowanceApproverCap(caller Address, amount *big.Int) (*ExecuteResult, error) {
	state, err := LoadState(e.store)
	if err != nil {
		return nil, err
	}
	if !e.ac.HasRole(caller, RoleAdmin) {
		return nil, ErrOnlyAdmin
	}
	state.ReverseAggregatedAllowanceApproverCap = amount
	if err := state.Save(e.store); err != nil {
		return nil, err
	}
	return &ExecuteResult{Event: paramEvent("set_reverse_aggregated_allowance_approver_cap", amount)}, nil
}

// GrantRole grants role to addr (§4.8), Admin-only.
func (e *Engine) GrantRole(caller Address, role Role, addr Address) (*ExecuteResult, error) {
	if !e.ac.HasRole(caller, RoleAdmin) {
		return nil, ErrOnlyAdmin
	}
	if err := e.ac.AddRole(addr, role); err != nil {
		return nil, err
	}
	return &ExecuteResult{Event: roleEvent("grant_role", role, addr)}, nil
}

// RevokeRole revokes role from addr (§4.8), Admin-only.
func (e *Engine) RevokeRole(caller Address, role Role, addr Address) (*ExecuteResult, error) {
	if !e.ac.HasRole(caller, RoleAdmin) {
		return nil, ErrOnlyAdmin
	}
	if err := e.ac.RevokeRole(addr, role); err != nil {
		return nil, err
	}
	return &ExecuteResult{Event: roleEvent("revoke_role", role, addr)}, nil
}

// RenounceRole removes role from the caller themselves (§4.8).
func (e *Engine) RenounceRole(caller Address, role Role) (*ExecuteResult, error) {
	if err := e.ac.RevokeRole(caller, role); err != nil {
		return nil, err
	}
	return &ExecuteResult{Event: roleEvent("renounce_role", role, caller)}, nil
}

const maxUint64 = ^uint64(0)
