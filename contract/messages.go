package contract

import "math/big"

// InstantiateMsg mirrors the constructor-equivalent fields from §6.
type InstantiateMsg struct {
	NextSwapID                            uint64   `json:"next_swap_id"`
	Cap                                    *big.Int `json:"cap"`
	UpperSwapLimit                        *big.Int `json:"upper_swap_limit"`
	LowerSwapLimit                        *big.Int `json:"lower_swap_limit"`
	SwapFee                               *big.Int `json:"swap_fee"`
	ReverseAggregatedAllowance            *big.Int `json:"reverse_aggregated_allowance"`
	ReverseAggregatedAllowanceApproverCap *big.Int `json:"reverse_aggregated_allowance_approver_cap"`
	PausedSinceBlock                      *uint64  `json:"paused_since_block,omitempty"`
	Denom                                 string   `json:"denom,omitempty"`
}

// Execute message variants, each carried under its envelope tag (e.g.
// {"swap": {...}}) and decoded by Execute in entry.go.

type swapMsg struct {
	Destination string `json:"destination"`
}

type reverseSwapMsg struct {
	Rid          uint64   `json:"rid"`
	To           string   `json:"to"`
	Sender       string   `json:"sender"`
	OriginTxHash string   `json:"origin_tx_hash"`
	Amount       *big.Int `json:"amount"`
	RelayEon     uint64   `json:"relay_eon"`
}

type refundMsg struct {
	ID       uint64   `json:"id"`
	To       string   `json:"to"`
	Amount   *big.Int `json:"amount"`
	RelayEon uint64   `json:"relay_eon"`
}

type pauseMsg struct {
	SinceBlock uint64 `json:"since_block"`
}

type emptyMsg struct{}

type withdrawMsg struct {
	Amount      *big.Int `json:"amount"`
	Destination string   `json:"destination"`
}

type amountMsg struct {
	Amount *big.Int `json:"amount"`
}

type setLimitsMsg struct {
	SwapMin *big.Int `json:"swap_min"`
	SwapMax *big.Int `json:"swap_max"`
	SwapFee *big.Int `json:"swap_fee"`
}

type roleMsg struct {
	Role    string `json:"role"`
	Address string `json:"address"`
}

type renounceRoleMsg struct {
	Role string `json:"role"`
}

// Query message variants, carried under envelope tags the same way and
// decoded by Query in query.go.

type hasRoleQuery struct {
	Role    string `json:"role"`
	Address string `json:"address"`
}

type refundStatusQuery struct {
	ID uint64 `json:"id"`
}
