// Package contract adapts the bridge's deterministic state machine
// (native/bridge) to a CosmWasm-style host ABI: an Env/MessageInfo/Response
// envelope and three entry points (Instantiate, Execute, Query). Gas
// metering, wire framing, and persistent commit remain the host's job; this
// package only decodes the envelope-tagged JSON message and dispatches to
// the matching native/bridge.Engine method.
package contract

import "math/big"

// Coin is a single {denom, amount} pair as carried in MessageInfo.Funds and
// BankMsg.Amount.
type Coin struct {
	Denom  string   `json:"denom"`
	Amount *big.Int `json:"amount"`
}

// Env supplies the ambient chain context a handler needs: the current block
// height (for pause gating) and the contract's own address.
type Env struct {
	BlockHeight     uint64 `json:"block_height"`
	ContractAddress string `json:"contract_address"`
}

// MessageInfo carries the authenticated caller and any funds attached to the
// call.
type MessageInfo struct {
	Sender string `json:"sender"`
	Funds  []Coin `json:"funds"`
}

// BankMsg is a bank-transfer instruction the host must execute after a
// successful Execute call.
type BankMsg struct {
	ToAddress string `json:"to_address"`
	Amount    []Coin `json:"amount"`
}

// Response is returned by Instantiate and Execute: zero or more bank
// transfers plus attributes describing what happened.
type Response struct {
	Messages   []BankMsg         `json:"messages"`
	Attributes map[string]string `json:"attributes"`
}
