package contract

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/fetchai/fetch-ethereum-bridge-v1/native/bridge"
	"github.com/fetchai/fetch-ethereum-bridge-v1/storage"
)

func toBridgeCoins(coins []Coin) []bridge.Coin {
	out := make([]bridge.Coin, len(coins))
	for i, c := range coins {
		out[i] = bridge.Coin{Denom: c.Denom, Amount: c.Amount}
	}
	return out
}

func toContractTransfers(transfers []bridge.Transfer) []BankMsg {
	if len(transfers) == 0 {
		return nil
	}
	msgs := make([]BankMsg, len(transfers))
	for i, tr := range transfers {
		msgs[i] = BankMsg{
			ToAddress: tr.To.String(),
			Amount:    []Coin{{Denom: tr.Denom, Amount: tr.Amount}},
		}
	}
	return msgs
}

func toResponse(result *bridge.ExecuteResult) *Response {
	return &Response{
		Messages:   toContractTransfers(result.Transfers),
		Attributes: result.Event.Attributes,
	}
}

// Instantiate decodes an InstantiateMsg and initializes a fresh contract
// instance over store. It is the one-time constructor-equivalent call; the
// host is responsible for rejecting a second Instantiate against the same
// store.
func Instantiate(store storage.KVStore, env Env, info MessageInfo, rawMsg json.RawMessage) (*Response, error) {
	var msg InstantiateMsg
	if err := json.Unmarshal(rawMsg, &msg); err != nil {
		return nil, fmt.Errorf("contract: decode instantiate message: %w", err)
	}
	owner, err := bridge.DecodeAddress(info.Sender)
	if err != nil {
		return nil, err
	}
	contractAddr, err := bridge.DecodeAddress(env.ContractAddress)
	if err != nil {
		return nil, err
	}
	engine := bridge.NewEngine(store)
	params := bridge.InstantiateParams{
		NextSwapID:                             msg.NextSwapID,
		Cap:                                     msg.Cap,
		UpperSwapLimit:                          msg.UpperSwapLimit,
		LowerSwapLimit:                          msg.LowerSwapLimit,
		SwapFee:                                 msg.SwapFee,
		ReverseAggregatedAllowance:              msg.ReverseAggregatedAllowance,
		ReverseAggregatedAllowanceApproverCap:   msg.ReverseAggregatedAllowanceApproverCap,
		PausedSinceBlock:                        msg.PausedSinceBlock,
		Denom:                                   msg.Denom,
	}
	if err := engine.Instantiate(owner, contractAddr, env.BlockHeight, params); err != nil {
		log.Printf("contract: instantiate rejected: %v", err)
		return nil, err
	}
	return &Response{Attributes: map[string]string{"action": "instantiate", "owner": owner.String()}}, nil
}

// Execute decodes a single-key tagged execute message (e.g. {"swap": {...}})
// and dispatches it to the matching native/bridge.Engine method, the way
// services/governd/server/preflight_apply.go walks a
// map[string]json.RawMessage payload keyed by field path.
func Execute(store storage.KVStore, env Env, info MessageInfo, rawMsg json.RawMessage) (*Response, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(rawMsg, &envelope); err != nil {
		return nil, fmt.Errorf("contract: decode execute envelope: %w", err)
	}
	if len(envelope) != 1 {
		return nil, fmt.Errorf("contract: execute envelope must carry exactly one variant, got %d", len(envelope))
	}

	engine := bridge.NewEngine(store)
	caller, err := bridge.DecodeAddress(info.Sender)
	if err != nil {
		return nil, err
	}

	var (
		result *bridge.ExecuteResult
		action string
	)
	for key, raw := range envelope {
		action = key
		switch key {
		case "swap":
			var m swapMsg
			if err := json.Unmarshal(raw, &m); err != nil {
				return nil, err
			}
			result, err = engine.Swap(env.BlockHeight, toBridgeCoins(info.Funds), m.Destination)
		case "reverse_swap":
			var m reverseSwapMsg
			if err := json.Unmarshal(raw, &m); err != nil {
				return nil, err
			}
			result, err = engine.ReverseSwap(caller, env.BlockHeight, fmt.Sprintf("%d", m.Rid), m.To, m.Sender, m.OriginTxHash, m.Amount, m.RelayEon)
		case "refund":
			var m refundMsg
			if err := json.Unmarshal(raw, &m); err != nil {
				return nil, err
			}
			result, err = engine.Refund(caller, env.BlockHeight, m.ID, m.To, m.Amount, m.RelayEon)
		case "refund_in_full":
			var m refundMsg
			if err := json.Unmarshal(raw, &m); err != nil {
				return nil, err
			}
			result, err = engine.RefundInFull(caller, env.BlockHeight, m.ID, m.To, m.Amount, m.RelayEon)
		case "pause_public_api":
			var m pauseMsg
			if err := json.Unmarshal(raw, &m); err != nil {
				return nil, err
			}
			result, err = engine.PausePublicApi(caller, env.BlockHeight, m.SinceBlock)
		case "pause_relayer_api":
			var m pauseMsg
			if err := json.Unmarshal(raw, &m); err != nil {
				return nil, err
			}
			result, err = engine.PauseRelayerApi(caller, env.BlockHeight, m.SinceBlock)
		case "new_relay_eon":
			result, err = engine.NewRelayEon(caller, env.BlockHeight)
		case "deposit":
			result, err = engine.Deposit(caller, toBridgeCoins(info.Funds))
		case "withdraw":
			var m withdrawMsg
			if err := json.Unmarshal(raw, &m); err != nil {
				return nil, err
			}
			result, err = engine.Withdraw(caller, m.Amount, m.Destination)
		case "withdraw_fees":
			var m withdrawMsg
			if err := json.Unmarshal(raw, &m); err != nil {
				return nil, err
			}
			result, err = engine.WithdrawFees(caller, m.Amount, m.Destination)
		case "set_cap":
			var m amountMsg
			if err := json.Unmarshal(raw, &m); err != nil {
				return nil, err
			}
			result, err = engine.SetCap(caller, m.Amount)
		case "set_reverse_aggregated_allowance":
			var m amountMsg
			if err := json.Unmarshal(raw, &m); err != nil {
				return nil, err
			}
			result, err = engine.SetReverseAggregatedAllowance(caller, m.Amount)
		case "set_reverse_aggregated_allowance_approver_cap":
			var m amountMsg
			if err := json.Unmarshal(raw, &m); err != nil {
				return nil, err
			}
			result, err = engine.SetReverseAggregatedAllowanceApproverCap(caller, m.Amount)
		case "set_limits":
			var m setLimitsMsg
			if err := json.Unmarshal(raw, &m); err != nil {
				return nil, err
			}
			result, err = engine.SetLimits(caller, m.SwapMin, m.SwapMax, m.SwapFee)
		case "grant_role":
			var m roleMsg
			if err := json.Unmarshal(raw, &m); err != nil {
				return nil, err
			}
			role, rerr := bridge.ParseRole(m.Role)
			if rerr != nil {
				return nil, rerr
			}
			addr, aerr := bridge.DecodeAddress(m.Address)
			if aerr != nil {
				return nil, aerr
			}
			result, err = engine.GrantRole(caller, role, addr)
		case "revoke_role":
			var m roleMsg
			if err := json.Unmarshal(raw, &m); err != nil {
				return nil, err
			}
			role, rerr := bridge.ParseRole(m.Role)
			if rerr != nil {
				return nil, rerr
			}
			addr, aerr := bridge.DecodeAddress(m.Address)
			if aerr != nil {
				return nil, aerr
			}
			result, err = engine.RevokeRole(caller, role, addr)
		case "renounce_role":
			var m renounceRoleMsg
			if err := json.Unmarshal(raw, &m); err != nil {
				return nil, err
			}
			role, rerr := bridge.ParseRole(m.Role)
			if rerr != nil {
				return nil, rerr
			}
			result, err = engine.RenounceRole(caller, role)
		default:
			return nil, fmt.Errorf("contract: unrecognized execute variant %q", key)
		}
	}

	bridge.BridgeMetrics().ObserveAction(action, outcomeLabel(err))
	if err != nil {
		log.Printf("contract: execute %s rejected: %v", action, err)
		return nil, err
	}
	if state, stateErr := engine.FullState(); stateErr == nil {
		bridge.BridgeMetrics().ObserveState(state)
	}
	return toResponse(result), nil
}

func outcomeLabel(err error) string {
	if err == nil {
		return "ok"
	}
	return bridge.Code(err)
}
