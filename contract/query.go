package contract

import (
	"encoding/json"
	"fmt"

	"github.com/fetchai/fetch-ethereum-bridge-v1/native/bridge"
	"github.com/fetchai/fetch-ethereum-bridge-v1/storage"
)

// Query decodes a single-key tagged query message and returns the raw JSON
// bytes of the projection requested, per §4.9/§6.
func Query(store storage.KVStore, rawMsg json.RawMessage) ([]byte, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(rawMsg, &envelope); err != nil {
		return nil, fmt.Errorf("contract: decode query envelope: %w", err)
	}
	if len(envelope) != 1 {
		return nil, fmt.Errorf("contract: query envelope must carry exactly one variant, got %d", len(envelope))
	}

	engine := bridge.NewEngine(store)

	for key, raw := range envelope {
		switch key {
		case "has_role":
			var q hasRoleQuery
			if err := json.Unmarshal(raw, &q); err != nil {
				return nil, err
			}
			role, err := bridge.ParseRole(q.Role)
			if err != nil {
				return nil, err
			}
			addr, err := bridge.DecodeAddress(q.Address)
			if err != nil {
				return nil, err
			}
			return json.Marshal(map[string]bool{"has_role": engine.HasRole(addr, role)})
		case "relay_eon":
			v, err := engine.RelayEon()
			if err != nil {
				return nil, err
			}
			return json.Marshal(map[string]uint64{"relay_eon": v})
		case "supply":
			v, err := engine.Supply()
			if err != nil {
				return nil, err
			}
			return json.Marshal(map[string]string{"supply": v.String()})
		case "cap":
			v, err := engine.Cap()
			if err != nil {
				return nil, err
			}
			return json.Marshal(map[string]string{"cap": v.String()})
		case "swap_max":
			v, err := engine.SwapMax()
			if err != nil {
				return nil, err
			}
			return json.Marshal(map[string]string{"swap_max": v.String()})
		case "swap_min":
			v, err := engine.SwapMin()
			if err != nil {
				return nil, err
			}
			return json.Marshal(map[string]string{"swap_min": v.String()})
		case "swap_fee":
			v, err := engine.SwapFee()
			if err != nil {
				return nil, err
			}
			return json.Marshal(map[string]string{"swap_fee": v.String()})
		case "fees_accrued":
			v, err := engine.FeesAccrued()
			if err != nil {
				return nil, err
			}
			return json.Marshal(map[string]string{"fees_accrued": v.String()})
		case "reverse_aggregated_allowance":
			v, err := engine.ReverseAggregatedAllowance()
			if err != nil {
				return nil, err
			}
			return json.Marshal(map[string]string{"reverse_aggregated_allowance": v.String()})
		case "reverse_aggregated_allowance_approver_cap":
			v, err := engine.ReverseAggregatedAllowanceApproverCap()
			if err != nil {
				return nil, err
			}
			return json.Marshal(map[string]string{"reverse_aggregated_allowance_approver_cap": v.String()})
		case "next_swap_id":
			v, err := engine.NextSwapId()
			if err != nil {
				return nil, err
			}
			return json.Marshal(map[string]uint64{"next_swap_id": v})
		case "refund_status":
			var q refundStatusQuery
			if err := json.Unmarshal(raw, &q); err != nil {
				return nil, err
			}
			status, err := engine.RefundStatusOf(q.ID)
			if err != nil {
				return nil, err
			}
			return json.Marshal(status)
		case "paused_public_api_since":
			v, err := engine.PausedPublicApiSince()
			if err != nil {
				return nil, err
			}
			return json.Marshal(map[string]uint64{"paused_public_api_since": v})
		case "paused_relayer_api_since":
			v, err := engine.PausedRelayerApiSince()
			if err != nil {
				return nil, err
			}
			return json.Marshal(map[string]uint64{"paused_relayer_api_since": v})
		case "denom":
			v, err := engine.Denom()
			if err != nil {
				return nil, err
			}
			return json.Marshal(map[string]string{"denom": v})
		case "full_state":
			state, err := engine.FullState()
			if err != nil {
				return nil, err
			}
			return json.Marshal(state)
		default:
			return nil, fmt.Errorf("contract: unrecognized query variant %q", key)
		}
	}
	return nil, fmt.Errorf("contract: empty query envelope")
}
