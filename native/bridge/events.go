package bridge

import (
	"math/big"
	"strconv"
)

// Event is a typed attribute bag emitted by a state transition, mirroring
// the teacher's core/types.Event (Type + string-keyed Attributes) so a host
// adapter can forward it unchanged onto the chain's event log.
type Event struct {
	Type       string
	Attributes map[string]string
}

func amountStr(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func swapEvent(destination string, swapID uint64, amount *big.Int) Event {
	return Event{
		Type: "swap",
		Attributes: map[string]string{
			"action":      "swap",
			"destination": destination,
			"swap_id":     formatUint(swapID),
			"amount":      amountStr(amount),
		},
	}
}

func reverseSwapEvent(rid, to, sender, originTxHash string, effective, fee *big.Int) Event {
	return Event{
		Type: "reverse_swap",
		Attributes: map[string]string{
			"action":         "reverse_swap",
			"rid":            rid,
			"to":             to,
			"sender":         sender,
			"origin_tx_hash": originTxHash,
			"amount":         amountStr(effective),
			"swap_fee":       amountStr(fee),
		},
	}
}

func refundEvent(action string, id uint64, to string, amount, fee *big.Int) Event {
	return Event{
		Type: action,
		Attributes: map[string]string{
			"action": action,
			"id":     formatUint(id),
			"to":     to,
			"amount": amountStr(amount),
			"fee":    amountStr(fee),
		},
	}
}

func pauseEvent(action string, sinceBlock uint64) Event {
	return Event{
		Type: action,
		Attributes: map[string]string{
			"action":      action,
			"since_block": formatUint(sinceBlock),
		},
	}
}

func newRelayEonEvent(eon uint64) Event {
	return Event{
		Type: "new_relay_eon",
		Attributes: map[string]string{
			"action":    "new_relay_eon",
			"relay_eon": formatUint(eon),
		},
	}
}

func treasuryEvent(action string, amount *big.Int, destination string) Event {
	return Event{
		Type: action,
		Attributes: map[string]string{
			"action":      action,
			"amount":      amountStr(amount),
			"destination": destination,
		},
	}
}

func paramEvent(action string, amount *big.Int) Event {
	return Event{
		Type: action,
		Attributes: map[string]string{
			"action": action,
			"amount": amountStr(amount),
		},
	}
}

func limitsEvent(swapMin, swapMax, swapFee *big.Int) Event {
	return Event{
		Type: "set_limits",
		Attributes: map[string]string{
			"action":   "set_limits",
			"swap_min": amountStr(swapMin),
			"swap_max": amountStr(swapMax),
			"swap_fee": amountStr(swapFee),
		},
	}
}

func roleEvent(action string, role Role, addr Address) Event {
	return Event{
		Type: action,
		Attributes: map[string]string{
			"action":  action,
			"role":    role.String(),
			"address": addr.String(),
		},
	}
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}
