package contract

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fetchai/fetch-ethereum-bridge-v1/native/bridge"
	"github.com/fetchai/fetch-ethereum-bridge-v1/storage"
)

func mustAddress(t *testing.T, b byte) bridge.Address {
	t.Helper()
	raw := make([]byte, 20)
	raw[19] = b
	addr, err := bridge.NewAddress(raw)
	require.NoError(t, err)
	return addr
}

func instantiateTestContract(t *testing.T, store storage.KVStore, owner bridge.Address) {
	t.Helper()
	msg := InstantiateMsg{
		NextSwapID:                             0,
		Cap:                                    big.NewInt(100000),
		UpperSwapLimit:                         big.NewInt(1000),
		LowerSwapLimit:                         big.NewInt(110),
		SwapFee:                                big.NewInt(100),
		ReverseAggregatedAllowance:              big.NewInt(10000),
		ReverseAggregatedAllowanceApproverCap:   big.NewInt(5000),
		Denom:                                   "atestfet",
	}
	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	_, err = Instantiate(store, Env{BlockHeight: 0, ContractAddress: mustAddress(t, 99).String()}, MessageInfo{Sender: owner.String()}, raw)
	require.NoError(t, err)
}

func TestInstantiateAndSwap(t *testing.T) {
	store := storage.NewMemStore()
	owner := mustAddress(t, 1)
	instantiateTestContract(t, store, owner)

	user := mustAddress(t, 2)
	execMsg, err := json.Marshal(map[string]any{"swap": map[string]any{"destination": "eth_addr"}})
	require.NoError(t, err)

	resp, err := Execute(store, Env{BlockHeight: 0}, MessageInfo{
		Sender: user.String(),
		Funds:  []Coin{{Denom: "atestfet", Amount: big.NewInt(110)}},
	}, execMsg)
	require.NoError(t, err)
	require.Equal(t, "0", resp.Attributes["swap_id"])
	require.Equal(t, "110", resp.Attributes["amount"])

	raw, err := Query(store, mustJSON(t, map[string]any{"supply": map[string]any{}}))
	require.NoError(t, err)
	var out map[string]string
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Equal(t, "110", out["supply"])
}

func TestExecuteUnrecognizedVariant(t *testing.T) {
	store := storage.NewMemStore()
	owner := mustAddress(t, 1)
	instantiateTestContract(t, store, owner)

	execMsg := mustJSON(t, map[string]any{"not_a_real_action": map[string]any{}})
	_, err := Execute(store, Env{BlockHeight: 0}, MessageInfo{Sender: owner.String()}, execMsg)
	require.Error(t, err)
}

func TestQueryHasRole(t *testing.T) {
	store := storage.NewMemStore()
	owner := mustAddress(t, 1)
	instantiateTestContract(t, store, owner)

	raw, err := Query(store, mustJSON(t, map[string]any{"has_role": map[string]any{
		"role":    "ADMIN_ROLE",
		"address": owner.String(),
	}}))
	require.NoError(t, err)
	var out map[string]bool
	require.NoError(t, json.Unmarshal(raw, &out))
	require.True(t, out["has_role"])
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}
