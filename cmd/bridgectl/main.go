// Command bridgectl operates a single bridge contract instance against an
// on-disk (or in-memory) store: instantiate it, submit execute messages, and
// run queries. It talks to the core directly rather than over RPC, the way
// a development harness for a not-yet-deployed contract would.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/fetchai/fetch-ethereum-bridge-v1/config"
	"github.com/fetchai/fetch-ethereum-bridge-v1/contract"
	"github.com/fetchai/fetch-ethereum-bridge-v1/storage"
)

const defaultConfigPath = "./bridge.toml"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	cfg, err := config.Load(defaultConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: load config: %v\n", err)
		return 1
	}
	store, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: open storage: %v\n", err)
		return 1
	}
	if closer, ok := store.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	switch args[0] {
	case "instantiate":
		return runInstantiate(store, cfg, args[1:])
	case "execute":
		return runExecute(store, args[1:])
	case "query":
		return runQuery(store, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", args[0])
		printUsage()
		return 1
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: bridgectl <instantiate|execute|query> ...")
	fmt.Fprintln(os.Stderr, "  bridgectl instantiate <owner-address> <block-height>")
	fmt.Fprintln(os.Stderr, "  bridgectl execute <sender-address> <block-height> <json-message> [funds-amount] [funds-denom]")
	fmt.Fprintln(os.Stderr, "  bridgectl query <json-message>")
}

func openStore(cfg *config.Config) (storage.KVStore, error) {
	switch cfg.StorageBackend {
	case "", "memory":
		return storage.NewMemStore(), nil
	case "leveldb":
		return storage.NewLevelStore(cfg.DataDir)
	default:
		return nil, fmt.Errorf("bridgectl: unknown storage backend %q", cfg.StorageBackend)
	}
}

func runInstantiate(store storage.KVStore, cfg *config.Config, args []string) int {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: bridgectl instantiate <owner-address> <block-height>")
		return 1
	}
	height, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid block height: %v\n", err)
		return 1
	}
	cap, err := config.ParseAmount("Cap", cfg.Cap)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	upper, err := config.ParseAmount("UpperSwapLimit", cfg.UpperSwapLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	lower, err := config.ParseAmount("LowerSwapLimit", cfg.LowerSwapLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fee, err := config.ParseAmount("SwapFee", cfg.SwapFee)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	allowance, err := config.ParseAmount("ReverseAggregatedAllowance", cfg.ReverseAggregatedAllowance)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	approverCap, err := config.ParseAmount("ReverseAggregatedAllowanceApproverCap", cfg.ReverseAggregatedAllowanceApproverCap)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	msg := contract.InstantiateMsg{
		Cap:                                    cap,
		UpperSwapLimit:                         upper,
		LowerSwapLimit:                         lower,
		SwapFee:                                fee,
		ReverseAggregatedAllowance:              allowance,
		ReverseAggregatedAllowanceApproverCap:   approverCap,
		Denom:                                   cfg.Denom,
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	resp, err := contract.Instantiate(store,
		contract.Env{BlockHeight: height, ContractAddress: cfg.ContractAddress},
		contract.MessageInfo{Sender: args[0]},
		raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	printJSON(resp)
	return 0
}

func runExecute(store storage.KVStore, args []string) int {
	if len(args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: bridgectl execute <sender-address> <block-height> <json-message> [funds-amount] [funds-denom]")
		return 1
	}
	height, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid block height: %v\n", err)
		return 1
	}
	var funds []contract.Coin
	if len(args) >= 5 {
		amount, err := config.ParseAmount("funds-amount", args[3])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		funds = []contract.Coin{{Denom: args[4], Amount: amount}}
	}

	resp, err := contract.Execute(store,
		contract.Env{BlockHeight: height},
		contract.MessageInfo{Sender: args[0], Funds: funds},
		json.RawMessage(args[2]))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	printJSON(resp)
	return 0
}

func runQuery(store storage.KVStore, args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: bridgectl query <json-message>")
		return 1
	}
	raw, err := contract.Query(store, json.RawMessage(args[0]))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Println(string(raw))
	return 0
}

func printJSON(v any) {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Println(string(pretty))
}
