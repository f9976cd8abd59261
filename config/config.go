package config

import (
	"fmt"
	"math/big"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the bridgectl operator configuration: the storage backend
// selection, genesis/instantiate parameters, the bootstrap admin address,
// and the metrics listen address. Shaped after the teacher's
// config.Config/TOML load convention (config/config.go).
type Config struct {
	StorageBackend string `toml:"StorageBackend"` // "memory" or "leveldb"
	DataDir        string `toml:"DataDir"`
	MetricsAddress string `toml:"MetricsAddress"`

	BootstrapAdmin string `toml:"BootstrapAdmin"`
	ContractAddress string `toml:"ContractAddress"`

	Denom                                 string `toml:"Denom"`
	Cap                                   string `toml:"Cap"`
	UpperSwapLimit                        string `toml:"UpperSwapLimit"`
	LowerSwapLimit                        string `toml:"LowerSwapLimit"`
	SwapFee                               string `toml:"SwapFee"`
	ReverseAggregatedAllowance            string `toml:"ReverseAggregatedAllowance"`
	ReverseAggregatedAllowanceApproverCap string `toml:"ReverseAggregatedAllowanceApproverCap"`
}

// Load reads and decodes a TOML configuration file, writing out a default
// one the first time it's invoked against a path that doesn't exist yet.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}

func createDefault(path string) (*Config, error) {
	cfg := &Config{
		StorageBackend:                         "memory",
		DataDir:                                "./bridge-data",
		MetricsAddress:                         ":9464",
		Denom:                                  "afet",
		Cap:                                    "100000",
		UpperSwapLimit:                         "1000",
		LowerSwapLimit:                         "110",
		SwapFee:                                "100",
		ReverseAggregatedAllowance:             "10000",
		ReverseAggregatedAllowanceApproverCap:  "5000",
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("config: create default %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return nil, fmt.Errorf("config: write default %s: %w", path, err)
	}
	return cfg, nil
}

// ParseAmount parses a decimal amount field (e.g. Cap, SwapFee) into a
// *big.Int, rejecting anything that doesn't fully consume the input.
func ParseAmount(field, value string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, fmt.Errorf("config: invalid amount for %s: %q", field, value)
	}
	return amount, nil
}
