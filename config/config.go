// Copyright (c) 2024 The sequencer-core Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config is the TOML+flag configuration loader: an external
// collaborator the sequencer core only consumes a Config value from (spec
// §6.5). Grounded on the BuildFlagSet/BuildViper/BuildConfig idiom the
// teacher's cmd/simulator entry point drives
// (cmd/simulator/main/main.go).
package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/luxfi/sequencer-core/core/sequencer"
)

// Flag keys, mirrored 1:1 onto viper keys by BuildViper.
const (
	ConfigFileKey = "config-file"

	MaxBatchSizeKey      = "batch.max-batch-size"
	TimeoutIntervalMSKey = "batch.timeout-interval-ms"
	MinBatchSizeKey      = "batch.min-batch-size"
	MaxGasLimitKey       = "batch.max-gas-limit"

	PolicyTypeKey = "scheduling.policy-type"
	WindowMSKey   = "scheduling.window-ms"

	APIHostKey = "api.host"
	APIPortKey = "api.port"

	L1RPCURLKey        = "l1.rpc-url"
	L1BridgeAddressKey = "l1.bridge-address"
	L1StartBlockKey    = "l1.start-block"

	DatabaseURLKey = "database.url"

	LogLevelKey = "log-level"
)

// Config is the configuration surface consumed, not owned, by the core
// (spec §6.5). Unknown fields outside the core are ignored by the core.
type Config struct {
	Batch      BatchConfig
	Scheduling SchedulingConfig
	API        APIConfig
	L1         L1Config
	Database   DatabaseConfig
	LogLevel   string
}

// BatchConfig mirrors sequencer.BatchConfig, kept as a distinct type so
// the configuration surface does not force an import-time dependency
// from the core onto this loader.
type BatchConfig struct {
	MaxBatchSize      int
	TimeoutIntervalMS uint64
	MinBatchSize      int
	MaxGasLimit       uint64
}

// ToCore converts to the core's BatchConfig.
func (b BatchConfig) ToCore() sequencer.BatchConfig {
	return sequencer.BatchConfig{
		MaxBatchSize:      b.MaxBatchSize,
		TimeoutIntervalMS: b.TimeoutIntervalMS,
		MinBatchSize:      b.MinBatchSize,
		MaxGasLimit:       b.MaxGasLimit,
	}
}

// SchedulingConfig selects and parameterizes the scheduling policy.
type SchedulingConfig struct {
	PolicyType string // "FCFS", "FeePriority", "TimeBoost", or "FairBFT"
	WindowMS   uint64 // only meaningful for TimeBoost
}

// ToCore converts to the core's PolicyType, defaulting unknown policy
// names to FCFS.
func (s SchedulingConfig) ToCore() sequencer.PolicyType {
	switch s.PolicyType {
	case "FeePriority":
		return sequencer.PolicyType{Kind: sequencer.PolicyFeePriority}
	case "TimeBoost":
		return sequencer.PolicyType{Kind: sequencer.PolicyTimeBoost, WindowMS: s.WindowMS}
	case "FairBFT":
		return sequencer.PolicyType{Kind: sequencer.PolicyFairBFT}
	default:
		return sequencer.PolicyType{Kind: sequencer.PolicyFCFS}
	}
}

// APIConfig is consumed by the out-of-scope RPC transport collaborator.
type APIConfig struct {
	Host string
	Port uint16
}

// L1Config is consumed by the out-of-scope L1 event subscriber
// collaborator.
type L1Config struct {
	RPCURL        string
	BridgeAddress string
	StartBlock    uint64
}

// DatabaseConfig is consumed by the out-of-scope batch-metadata registry
// collaborator.
type DatabaseConfig struct {
	URL string
}

// BuildFlagSet declares every flag BuildViper understands.
func BuildFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("sequencer", pflag.ContinueOnError)

	fs.String(ConfigFileKey, "", "path to a TOML configuration file")

	fs.Int(MaxBatchSizeKey, 200, "maximum number of transactions per sealed batch")
	fs.Uint64(TimeoutIntervalMSKey, 2000, "batch seal cadence, in milliseconds")
	fs.Int(MinBatchSizeKey, 0, "advisory minimum batch size")
	fs.Uint64(MaxGasLimitKey, 30_000_000, "cumulative gas budget per sealed batch")

	fs.String(PolicyTypeKey, "FCFS", "scheduling policy: FCFS, FeePriority, TimeBoost, or FairBFT")
	fs.Uint64(WindowMSKey, 1000, "TimeBoost window width, in milliseconds")

	fs.String(APIHostKey, "127.0.0.1", "JSON-RPC admission listen host")
	fs.Uint16(APIPortKey, 8645, "JSON-RPC admission listen port")

	fs.String(L1RPCURLKey, "", "L1 RPC endpoint the forced-tx listener subscribes to")
	fs.String(L1BridgeAddressKey, "", "L1 bridge contract address")
	fs.Uint64(L1StartBlockKey, 0, "L1 block height to start scanning from")

	fs.String(DatabaseURLKey, "", "batch-metadata registry database URL")

	fs.String(LogLevelKey, "info", "log level: trace, debug, info, warn, error, crit")

	return fs
}

// BuildViper parses args against fs, loads a TOML file if one was named,
// and returns a Viper bound to both.
func BuildViper(fs *pflag.FlagSet, args []string) (*viper.Viper, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}

	if path := v.GetString(ConfigFileKey); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %q: %w", path, err)
		}
	}

	return v, nil
}

// BuildConfig decodes v's bound keys into a Config.
func BuildConfig(v *viper.Viper) (Config, error) {
	return Config{
		Batch: BatchConfig{
			MaxBatchSize:      v.GetInt(MaxBatchSizeKey),
			TimeoutIntervalMS: v.GetUint64(TimeoutIntervalMSKey),
			MinBatchSize:      v.GetInt(MinBatchSizeKey),
			MaxGasLimit:       v.GetUint64(MaxGasLimitKey),
		},
		Scheduling: SchedulingConfig{
			PolicyType: v.GetString(PolicyTypeKey),
			WindowMS:   v.GetUint64(WindowMSKey),
		},
		API: APIConfig{
			Host: v.GetString(APIHostKey),
			Port: uint16(v.GetUint32(APIPortKey)),
		},
		L1: L1Config{
			RPCURL:        v.GetString(L1RPCURLKey),
			BridgeAddress: v.GetString(L1BridgeAddressKey),
			StartBlock:    v.GetUint64(L1StartBlockKey),
		},
		Database: DatabaseConfig{
			URL: v.GetString(DatabaseURLKey),
		},
		LogLevel: v.GetString(LogLevelKey),
	}, nil
}
