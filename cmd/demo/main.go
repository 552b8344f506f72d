package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	dbm "github.com/cometbft/cometbft-db"
	"github.com/sirupsen/logrus"

	cwtoken "github.com/CosmWasm/cw-token"
	"github.com/CosmWasm/cw-token/api"
	"github.com/CosmWasm/cw-token/state"
	"github.com/CosmWasm/cw-token/types"
)

// This is a demo driver for the token contract: it keeps state in a local
// goleveldb and executes messages given on the command line.
//
// Usage:
//
//	demo 'minter:{"mint":{"recipient":"alice","amount":"1000"}}' \
//	     'alice:{"transfer":{"to":"bob","amount":"10"}}' \
//	     'query:{"get_balance":{"user":"bob"}}'
//
// Each argument is sender:handle-msg, or query:query-msg for reads.
type config struct {
	DataDir     string `env:"CW_TOKEN_DATA_DIR" envDefault:"./data"`
	ChainID     string `env:"CW_TOKEN_CHAIN_ID" envDefault:"demo-1"`
	Minter      string `env:"CW_TOKEN_MINTER" envDefault:"minter"`
	TotalSupply string `env:"CW_TOKEN_TOTAL_SUPPLY" envDefault:"100000000"`
	LogLevel    string `env:"CW_TOKEN_LOG_LEVEL" envDefault:"info"`
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		logrus.Fatal(err)
	}
}

func run(args []string) error {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parsing config from environment: %w", err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	logger := logrus.New()
	logger.SetLevel(level)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return err
	}
	db, err := dbm.NewGoLevelDB("cwtoken", cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	store := state.NewStore(db)
	contract := cwtoken.NewContract(store, api.NewMockAPI(), logger)
	environ := api.MockEnv(cfg.ChainID)

	// init once on a fresh database
	if _, err := state.NewConfigStore(store).Load(); err != nil {
		initMsg := fmt.Sprintf(`{"minter":%q,"total_supply":%q}`, cfg.Minter, cfg.TotalSupply)
		if _, err := contract.Init(environ, api.MockInfo(cfg.Minter), []byte(initMsg)); err != nil {
			return fmt.Errorf("initializing contract: %w", err)
		}
		logger.WithField("minter", cfg.Minter).Info("initialized fresh token instance")
	}

	for _, arg := range args {
		sender, msg, found := strings.Cut(arg, ":")
		if !found {
			return fmt.Errorf("malformed argument %q, want sender:msg", arg)
		}

		if sender == "query" {
			result, err := contract.Query(environ, []byte(msg))
			if err != nil {
				return fmt.Errorf("query %s: %w", msg, err)
			}
			logger.WithField("result", string(result)).Info("query ok")
			continue
		}

		// contract errors are reported in-band, like the VM returns them
		resp, err := contract.Handle(environ, api.MockInfo(sender), []byte(msg))
		result := types.ContractResult{Ok: resp}
		if err != nil {
			result = types.ContractResult{Err: err.Error()}
		}
		bz, err := json.Marshal(result)
		if err != nil {
			return err
		}
		if result.Err != "" {
			logger.WithField("result", string(bz)).Error("handle failed")
			continue
		}
		logger.WithField("result", string(bz)).Info("handle ok")
	}
	return nil
}
