package state

import (
	"encoding/json"

	"github.com/CosmWasm/cw-token/types"
)

var (
	configKey        = []byte("state")
	balancesPrefix   = []byte("balances")
	allowancesPrefix = []byte("allowances")
)

// Config is the singleton configuration of one token instance.
type Config struct {
	Minter      types.HumanAddress `json:"minter"`
	TotalSupply types.Uint128      `json:"total_supply"`
}

// ConfigStore reads and writes the Config singleton. The raw "state" key
// cannot collide with the prefixed stores: their keys all start with the
// big-endian length of the first prefix component.
type ConfigStore struct {
	store KVStore
}

func NewConfigStore(store KVStore) ConfigStore {
	return ConfigStore{store: store}
}

func (s ConfigStore) Save(cfg Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	s.store.Set(configKey, data)
	return nil
}

// Load returns the stored Config. A missing config means the instance was
// never initialized and yields a not_found error.
func (s ConfigStore) Load() (Config, error) {
	data := s.store.Get(configKey)
	if len(data) == 0 {
		return Config{}, types.ErrNotFound("cwtoken config")
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Update loads the Config, applies fn and saves the result. Nothing is
// written when fn errors.
func (s ConfigStore) Update(fn func(Config) (Config, error)) error {
	cfg, err := s.Load()
	if err != nil {
		return err
	}
	cfg, err = fn(cfg)
	if err != nil {
		return err
	}
	return s.Save(cfg)
}

// Balances maps canonical addresses to token amounts. Accounts without an
// entry hold zero tokens.
type Balances struct {
	store *PrefixedKVStore
}

func NewBalances(store KVStore) Balances {
	return Balances{store: NewPrefixedKVStore(balancesPrefix, store)}
}

func (b Balances) Get(addr types.CanonicalAddress) (types.Uint128, error) {
	data := b.store.Get(addr)
	if len(data) == 0 {
		return types.Uint128{}, nil
	}
	var amount types.Uint128
	if err := json.Unmarshal(data, &amount); err != nil {
		return types.Uint128{}, err
	}
	return amount, nil
}

func (b Balances) Set(addr types.CanonicalAddress, amount types.Uint128) error {
	data, err := json.Marshal(amount)
	if err != nil {
		return err
	}
	b.store.Set(addr, data)
	return nil
}

// Allowance records whether a spender may move an owner's tokens and how
// many are left to spend.
type Allowance struct {
	IsAllowed bool          `json:"is_allowed"`
	Amount    types.Uint128 `json:"amount"`
}

// Allowances maps spender addresses to Allowances for one fixed owner.
type Allowances struct {
	store *PrefixedKVStore
}

func NewAllowances(owner types.CanonicalAddress, store KVStore) Allowances {
	return Allowances{
		store: NewMultilevelKVStore([][]byte{allowancesPrefix, owner}, store),
	}
}

// Get returns the allowance granted to spender, or nil when none was ever set.
func (a Allowances) Get(spender types.CanonicalAddress) (*Allowance, error) {
	data := a.store.Get(spender)
	if len(data) == 0 {
		return nil, nil
	}
	var allowance Allowance
	if err := json.Unmarshal(data, &allowance); err != nil {
		return nil, err
	}
	return &allowance, nil
}

func (a Allowances) Set(spender types.CanonicalAddress, allowance Allowance) error {
	data, err := json.Marshal(allowance)
	if err != nil {
		return err
	}
	a.store.Set(spender, data)
	return nil
}
