// Package cwtoken implements a minter-controlled token contract natively in
// Go: a fixed set of JSON handle messages (transfer, burn, set_allowance,
// transfer_from, burn_from, mint) executed against a key-value store.
package cwtoken

import (
	"bytes"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/CosmWasm/cw-token/state"
	"github.com/CosmWasm/cw-token/types"
)

// KVStore is the storage a contract instance operates on
type KVStore = state.KVStore

// GoAPI is a reference to address conversion callbacks
type GoAPI = types.GoAPI

// Contract is the main entry point to this library. Create one per token
// instance, backed by a store that is private to that instance, and call it
// for all init/handle/query actions.
type Contract struct {
	store  KVStore
	api    GoAPI
	logger logrus.FieldLogger
}

// NewContract creates a contract engine on top of the given store and
// address API. A nil logger falls back to the logrus standard logger.
func NewContract(store KVStore, goapi GoAPI, logger logrus.FieldLogger) *Contract {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Contract{store: store, api: goapi, logger: logger}
}

// Init sets up a fresh token instance from a JSON-encoded InitMsg.
// It must be called exactly once before any Handle or Query.
func (c *Contract) Init(env types.Env, info types.MessageInfo, initMsg []byte) (*types.Response, error) {
	var msg types.InitMsg
	if err := json.Unmarshal(initMsg, &msg); err != nil {
		return nil, types.ErrParse("InitMsg", err)
	}

	cfg := state.Config{
		Minter:      msg.Minter,
		TotalSupply: msg.TotalSupply,
	}
	if err := state.NewConfigStore(c.store).Save(cfg); err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"sender":   info.Sender,
		"chain_id": env.Block.ChainID,
	}).Debug("contract was initialized")

	return &types.Response{
		Attributes: types.Array[types.EventAttribute]{
			{Key: "action", Value: "init"},
			{Key: "minter", Value: msg.Minter},
			{Key: "total_supply", Value: msg.TotalSupply.String()},
		},
	}, nil
}

// Handle executes one JSON-encoded HandleMsg against the contract state.
// The sender in info must already be authenticated by the caller.
//
// All storage writes are staged and only committed when the handler
// succeeds, so a failed handle leaves the state untouched.
func (c *Contract) Handle(env types.Env, info types.MessageInfo, handleMsg []byte) (*types.Response, error) {
	var msg types.HandleMsg
	if err := json.Unmarshal(handleMsg, &msg); err != nil {
		return nil, types.ErrParse("HandleMsg", err)
	}

	cache := state.NewCacheKVStore(c.store)
	resp, err := c.withStore(cache).dispatch(info, &msg)
	if err != nil {
		return nil, err
	}
	cache.Write()
	return resp, nil
}

// withStore returns a copy of the contract operating on the given store.
func (c *Contract) withStore(store KVStore) *Contract {
	return &Contract{store: store, api: c.api, logger: c.logger}
}

func (c *Contract) dispatch(info types.MessageInfo, msg *types.HandleMsg) (*types.Response, error) {
	switch {
	case msg.Transfer != nil:
		return c.handleTransfer(info, msg.Transfer)
	case msg.Burn != nil:
		return c.handleBurn(info, msg.Burn)
	case msg.SetAllowance != nil:
		return c.handleSetAllowance(info, msg.SetAllowance)
	case msg.TransferFrom != nil:
		return c.handleTransferFrom(info, msg.TransferFrom)
	case msg.BurnFrom != nil:
		return c.handleBurnFrom(info, msg.BurnFrom)
	case msg.Mint != nil:
		return c.handleMint(info, msg.Mint)
	default:
		// unreachable, HandleMsg unmarshalling enforces one variant
		return nil, types.ErrGeneric("no handler for message")
	}
}

// Query executes one JSON-encoded QueryMsg and returns the JSON-encoded
// response of the matching variant.
func (c *Contract) Query(env types.Env, queryMsg []byte) ([]byte, error) {
	var msg types.QueryMsg
	if err := json.Unmarshal(queryMsg, &msg); err != nil {
		return nil, types.ErrParse("QueryMsg", err)
	}

	switch {
	case msg.GetBalance != nil:
		return c.queryBalance(msg.GetBalance)
	default:
		return nil, types.ErrGeneric("no handler for query")
	}
}

func (c *Contract) handleTransfer(info types.MessageInfo, msg *types.TransferMsg) (*types.Response, error) {
	sender, err := c.canonicalize(info.Sender)
	if err != nil {
		return nil, err
	}
	to, err := c.canonicalize(msg.To)
	if err != nil {
		return nil, err
	}

	if err := c.transfer(sender, to, msg.Amount); err != nil {
		return nil, err
	}

	return &types.Response{
		Attributes: types.Array[types.EventAttribute]{
			{Key: "action", Value: "transfer"},
			{Key: "sender", Value: info.Sender},
			{Key: "recipient", Value: msg.To},
			{Key: "amount", Value: msg.Amount.String()},
		},
	}, nil
}

func (c *Contract) handleBurn(info types.MessageInfo, msg *types.BurnMsg) (*types.Response, error) {
	sender, err := c.canonicalize(info.Sender)
	if err != nil {
		return nil, err
	}

	if err := c.burn(sender, msg.Amount); err != nil {
		return nil, err
	}

	return &types.Response{
		Attributes: types.Array[types.EventAttribute]{
			{Key: "action", Value: "burn"},
			{Key: "sender", Value: info.Sender},
			{Key: "amount", Value: msg.Amount.String()},
		},
	}, nil
}

func (c *Contract) handleSetAllowance(info types.MessageInfo, msg *types.SetAllowanceMsg) (*types.Response, error) {
	sender, err := c.canonicalize(info.Sender)
	if err != nil {
		return nil, err
	}
	spender, err := c.canonicalize(msg.Spender)
	if err != nil {
		return nil, err
	}

	allowances := state.NewAllowances(sender, c.store)
	err = allowances.Set(spender, state.Allowance{
		IsAllowed: msg.IsAllowed,
		Amount:    msg.Amount,
	})
	if err != nil {
		return nil, err
	}

	return &types.Response{
		Attributes: types.Array[types.EventAttribute]{
			{Key: "action", Value: "set_allowance"},
			{Key: "owner", Value: info.Sender},
			{Key: "spender", Value: msg.Spender},
			{Key: "amount", Value: msg.Amount.String()},
		},
	}, nil
}

func (c *Contract) handleTransferFrom(info types.MessageInfo, msg *types.TransferFromMsg) (*types.Response, error) {
	sender, err := c.canonicalize(info.Sender)
	if err != nil {
		return nil, err
	}
	from, err := c.canonicalize(msg.From)
	if err != nil {
		return nil, err
	}
	to, err := c.canonicalize(msg.To)
	if err != nil {
		return nil, err
	}

	if err := c.spendAllowance(from, sender, msg.Amount); err != nil {
		return nil, err
	}
	if err := c.transfer(from, to, msg.Amount); err != nil {
		return nil, err
	}

	return &types.Response{
		Attributes: types.Array[types.EventAttribute]{
			{Key: "action", Value: "transfer_from"},
			{Key: "spender", Value: info.Sender},
			{Key: "sender", Value: msg.From},
			{Key: "recipient", Value: msg.To},
			{Key: "amount", Value: msg.Amount.String()},
		},
	}, nil
}

func (c *Contract) handleBurnFrom(info types.MessageInfo, msg *types.BurnFromMsg) (*types.Response, error) {
	sender, err := c.canonicalize(info.Sender)
	if err != nil {
		return nil, err
	}
	from, err := c.canonicalize(msg.From)
	if err != nil {
		return nil, err
	}

	if err := c.spendAllowance(from, sender, msg.Amount); err != nil {
		return nil, err
	}
	if err := c.burn(from, msg.Amount); err != nil {
		return nil, err
	}

	return &types.Response{
		Attributes: types.Array[types.EventAttribute]{
			{Key: "action", Value: "burn_from"},
			{Key: "spender", Value: info.Sender},
			{Key: "sender", Value: msg.From},
			{Key: "amount", Value: msg.Amount.String()},
		},
	}, nil
}

func (c *Contract) handleMint(info types.MessageInfo, msg *types.MintMsg) (*types.Response, error) {
	sender, err := c.canonicalize(info.Sender)
	if err != nil {
		return nil, err
	}
	recipient, err := c.canonicalize(msg.Recipient)
	if err != nil {
		return nil, err
	}

	configStore := state.NewConfigStore(c.store)
	cfg, err := configStore.Load()
	if err != nil {
		return nil, err
	}
	minter, err := c.canonicalize(cfg.Minter)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(minter, sender) {
		return nil, types.ErrUnauthorized()
	}

	balances := state.NewBalances(c.store)
	recipientBalance, err := balances.Get(recipient)
	if err != nil {
		return nil, err
	}
	newRecipientBalance, ok := recipientBalance.Add(msg.Amount)
	if !ok {
		return nil, types.ErrGeneric("Too many tokens to mint for user")
	}
	if err := balances.Set(recipient, newRecipientBalance); err != nil {
		return nil, err
	}

	err = configStore.Update(func(cfg state.Config) (state.Config, error) {
		newSupply, ok := cfg.TotalSupply.Add(msg.Amount)
		if !ok {
			return state.Config{}, types.ErrGeneric("More token are tried to create than available in total supply")
		}
		cfg.TotalSupply = newSupply
		return cfg, nil
	})
	if err != nil {
		return nil, err
	}

	return &types.Response{
		Attributes: types.Array[types.EventAttribute]{
			{Key: "action", Value: "mint"},
			{Key: "minter", Value: info.Sender},
			{Key: "recipient", Value: msg.Recipient},
			{Key: "amount", Value: msg.Amount.String()},
		},
	}, nil
}

func (c *Contract) queryBalance(msg *types.GetBalanceQuery) ([]byte, error) {
	user, err := c.canonicalize(msg.User)
	if err != nil {
		return nil, err
	}

	balance, err := state.NewBalances(c.store).Get(user)
	if err != nil {
		return nil, err
	}
	return json.Marshal(types.BalanceResponse{Amount: balance})
}

// transfer moves amount between two canonical addresses. The sender side is
// written before the recipient side is read, so a self-transfer keeps the
// balance unchanged instead of double-counting it.
func (c *Contract) transfer(from, to types.CanonicalAddress, amount types.Uint128) error {
	balances := state.NewBalances(c.store)

	senderBalance, err := balances.Get(from)
	if err != nil {
		return err
	}
	newSenderBalance, ok := senderBalance.Sub(amount)
	if !ok {
		return types.ErrGeneric("Too many tokens to transfer")
	}
	if err := balances.Set(from, newSenderBalance); err != nil {
		return err
	}

	recipientBalance, err := balances.Get(to)
	if err != nil {
		return err
	}
	newRecipientBalance, ok := recipientBalance.Add(amount)
	if !ok {
		return types.ErrGeneric("Too many tokens to receive")
	}
	return balances.Set(to, newRecipientBalance)
}

// burn removes amount from the balance of the canonical address and from the
// total supply.
func (c *Contract) burn(from types.CanonicalAddress, amount types.Uint128) error {
	balances := state.NewBalances(c.store)

	senderBalance, err := balances.Get(from)
	if err != nil {
		return err
	}
	newSenderBalance, ok := senderBalance.Sub(amount)
	if !ok {
		return types.ErrGeneric("Too many tokens to burn")
	}
	if err := balances.Set(from, newSenderBalance); err != nil {
		return err
	}

	return state.NewConfigStore(c.store).Update(func(cfg state.Config) (state.Config, error) {
		newSupply, ok := cfg.TotalSupply.Sub(amount)
		if !ok {
			return state.Config{}, types.ErrGeneric("More tokens are tried to burn than available in total supply")
		}
		cfg.TotalSupply = newSupply
		return cfg, nil
	})
}

// spendAllowance checks that spender holds a positive allowance from owner
// and decrements it by amount.
func (c *Contract) spendAllowance(owner, spender types.CanonicalAddress, amount types.Uint128) error {
	allowances := state.NewAllowances(owner, c.store)

	allowance, err := allowances.Get(spender)
	if err != nil {
		return err
	}
	if allowance == nil || !allowance.IsAllowed {
		return types.ErrUnauthorized()
	}
	newAmount, ok := allowance.Amount.Sub(amount)
	if !ok {
		return types.ErrGeneric("Amount of tokens is bigger than allowed to transfer")
	}
	allowance.Amount = newAmount
	return allowances.Set(spender, *allowance)
}

func (c *Contract) canonicalize(human types.HumanAddress) (types.CanonicalAddress, error) {
	canon, _, err := c.api.CanonicalizeAddress(human)
	if err != nil {
		return nil, types.ErrGeneric(err.Error())
	}
	return canon, nil
}
