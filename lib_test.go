package cwtoken

import (
	"encoding/json"
	"fmt"
	"testing"

	dbm "github.com/cometbft/cometbft-db"
	"github.com/stretchr/testify/require"

	"github.com/CosmWasm/cw-token/api"
	"github.com/CosmWasm/cw-token/state"
	"github.com/CosmWasm/cw-token/types"
)

const (
	initialTotalSupply = 100_000_000
	initialBalance     = 1_000_000
	allowanceAmount    = 10_000
	totalSupply        = initialTotalSupply + initialBalance
)

func mockContract(t *testing.T) *Contract {
	t.Helper()
	return NewContract(state.NewStore(dbm.NewMemDB()), api.NewMockAPI(), nil)
}

func initContract(t *testing.T, contract *Contract) {
	t.Helper()
	msg := fmt.Sprintf(`{"minter":"minter","total_supply":"%d"}`, initialTotalSupply)
	_, err := contract.Init(api.MockEnv("testing"), api.MockInfo("creator"), []byte(msg))
	require.NoError(t, err)
}

func mint(t *testing.T, contract *Contract) {
	t.Helper()
	msg := fmt.Sprintf(`{"mint":{"recipient":"sender","amount":"%d"}}`, initialBalance)
	_, err := contract.Handle(api.MockEnv("testing"), api.MockInfo("minter"), []byte(msg))
	require.NoError(t, err)
}

func setAllowance(t *testing.T, contract *Contract) {
	t.Helper()
	msg := fmt.Sprintf(`{"set_allowance":{"spender":"third_party","amount":"%d","is_allowed":true}}`, allowanceAmount)
	_, err := contract.Handle(api.MockEnv("testing"), api.MockInfo("sender"), []byte(msg))
	require.NoError(t, err)
}

func queryBalance(t *testing.T, contract *Contract, user string) types.Uint128 {
	t.Helper()
	msg := fmt.Sprintf(`{"get_balance":{"user":%q}}`, user)
	data, err := contract.Query(api.MockEnv("testing"), []byte(msg))
	require.NoError(t, err)
	var resp types.BalanceResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	return resp.Amount
}

func loadConfig(t *testing.T, contract *Contract) state.Config {
	t.Helper()
	cfg, err := state.NewConfigStore(contract.store).Load()
	require.NoError(t, err)
	return cfg
}

func loadAllowance(t *testing.T, contract *Contract, owner, spender string) *state.Allowance {
	t.Helper()
	ownerCanon, err := api.MockCanonicalAddress(owner)
	require.NoError(t, err)
	spenderCanon, err := api.MockCanonicalAddress(spender)
	require.NoError(t, err)
	allowance, err := state.NewAllowances(ownerCanon, contract.store).Get(spenderCanon)
	require.NoError(t, err)
	return allowance
}

func TestProperInit(t *testing.T) {
	contract := mockContract(t)
	initContract(t, contract)

	cfg := loadConfig(t, contract)
	require.Equal(t, "minter", cfg.Minter)
	require.True(t, cfg.TotalSupply.Equal(types.NewUint128(initialTotalSupply)))
}

func TestInitRejectsInvalidMsg(t *testing.T) {
	contract := mockContract(t)

	_, err := contract.Init(api.MockEnv("testing"), api.MockInfo("creator"), []byte(`{"minter":"minter"}`))
	require.ErrorContains(t, err, "missing field 'total_supply'")

	_, err = contract.Init(api.MockEnv("testing"), api.MockInfo("creator"), []byte(`not json`))
	require.Error(t, err)
}

func TestHandleMint(t *testing.T) {
	contract := mockContract(t)
	initContract(t, contract)
	mint(t, contract)

	cfg := loadConfig(t, contract)
	require.True(t, cfg.TotalSupply.Equal(types.NewUint128(totalSupply)))
	require.True(t, queryBalance(t, contract, "sender").Equal(types.NewUint128(initialBalance)))
}

func TestHandleMintUnauthorized(t *testing.T) {
	contract := mockContract(t)
	initContract(t, contract)

	msg := []byte(`{"mint":{"recipient":"sender","amount":"1000"}}`)
	_, err := contract.Handle(api.MockEnv("testing"), api.MockInfo("not_minter"), msg)
	require.True(t, types.IsUnauthorized(err))
}

func TestHandleMintTooMany(t *testing.T) {
	contract := mockContract(t)
	initContract(t, contract)
	mint(t, contract)

	// a second mint of the maximum value overflows the recipient balance
	msg := []byte(`{"mint":{"recipient":"sender","amount":"340282366920938463463374607431768211455"}}`)
	_, err := contract.Handle(api.MockEnv("testing"), api.MockInfo("minter"), msg)
	require.EqualError(t, err, "generic: Too many tokens to mint for user")

	require.True(t, queryBalance(t, contract, "sender").Equal(types.NewUint128(initialBalance)))
	cfg := loadConfig(t, contract)
	require.True(t, cfg.TotalSupply.Equal(types.NewUint128(totalSupply)))
}

func TestHandleMintOverflowsTotalSupply(t *testing.T) {
	contract := mockContract(t)
	initContract(t, contract)

	// recipient balance fits, but total supply does not
	msg := []byte(`{"mint":{"recipient":"sender","amount":"340282366920938463463374607431768111455"}}`)
	_, err := contract.Handle(api.MockEnv("testing"), api.MockInfo("minter"), msg)
	require.EqualError(t, err, "generic: More token are tried to create than available in total supply")

	// the failed mint must not have credited the recipient
	require.True(t, queryBalance(t, contract, "sender").IsZero())
	cfg := loadConfig(t, contract)
	require.True(t, cfg.TotalSupply.Equal(types.NewUint128(initialTotalSupply)))
}

func TestHandleMintBeforeInit(t *testing.T) {
	contract := mockContract(t)

	msg := []byte(`{"mint":{"recipient":"sender","amount":"1000"}}`)
	_, err := contract.Handle(api.MockEnv("testing"), api.MockInfo("minter"), msg)
	require.EqualError(t, err, "not_found: cwtoken config")
}

func TestHandleTransfer(t *testing.T) {
	contract := mockContract(t)
	initContract(t, contract)
	mint(t, contract)

	msg := []byte(`{"transfer":{"to":"recipient","amount":"1000"}}`)
	resp, err := contract.Handle(api.MockEnv("testing"), api.MockInfo("sender"), msg)
	require.NoError(t, err)
	require.Contains(t, resp.Attributes, types.EventAttribute{Key: "action", Value: "transfer"})

	require.True(t, queryBalance(t, contract, "sender").Equal(types.NewUint128(initialBalance-1000)))
	require.True(t, queryBalance(t, contract, "recipient").Equal(types.NewUint128(1000)))
}

func TestHandleTransferInsufficientBalance(t *testing.T) {
	contract := mockContract(t)
	initContract(t, contract)
	mint(t, contract)

	msg := fmt.Sprintf(`{"transfer":{"to":"recipient","amount":"%d"}}`, initialBalance+1)
	_, err := contract.Handle(api.MockEnv("testing"), api.MockInfo("sender"), []byte(msg))
	require.EqualError(t, err, "generic: Too many tokens to transfer")

	// nothing moved
	require.True(t, queryBalance(t, contract, "sender").Equal(types.NewUint128(initialBalance)))
	require.True(t, queryBalance(t, contract, "recipient").IsZero())
}

func TestHandleTransferToSelf(t *testing.T) {
	contract := mockContract(t)
	initContract(t, contract)
	mint(t, contract)

	msg := []byte(`{"transfer":{"to":"sender","amount":"1000"}}`)
	_, err := contract.Handle(api.MockEnv("testing"), api.MockInfo("sender"), msg)
	require.NoError(t, err)

	require.True(t, queryBalance(t, contract, "sender").Equal(types.NewUint128(initialBalance)))
}

func TestHandleBurn(t *testing.T) {
	contract := mockContract(t)
	initContract(t, contract)
	mint(t, contract)

	msg := []byte(`{"burn":{"amount":"1000"}}`)
	_, err := contract.Handle(api.MockEnv("testing"), api.MockInfo("sender"), msg)
	require.NoError(t, err)

	require.True(t, queryBalance(t, contract, "sender").Equal(types.NewUint128(initialBalance-1000)))

	cfg := loadConfig(t, contract)
	require.True(t, cfg.TotalSupply.Equal(types.NewUint128(totalSupply-1000)))
}

func TestHandleBurnMoreThanTotalSupply(t *testing.T) {
	contract := mockContract(t)
	initContract(t, contract)
	mint(t, contract)

	// force supply below the sender balance
	err := state.NewConfigStore(contract.store).Update(func(cfg state.Config) (state.Config, error) {
		cfg.TotalSupply = types.Uint128{}
		return cfg, nil
	})
	require.NoError(t, err)

	msg := []byte(`{"burn":{"amount":"1000"}}`)
	_, err = contract.Handle(api.MockEnv("testing"), api.MockInfo("sender"), msg)
	require.EqualError(t, err, "generic: More tokens are tried to burn than available in total supply")

	// the failed burn must not have debited the sender
	require.True(t, queryBalance(t, contract, "sender").Equal(types.NewUint128(initialBalance)))
	cfg := loadConfig(t, contract)
	require.True(t, cfg.TotalSupply.IsZero())
}

func TestHandleSetAllowance(t *testing.T) {
	contract := mockContract(t)
	initContract(t, contract)
	mint(t, contract)
	setAllowance(t, contract)

	allowance := loadAllowance(t, contract, "sender", "third_party")
	require.NotNil(t, allowance)
	require.True(t, allowance.IsAllowed)
	require.True(t, allowance.Amount.Equal(types.NewUint128(allowanceAmount)))
}

func TestHandleTransferFrom(t *testing.T) {
	contract := mockContract(t)
	initContract(t, contract)
	mint(t, contract)
	setAllowance(t, contract)

	msg := []byte(`{"transfer_from":{"from":"sender","to":"recipient","amount":"1000"}}`)
	_, err := contract.Handle(api.MockEnv("testing"), api.MockInfo("third_party"), msg)
	require.NoError(t, err)

	require.True(t, queryBalance(t, contract, "recipient").Equal(types.NewUint128(1000)))
	require.True(t, queryBalance(t, contract, "sender").Equal(types.NewUint128(initialBalance-1000)))

	allowance := loadAllowance(t, contract, "sender", "third_party")
	require.True(t, allowance.Amount.Equal(types.NewUint128(allowanceAmount-1000)))
}

func TestHandleTransferFromTooMany(t *testing.T) {
	contract := mockContract(t)
	initContract(t, contract)
	mint(t, contract)
	setAllowance(t, contract)

	msg := fmt.Sprintf(`{"transfer_from":{"from":"sender","to":"recipient","amount":"%d"}}`, allowanceAmount*2)
	_, err := contract.Handle(api.MockEnv("testing"), api.MockInfo("third_party"), []byte(msg))
	require.EqualError(t, err, "generic: Amount of tokens is bigger than allowed to transfer")
}

func TestHandleTransferFromInsufficientBalanceKeepsAllowance(t *testing.T) {
	contract := mockContract(t)
	initContract(t, contract)
	// no mint: the owner holds nothing, but grants an allowance anyway
	setAllowance(t, contract)

	msg := []byte(`{"transfer_from":{"from":"sender","to":"recipient","amount":"1000"}}`)
	_, err := contract.Handle(api.MockEnv("testing"), api.MockInfo("third_party"), msg)
	require.EqualError(t, err, "generic: Too many tokens to transfer")

	// the failed transfer must not have consumed the allowance
	allowance := loadAllowance(t, contract, "sender", "third_party")
	require.NotNil(t, allowance)
	require.True(t, allowance.IsAllowed)
	require.True(t, allowance.Amount.Equal(types.NewUint128(allowanceAmount)))
}

func TestHandleTransferFromWithoutAllowance(t *testing.T) {
	contract := mockContract(t)
	initContract(t, contract)
	mint(t, contract)

	msg := []byte(`{"transfer_from":{"from":"sender","to":"recipient","amount":"1000"}}`)
	_, err := contract.Handle(api.MockEnv("testing"), api.MockInfo("third_party"), msg)
	require.True(t, types.IsUnauthorized(err))
}

func TestHandleTransferFromRevokedAllowance(t *testing.T) {
	contract := mockContract(t)
	initContract(t, contract)
	mint(t, contract)
	setAllowance(t, contract)

	revoke := fmt.Sprintf(`{"set_allowance":{"spender":"third_party","amount":"%d","is_allowed":false}}`, allowanceAmount)
	_, err := contract.Handle(api.MockEnv("testing"), api.MockInfo("sender"), []byte(revoke))
	require.NoError(t, err)

	msg := []byte(`{"transfer_from":{"from":"sender","to":"recipient","amount":"1000"}}`)
	_, err = contract.Handle(api.MockEnv("testing"), api.MockInfo("third_party"), msg)
	require.True(t, types.IsUnauthorized(err))
}

func TestHandleBurnFrom(t *testing.T) {
	contract := mockContract(t)
	initContract(t, contract)
	mint(t, contract)
	setAllowance(t, contract)

	msg := []byte(`{"burn_from":{"from":"sender","amount":"1000"}}`)
	_, err := contract.Handle(api.MockEnv("testing"), api.MockInfo("third_party"), msg)
	require.NoError(t, err)

	require.True(t, queryBalance(t, contract, "sender").Equal(types.NewUint128(initialBalance-1000)))

	allowance := loadAllowance(t, contract, "sender", "third_party")
	require.True(t, allowance.Amount.Equal(types.NewUint128(allowanceAmount-1000)))

	cfg := loadConfig(t, contract)
	require.True(t, cfg.TotalSupply.Equal(types.NewUint128(totalSupply-1000)))
}

func TestHandleBurnFromTooMany(t *testing.T) {
	contract := mockContract(t)
	initContract(t, contract)
	mint(t, contract)
	setAllowance(t, contract)

	msg := fmt.Sprintf(`{"burn_from":{"from":"sender","amount":"%d"}}`, allowanceAmount*2)
	_, err := contract.Handle(api.MockEnv("testing"), api.MockInfo("third_party"), []byte(msg))
	require.EqualError(t, err, "generic: Amount of tokens is bigger than allowed to transfer")
}

func TestHandleRejectsInvalidMsg(t *testing.T) {
	contract := mockContract(t)
	initContract(t, contract)

	// two variants at once
	msg := []byte(`{"transfer":{"amount":"100","to":"addr1"},"burn":{"amount":"5"}}`)
	_, err := contract.Handle(api.MockEnv("testing"), api.MockInfo("sender"), msg)
	require.ErrorContains(t, err, "parse: target HandleMsg")

	// no variant
	_, err = contract.Handle(api.MockEnv("testing"), api.MockInfo("sender"), []byte(`{}`))
	require.ErrorContains(t, err, "parse: target HandleMsg")
}

func TestQueryGetBalance(t *testing.T) {
	contract := mockContract(t)
	initContract(t, contract)
	mint(t, contract)

	require.True(t, queryBalance(t, contract, "sender").Equal(types.NewUint128(initialBalance)))

	// unknown accounts report zero
	require.True(t, queryBalance(t, contract, "nobody").IsZero())
}

func TestQueryRejectsInvalidMsg(t *testing.T) {
	contract := mockContract(t)
	initContract(t, contract)

	_, err := contract.Query(api.MockEnv("testing"), []byte(`{"get_supply":{}}`))
	require.ErrorContains(t, err, "parse: target QueryMsg")
}
