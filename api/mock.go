// Package api provides a GoAPI implementation suitable for tests and local
// tooling. It performs a deterministic, reversible address canonicalization
// with no bech32 dependency; production embedders supply their own GoAPI.
package api

import (
	"fmt"
	"time"

	"github.com/CosmWasm/cw-token/types"
)

// CanonicalLength is the fixed byte length of canonical addresses produced
// by the mock API.
const CanonicalLength = 32

// Gas costs of the mock address conversions, in the same ballpark as the
// bech32 implementations they stand in for.
const (
	CostCanonical uint64 = 440
	CostHuman     uint64 = 550
)

// MockCanonicalAddress pads the human address to CanonicalLength bytes.
func MockCanonicalAddress(human string) ([]byte, error) {
	if human == "" {
		return nil, fmt.Errorf("empty address")
	}
	if len(human) > CanonicalLength {
		return nil, fmt.Errorf("human encoding too long")
	}
	res := make([]byte, CanonicalLength)
	copy(res, human)
	return res, nil
}

// MockHumanAddress cuts the canonical address at the first zero byte.
func MockHumanAddress(canon []byte) (string, error) {
	if len(canon) != CanonicalLength {
		return "", fmt.Errorf("wrong canonical length")
	}
	cut := CanonicalLength
	for i, v := range canon {
		if v == 0 {
			cut = i
			break
		}
	}
	return string(canon[:cut]), nil
}

// NewMockAPI returns a GoAPI backed by the mock conversions above.
func NewMockAPI() types.GoAPI {
	return types.GoAPI{
		HumanizeAddress: func(canon []byte) (string, uint64, error) {
			human, err := MockHumanAddress(canon)
			return human, CostHuman, err
		},
		CanonicalizeAddress: func(human string) ([]byte, uint64, error) {
			canon, err := MockCanonicalAddress(human)
			return canon, CostCanonical, err
		},
		ValidateAddress: func(human string) (uint64, error) {
			canon, err := MockCanonicalAddress(human)
			if err != nil {
				return CostCanonical, err
			}
			roundtrip, err := MockHumanAddress(canon)
			if err != nil {
				return CostCanonical + CostHuman, err
			}
			if roundtrip != human {
				return CostCanonical + CostHuman, fmt.Errorf("address not normalized")
			}
			return CostCanonical + CostHuman, nil
		},
	}
}

// MockEnv returns an Env for the given chain, usable wherever the caller
// does not care about block specifics.
func MockEnv(chainID string) types.Env {
	return types.Env{
		Block: types.BlockInfo{
			Height:  12_345,
			Time:    types.Uint64(time.Unix(1_571_797_419, 879305533).UnixNano()),
			ChainID: chainID,
		},
		Transaction: &types.TransactionInfo{Index: 3},
		Contract: types.ContractInfo{
			Address: "contract",
		},
	}
}

// MockInfo returns a MessageInfo with the given sender and no funds.
func MockInfo(sender types.HumanAddress) types.MessageInfo {
	return types.MessageInfo{
		Sender: sender,
		Funds:  types.Array[types.Coin]{},
	}
}
