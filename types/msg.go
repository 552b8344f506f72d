package types

import (
	"encoding/json"
	"fmt"
)

//------- Messages -------------

// InitMsg sets up a fresh token instance: who may mint and how much supply
// exists up front.
type InitMsg struct {
	Minter      HumanAddress `json:"minter"`
	TotalSupply Uint128      `json:"total_supply"`
}

// UnmarshalJSON implements json.Unmarshaler for InitMsg.
// Both fields are mandatory.
func (m *InitMsg) UnmarshalJSON(data []byte) error {
	type internalInitMsg struct {
		Minter      *HumanAddress `json:"minter"`
		TotalSupply *Uint128      `json:"total_supply"`
	}
	var tmp internalInitMsg
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	if tmp.Minter == nil {
		return fmt.Errorf("invalid InitMsg: missing field 'minter'")
	}
	if tmp.TotalSupply == nil {
		return fmt.Errorf("invalid InitMsg: missing field 'total_supply'")
	}
	*m = InitMsg{
		Minter:      *tmp.Minter,
		TotalSupply: *tmp.TotalSupply,
	}
	return nil
}

// HandleMsg is the union of all mutating operations the token accepts.
// Exactly one of the fields is set on a valid instance.
type HandleMsg struct {
	Transfer     *TransferMsg     `json:"transfer,omitempty"`
	Burn         *BurnMsg         `json:"burn,omitempty"`
	SetAllowance *SetAllowanceMsg `json:"set_allowance,omitempty"`
	TransferFrom *TransferFromMsg `json:"transfer_from,omitempty"`
	BurnFrom     *BurnFromMsg     `json:"burn_from,omitempty"`
	Mint         *MintMsg         `json:"mint,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler for HandleMsg.
// It rejects documents where none or more than one variant key is present.
func (m *HandleMsg) UnmarshalJSON(data []byte) error {
	type internalHandleMsg struct {
		Transfer     *TransferMsg     `json:"transfer"`
		Burn         *BurnMsg         `json:"burn"`
		SetAllowance *SetAllowanceMsg `json:"set_allowance"`
		TransferFrom *TransferFromMsg `json:"transfer_from"`
		BurnFrom     *BurnFromMsg     `json:"burn_from"`
		Mint         *MintMsg         `json:"mint"`
	}
	var tmp internalHandleMsg
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}

	variants := 0
	for _, set := range []bool{
		tmp.Transfer != nil,
		tmp.Burn != nil,
		tmp.SetAllowance != nil,
		tmp.TransferFrom != nil,
		tmp.BurnFrom != nil,
		tmp.Mint != nil,
	} {
		if set {
			variants++
		}
	}
	if variants == 0 {
		return fmt.Errorf("invalid HandleMsg: no variant set")
	}
	if variants > 1 {
		return fmt.Errorf("invalid HandleMsg: %d variants set, expected exactly one", variants)
	}

	*m = HandleMsg{
		Transfer:     tmp.Transfer,
		Burn:         tmp.Burn,
		SetAllowance: tmp.SetAllowance,
		TransferFrom: tmp.TransferFrom,
		BurnFrom:     tmp.BurnFrom,
		Mint:         tmp.Mint,
	}
	return nil
}

// TransferMsg moves tokens from the message sender to another account.
type TransferMsg struct {
	To     HumanAddress `json:"to"`
	Amount Uint128      `json:"amount"`
}

func (m *TransferMsg) UnmarshalJSON(data []byte) error {
	type internalTransferMsg struct {
		To     *HumanAddress `json:"to"`
		Amount *Uint128      `json:"amount"`
	}
	var tmp internalTransferMsg
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	if tmp.To == nil {
		return fmt.Errorf("invalid TransferMsg: missing field 'to'")
	}
	if tmp.Amount == nil {
		return fmt.Errorf("invalid TransferMsg: missing field 'amount'")
	}
	*m = TransferMsg{To: *tmp.To, Amount: *tmp.Amount}
	return nil
}

// BurnMsg destroys tokens from the message sender's balance and
// reduces the total supply by the same amount.
type BurnMsg struct {
	Amount Uint128 `json:"amount"`
}

func (m *BurnMsg) UnmarshalJSON(data []byte) error {
	type internalBurnMsg struct {
		Amount *Uint128 `json:"amount"`
	}
	var tmp internalBurnMsg
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	if tmp.Amount == nil {
		return fmt.Errorf("invalid BurnMsg: missing field 'amount'")
	}
	*m = BurnMsg{Amount: *tmp.Amount}
	return nil
}

// SetAllowanceMsg grants (or revokes, via is_allowed=false) a spender the
// right to move up to amount tokens out of the sender's balance.
type SetAllowanceMsg struct {
	Spender   HumanAddress `json:"spender"`
	Amount    Uint128      `json:"amount"`
	IsAllowed bool         `json:"is_allowed"`
}

func (m *SetAllowanceMsg) UnmarshalJSON(data []byte) error {
	type internalSetAllowanceMsg struct {
		Spender   *HumanAddress `json:"spender"`
		Amount    *Uint128      `json:"amount"`
		IsAllowed *bool         `json:"is_allowed"`
	}
	var tmp internalSetAllowanceMsg
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	if tmp.Spender == nil {
		return fmt.Errorf("invalid SetAllowanceMsg: missing field 'spender'")
	}
	if tmp.Amount == nil {
		return fmt.Errorf("invalid SetAllowanceMsg: missing field 'amount'")
	}
	if tmp.IsAllowed == nil {
		return fmt.Errorf("invalid SetAllowanceMsg: missing field 'is_allowed'")
	}
	*m = SetAllowanceMsg{
		Spender:   *tmp.Spender,
		Amount:    *tmp.Amount,
		IsAllowed: *tmp.IsAllowed,
	}
	return nil
}

// TransferFromMsg moves tokens between two accounts, spending down an
// allowance the from account granted to the message sender.
type TransferFromMsg struct {
	From   HumanAddress `json:"from"`
	To     HumanAddress `json:"to"`
	Amount Uint128      `json:"amount"`
}

func (m *TransferFromMsg) UnmarshalJSON(data []byte) error {
	type internalTransferFromMsg struct {
		From   *HumanAddress `json:"from"`
		To     *HumanAddress `json:"to"`
		Amount *Uint128      `json:"amount"`
	}
	var tmp internalTransferFromMsg
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	if tmp.From == nil {
		return fmt.Errorf("invalid TransferFromMsg: missing field 'from'")
	}
	if tmp.To == nil {
		return fmt.Errorf("invalid TransferFromMsg: missing field 'to'")
	}
	if tmp.Amount == nil {
		return fmt.Errorf("invalid TransferFromMsg: missing field 'amount'")
	}
	*m = TransferFromMsg{From: *tmp.From, To: *tmp.To, Amount: *tmp.Amount}
	return nil
}

// BurnFromMsg destroys tokens from another account, spending down an
// allowance that account granted to the message sender.
type BurnFromMsg struct {
	From   HumanAddress `json:"from"`
	Amount Uint128      `json:"amount"`
}

func (m *BurnFromMsg) UnmarshalJSON(data []byte) error {
	type internalBurnFromMsg struct {
		From   *HumanAddress `json:"from"`
		Amount *Uint128      `json:"amount"`
	}
	var tmp internalBurnFromMsg
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	if tmp.From == nil {
		return fmt.Errorf("invalid BurnFromMsg: missing field 'from'")
	}
	if tmp.Amount == nil {
		return fmt.Errorf("invalid BurnFromMsg: missing field 'amount'")
	}
	*m = BurnFromMsg{From: *tmp.From, Amount: *tmp.Amount}
	return nil
}

// MintMsg creates new tokens for a recipient. Only the configured minter
// may send this.
type MintMsg struct {
	Recipient HumanAddress `json:"recipient"`
	Amount    Uint128      `json:"amount"`
}

func (m *MintMsg) UnmarshalJSON(data []byte) error {
	type internalMintMsg struct {
		Recipient *HumanAddress `json:"recipient"`
		Amount    *Uint128      `json:"amount"`
	}
	var tmp internalMintMsg
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	if tmp.Recipient == nil {
		return fmt.Errorf("invalid MintMsg: missing field 'recipient'")
	}
	if tmp.Amount == nil {
		return fmt.Errorf("invalid MintMsg: missing field 'amount'")
	}
	*m = MintMsg{Recipient: *tmp.Recipient, Amount: *tmp.Amount}
	return nil
}
