package types

import (
	"encoding/json"
	"fmt"
)

//------- Queries --------

// QueryMsg is the union of all read-only operations the token accepts.
// Exactly one of the fields is set on a valid instance.
type QueryMsg struct {
	GetBalance *GetBalanceQuery `json:"get_balance,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler for QueryMsg.
// It rejects documents where no recognized variant key is present.
func (m *QueryMsg) UnmarshalJSON(data []byte) error {
	type internalQueryMsg struct {
		GetBalance *GetBalanceQuery `json:"get_balance"`
	}
	var tmp internalQueryMsg
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	if tmp.GetBalance == nil {
		return fmt.Errorf("invalid QueryMsg: no variant set")
	}
	*m = QueryMsg{GetBalance: tmp.GetBalance}
	return nil
}

// GetBalanceQuery asks for the current balance of one account.
type GetBalanceQuery struct {
	User HumanAddress `json:"user"`
}

func (m *GetBalanceQuery) UnmarshalJSON(data []byte) error {
	type internalGetBalanceQuery struct {
		User *HumanAddress `json:"user"`
	}
	var tmp internalGetBalanceQuery
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	if tmp.User == nil {
		return fmt.Errorf("invalid GetBalanceQuery: missing field 'user'")
	}
	*m = GetBalanceQuery{User: *tmp.User}
	return nil
}

// BalanceResponse is the answer to a get_balance query. Accounts that were
// never touched report a zero amount.
type BalanceResponse struct {
	Amount Uint128 `json:"amount"`
}
