package types

//------- Results -------------

// ContractResult represents the result of a contract call.
type ContractResult struct {
	Ok  *Response `json:"ok,omitempty"`
	Err string    `json:"error,omitempty"`
}

// Response defines the return value on a successful init/handle.
type Response struct {
	// base64-encoded bytes to return as ABCI.Data field
	Data []byte `json:"data"`
	// attributes for a log event to return over abci interface
	Attributes Array[EventAttribute] `json:"attributes"`
}

// EventAttribute represents an attribute of the log event.
type EventAttribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
