package server

import "encoding/json"

// JSON-RPC 2.0 envelope. The request id is kept raw so it is echoed back
// verbatim, whatever its JSON type.
type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      json.RawMessage `json:"id"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
	ID      json.RawMessage `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Protocol-tier error codes. Tool-tier failures never use these; they travel
// as failure-shaped values inside a successful response.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
)

const protocolVersion = "2.0"

// nullID is the id used when the request id could not be read at all.
var nullID = json.RawMessage("null")
