// Package pay is the payment capability boundary. A tip is the one action
// here with real-world consequence, so a timeout is reported as ambiguous
// (possibly sent) and is never retried by this package or its callers —
// re-initiation is a deliberate user decision.
package pay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// ErrAmbiguous marks a payment whose outcome is unknown (timeout after
// dispatch). It must not be treated as "not sent".
var ErrAmbiguous = errors.New("payment outcome ambiguous")

// Payer dispatches a tip of the given lamports to a recipient wallet.
type Payer interface {
	SendTip(lamports uint64, recipient string) error
}

// RpcPayer sends tips through a JSON-RPC endpoint. Requests are throttled so
// a burst of tip attempts cannot hammer the RPC node.
type RpcPayer struct {
	Url        string
	HTTPClient *http.Client
	limiter    *rate.Limiter
}

var _ Payer = (*RpcPayer)(nil)

func NewRpcPayer(url string) *RpcPayer {
	return &RpcPayer{
		Url:        url,
		HTTPClient: &http.Client{Timeout: 20 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(time.Second), 2),
	}
}

type rpcRequest struct {
	Jsonrpc string        `json:"jsonrpc"`
	Id      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type tipParams struct {
	Lamports  uint64 `json:"lamports"`
	Recipient string `json:"recipient"`
}

func (p *RpcPayer) SendTip(lamports uint64, recipient string) error {
	if lamports == 0 {
		return fmt.Errorf("tip amount must be positive")
	}
	if recipient == "" {
		return fmt.Errorf("tip recipient missing")
	}

	if err := p.limiter.Wait(context.Background()); err != nil {
		return fmt.Errorf("payment throttled: %w", err)
	}

	req := rpcRequest{
		Jsonrpc: "2.0",
		Id:      1,
		Method:  "sendTip",
		Params:  []interface{}{tipParams{Lamports: lamports, Recipient: recipient}},
	}
	buf, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode payment request: %w", err)
	}

	resp, err := p.HTTPClient.Post(p.Url, "application/json", bytes.NewReader(buf))
	if err != nil {
		// A timeout after dispatch may mean the payment went through
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return fmt.Errorf("%w: %v", ErrAmbiguous, err)
		}
		return fmt.Errorf("payment request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("payment endpoint returned http %d", resp.StatusCode)
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		// The request reached the node; the outcome is unknown
		return fmt.Errorf("%w: unreadable response: %v", ErrAmbiguous, err)
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("payment rejected: %s", rpcResp.Error.Message)
	}
	return nil
}

var current Payer

// Init wires the RPC payer from config.
func Init(rpcUrl string) {
	current = NewRpcPayer(rpcUrl)
}

// Get returns the active payer.
func Get() Payer {
	return current
}

// Set swaps the active payer. Used by tests.
func Set(p Payer) {
	current = p
}
