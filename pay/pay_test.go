package pay

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSendTipSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"sig123"}`))
	}))
	defer srv.Close()

	p := NewRpcPayer(srv.URL)
	if err := p.SendTip(10_000_000, "walletA"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSendTipRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32000,"message":"insufficient funds"}}`))
	}))
	defer srv.Close()

	p := NewRpcPayer(srv.URL)
	err := p.SendTip(10_000_000, "walletA")
	if err == nil {
		t.Fatal("expected error for rejected payment")
	}
	if errors.Is(err, ErrAmbiguous) {
		t.Error("a rejection is a definite failure, not ambiguous")
	}
}

func TestSendTipTimeoutIsAmbiguous(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	p := NewRpcPayer(srv.URL)
	p.HTTPClient.Timeout = 50 * time.Millisecond

	err := p.SendTip(10_000_000, "walletA")
	if !errors.Is(err, ErrAmbiguous) {
		t.Fatalf("timeout should be ambiguous, got: %v", err)
	}
}

func TestSendTipValidation(t *testing.T) {
	p := NewRpcPayer("http://unused.invalid")

	if err := p.SendTip(0, "walletA"); err == nil {
		t.Error("zero lamports must be rejected before any call")
	}
	if err := p.SendTip(1, ""); err == nil {
		t.Error("empty recipient must be rejected before any call")
	}
}
