package domain

// Identity is the wallet-derived user of the current session. It is set once
// by the wallet layer when the session opens and read-only afterwards.
type Identity struct {
	Connected bool
	Address   string
}

// Disconnected is the zero identity for sessions without a wallet key.
var Disconnected = Identity{}
