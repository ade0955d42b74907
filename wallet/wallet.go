// Package wallet derives the session identity from the SSH key material. An
// ed25519 session key doubles as the wallet keypair: its 32-byte public key,
// base58-encoded, is the wallet address. Sessions without a public key are
// treated as disconnected and have to reconnect with a key to act.
package wallet

import (
	"crypto/ed25519"
	"crypto/sha256"

	"github.com/charmbracelet/ssh"
	"github.com/mr-tron/base58"
	"github.com/solwave/fanwall/domain"
	gossh "golang.org/x/crypto/ssh"
)

// FromPublicKey maps an SSH public key to a wallet identity. Non-ed25519 keys
// get a stable derived address (sha256 of the wire encoding) so any key type
// can hold a wallet, while ed25519 keys map to their native address.
func FromPublicKey(key ssh.PublicKey) domain.Identity {
	if key == nil {
		return domain.Disconnected
	}

	if ck, ok := key.(gossh.CryptoPublicKey); ok {
		if ed, ok := ck.CryptoPublicKey().(ed25519.PublicKey); ok && len(ed) == ed25519.PublicKeySize {
			return domain.Identity{Connected: true, Address: base58.Encode(ed)}
		}
	}

	sum := sha256.Sum256(key.Marshal())
	return domain.Identity{Connected: true, Address: base58.Encode(sum[:])}
}

// FromSession derives the identity for an SSH session. Password or no-auth
// sessions carry no public key and come back disconnected.
func FromSession(s ssh.Session) domain.Identity {
	return FromPublicKey(s.PublicKey())
}
