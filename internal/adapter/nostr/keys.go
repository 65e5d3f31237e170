package nostr

import (
	"fmt"
	"net/url"

	gonostr "github.com/nbd-wtf/go-nostr"
)

const uriScheme = "nostr+walletconnect"

// GenerateSecret returns a new random hex secret key.
func GenerateSecret() string {
	return gonostr.GeneratePrivateKey()
}

// PublicKey derives the x-only hex public key of secret.
func PublicKey(secret string) (string, error) {
	pub, err := gonostr.GetPublicKey(secret)
	if err != nil {
		return "", fmt.Errorf("deriving public key: %w", err)
	}
	return pub, nil
}

// ConnectionURI builds the string a client pastes to pair with the service.
func ConnectionURI(servicePubkey, relayURI, connectionSecret string) string {
	q := url.Values{}
	q.Set("relay", relayURI)
	q.Set("secret", connectionSecret)
	return fmt.Sprintf("%s://%s?%s", uriScheme, servicePubkey, q.Encode())
}

// ParseConnectionURI splits a connection string into its parts.
func ParseConnectionURI(uri string) (servicePubkey, relayURI, secret string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", "", fmt.Errorf("parsing connection uri: %w", err)
	}
	if u.Scheme != uriScheme {
		return "", "", "", fmt.Errorf("unexpected scheme %q", u.Scheme)
	}
	servicePubkey = u.Host
	if servicePubkey == "" {
		servicePubkey = u.Opaque
	}
	q := u.Query()
	if servicePubkey == "" || q.Get("relay") == "" || q.Get("secret") == "" {
		return "", "", "", fmt.Errorf("connection uri missing pubkey, relay or secret")
	}
	return servicePubkey, q.Get("relay"), q.Get("secret"), nil
}
