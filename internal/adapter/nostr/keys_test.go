package nostr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecretAndPublicKey(t *testing.T) {
	sk := GenerateSecret()
	assert.Len(t, sk, 64)
	assert.NotEqual(t, sk, GenerateSecret())

	pub, err := PublicKey(sk)
	require.NoError(t, err)
	assert.Len(t, pub, 64)

	_, err = PublicKey("not-hex")
	assert.Error(t, err)
}

func TestConnectionURI(t *testing.T) {
	uri := ConnectionURI("abcd", "wss://relay.example.com/path", "s3cr3t")
	assert.Equal(t, "nostr+walletconnect://abcd?relay=wss%3A%2F%2Frelay.example.com%2Fpath&secret=s3cr3t", uri)

	pub, relay, secret, err := ParseConnectionURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "abcd", pub)
	assert.Equal(t, "wss://relay.example.com/path", relay)
	assert.Equal(t, "s3cr3t", secret)
}

func TestParseConnectionURI_Invalid(t *testing.T) {
	for _, bad := range []string{
		"https://abcd?relay=x&secret=y",
		"nostr+walletconnect://abcd?relay=x",
		"nostr+walletconnect://?relay=x&secret=y",
		"::",
	} {
		_, _, _, err := ParseConnectionURI(bad)
		assert.Error(t, err, bad)
	}
}
