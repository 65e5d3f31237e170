package nostr

import (
	"encoding/json"
	"testing"

	"strike-connect/internal/core/domain"

	gonostr "github.com/nbd-wtf/go-nostr"
	"github.com/nbd-wtf/go-nostr/nip04"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testKeys struct {
	servicePriv string
	servicePub  string
	connSecret  string
	connPub     string
	authorized  string
}

func newTestKeys(t *testing.T) testKeys {
	t.Helper()
	k := testKeys{
		servicePriv: GenerateSecret(),
		connSecret:  GenerateSecret(),
	}
	var err error
	k.servicePub, err = PublicKey(k.servicePriv)
	require.NoError(t, err)
	k.connPub, err = PublicKey(k.connSecret)
	require.NoError(t, err)
	k.authorized, err = PublicKey(GenerateSecret())
	require.NoError(t, err)
	return k
}

// clientEncrypt encrypts the way a wallet client does: with its own
// secret and the service pubkey.
func clientEncrypt(t *testing.T, k testKeys, plain string) string {
	t.Helper()
	shared, err := nip04.ComputeSharedSecret(k.servicePub, k.connSecret)
	require.NoError(t, err)
	ct, err := nip04.Encrypt(plain, shared)
	require.NoError(t, err)
	return ct
}

func TestCodec_DecryptClientRequest(t *testing.T) {
	k := newTestKeys(t)
	codec, err := NewCodec(k.servicePriv, k.connSecret, k.authorized)
	require.NoError(t, err)
	assert.Equal(t, k.servicePub, codec.ServicePubkey())

	content := clientEncrypt(t, k, `{"method":"pay_invoice","params":{"invoice":"lnbc1x","amount":21}}`)
	req, err := codec.Decrypt(content)
	require.NoError(t, err)
	assert.Equal(t, domain.MethodPayInvoice, req.Method)
	assert.Equal(t, "lnbc1x", req.StringParam("invoice"))
	amount, ok := req.Int64Param("amount")
	assert.True(t, ok)
	assert.Equal(t, int64(21), amount)
}

func TestCodec_DecryptFailures(t *testing.T) {
	k := newTestKeys(t)
	codec, err := NewCodec(k.servicePriv, k.connSecret, k.authorized)
	require.NoError(t, err)

	valid := clientEncrypt(t, k, `{"method":"get_balance"}`)
	flip := byte('A')
	if valid[0] == 'A' {
		flip = 'B'
	}
	tampered := string(flip) + valid[1:]

	other := newTestKeys(t)
	wrongKey := clientEncrypt(t, other, `{"method":"get_balance"}`)

	for name, content := range map[string]string{
		"empty":      "",
		"garbage":    "not base64?iv=nope",
		"tampered":   tampered,
		"wrong key":  wrongKey,
		"truncated":  valid[:10],
		"not json":   clientEncrypt(t, k, "hello"),
		"json array": clientEncrypt(t, k, `[1,2,3]`),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := codec.Decrypt(content)
			assert.Error(t, err)
		})
	}
}

func TestCodec_EncryptAndSign(t *testing.T) {
	k := newTestKeys(t)
	codec, err := NewCodec(k.servicePriv, k.connSecret, k.authorized)
	require.NoError(t, err)

	resp := &domain.Response{
		ResultType: domain.MethodGetBalance,
		Result:     &domain.BalanceResult{Balance: 5000},
	}
	ev, err := codec.EncryptAndSign(resp, "req-123")
	require.NoError(t, err)

	assert.Equal(t, domain.KindWalletResponse, ev.Kind)
	assert.Equal(t, k.servicePub, ev.PubKey)
	assert.Equal(t, [][]string{{"p", k.authorized}, {"e", "req-123"}}, ev.Tags)

	native := fromSignedEvent(ev)
	ok, err := native.CheckSignature()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, native.GetID(), ev.ID)

	// The client can read the response with its own key.
	shared, err := nip04.ComputeSharedSecret(k.servicePub, k.connSecret)
	require.NoError(t, err)
	plain, err := nip04.Decrypt(ev.Content, shared)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(plain), &decoded))
	assert.Equal(t, "get_balance", decoded["result_type"])
	assert.Equal(t, map[string]any{"balance": float64(5000)}, decoded["result"])
	assert.NotContains(t, decoded, "error")
}

func TestCodec_ErrorResponseOmitsResult(t *testing.T) {
	k := newTestKeys(t)
	codec, err := NewCodec(k.servicePriv, k.connSecret, k.authorized)
	require.NoError(t, err)

	ev, err := codec.EncryptAndSign(&domain.Response{
		ResultType: domain.MethodUnknown,
		Error:      &domain.ResponseError{Code: "UNAUTHORIZED", Message: "Unable to decrypt NWC request content."},
	}, "req-1")
	require.NoError(t, err)

	req, err := codec.Decrypt(ev.Content)
	require.NoError(t, err, "the shared secret is symmetric")
	assert.Equal(t, "", req.Method)

	shared, _ := nip04.ComputeSharedSecret(k.servicePub, k.connSecret)
	plain, err := nip04.Decrypt(ev.Content, shared)
	require.NoError(t, err)
	assert.JSONEq(t, `{"result_type":"unknown","error":{"code":"UNAUTHORIZED","message":"Unable to decrypt NWC request content."}}`, plain)
}

func TestNewCodec_InvalidKey(t *testing.T) {
	_, err := NewCodec("zz", GenerateSecret(), "")
	assert.Error(t, err)
}

func TestEventConversionRoundTrip(t *testing.T) {
	ev := gonostr.Event{
		ID: "id", PubKey: "pk", CreatedAt: 42, Kind: 1,
		Tags: gonostr.Tags{{"e", "x"}}, Content: "c", Sig: "s",
	}
	back := fromSignedEvent(toSignedEvent(&ev))
	assert.Equal(t, ev, back)
}
