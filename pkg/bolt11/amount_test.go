package bolt11

import (
	"errors"
	"testing"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encode builds a checksummed invoice-shaped string for the given
// human-readable part; the data section is arbitrary.
func encode(t *testing.T, hrp string) string {
	t.Helper()
	data := make([]byte, 52)
	for i := range data {
		data[i] = byte(i % 32)
	}
	s, err := bech32.Encode(hrp, data)
	require.NoError(t, err)
	return s
}

func TestAmountMsat(t *testing.T) {
	tests := []struct {
		hrp  string
		msat int64
	}{
		{"lnbc2500u", 250_000_000},
		{"lnbc20m", 2_000_000_000},
		{"lnbc1", 100_000_000_000},
		{"lnbc600n", 60_000},
		{"lnbc10p", 1},
		{"lntb1500n", 150_000},
		{"lnbcrt5u", 500_000},
	}

	for _, tt := range tests {
		t.Run(tt.hrp, func(t *testing.T) {
			msat, err := AmountMsat(encode(t, tt.hrp))
			require.NoError(t, err)
			assert.Equal(t, tt.msat, msat)
		})
	}
}

func TestAmountSats(t *testing.T) {
	sats, err := AmountSats(encode(t, "lnbc6u"))
	require.NoError(t, err)
	assert.Equal(t, int64(600), sats)

	// 1 msat rounds up to a whole sat.
	sats, err = AmountSats(encode(t, "lnbc10p"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), sats)
}

func TestAmountMsat_NoAmount(t *testing.T) {
	_, err := AmountMsat(encode(t, "lnbc"))
	assert.True(t, errors.Is(err, ErrNoAmount))
}

func TestAmountMsat_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		invoice func(t *testing.T) string
	}{
		{"bad checksum", func(t *testing.T) string {
			s := encode(t, "lnbc2500u")
			last := s[len(s)-1]
			repl := byte('q')
			if last == 'q' {
				repl = 'p'
			}
			return s[:len(s)-1] + string(repl)
		}},
		{"not an invoice", func(t *testing.T) string { return "hello world" }},
		{"wrong prefix", func(t *testing.T) string { return encode(t, "bc2500u") }},
		{"unknown multiplier", func(t *testing.T) string { return encode(t, "lnbc25x") }},
		{"sub-msat pico", func(t *testing.T) string { return encode(t, "lnbc15p") }},
		{"zero", func(t *testing.T) string { return encode(t, "lnbc0u") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AmountMsat(tt.invoice(t))
			assert.Error(t, err)
		})
	}
}
