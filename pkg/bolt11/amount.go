// Package bolt11 extracts the amount carried in a Lightning invoice's
// human-readable part. The checksum is verified with bech32; the tagged
// fields and signature are left to the payment processor.
package bolt11

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

var (
	// ErrNoAmount is returned for invoices that do not encode an amount.
	ErrNoAmount = errors.New("bolt11: invoice has no amount")
	// ErrInvalidAmount is returned when the amount section is malformed.
	ErrInvalidAmount = errors.New("bolt11: invalid amount")
)

const msatPerBTC = 100_000_000_000

// msat per unit for each multiplier; pico is handled separately since it
// is a tenth of a millisatoshi.
var multipliers = map[byte]int64{
	'm': msatPerBTC / 1_000,
	'u': msatPerBTC / 1_000_000,
	'n': msatPerBTC / 1_000_000_000,
}

// AmountMsat returns the invoice amount in millisatoshis.
func AmountMsat(invoice string) (int64, error) {
	hrp, _, err := bech32.DecodeNoLimit(strings.TrimSpace(invoice))
	if err != nil {
		return 0, fmt.Errorf("bolt11: decode: %w", err)
	}
	if !strings.HasPrefix(hrp, "ln") {
		return 0, fmt.Errorf("bolt11: unexpected prefix %q", hrp)
	}

	rest := hrp[2:]
	idx := strings.IndexAny(rest, "0123456789")
	if idx < 0 {
		return 0, ErrNoAmount
	}
	if idx == 0 {
		return 0, fmt.Errorf("bolt11: missing network in %q", hrp)
	}
	return parseAmount(rest[idx:])
}

// AmountSats returns the invoice amount in satoshis, rounding sub-satoshi
// amounts up so a quota check never undercounts.
func AmountSats(invoice string) (int64, error) {
	msat, err := AmountMsat(invoice)
	if err != nil {
		return 0, err
	}
	return (msat + 999) / 1000, nil
}

func parseAmount(s string) (int64, error) {
	if s == "" {
		return 0, ErrNoAmount
	}

	unit := s[len(s)-1]
	digits := s
	if unit < '0' || unit > '9' {
		digits = s[:len(s)-1]
	} else {
		unit = 0
	}

	value, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	switch unit {
	case 0:
		return checkedMul(value, msatPerBTC, s)
	case 'p':
		if value%10 != 0 {
			return 0, fmt.Errorf("%w: sub-millisatoshi amount %q", ErrInvalidAmount, s)
		}
		return value / 10, nil
	default:
		mult, ok := multipliers[unit]
		if !ok {
			return 0, fmt.Errorf("%w: unknown multiplier %q", ErrInvalidAmount, string(unit))
		}
		return checkedMul(value, mult, s)
	}
}

func checkedMul(value, mult int64, s string) (int64, error) {
	if value > (1<<63-1)/mult {
		return 0, fmt.Errorf("%w: overflow %q", ErrInvalidAmount, s)
	}
	return value * mult, nil
}
