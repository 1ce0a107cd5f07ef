// Package util holds small shared helpers.
package util

import (
	"crypto/rand"
	"math/big"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// codeAlphabet excludes ambiguous characters (0/O, 1/I/L) so vouchers survive
// being read aloud over a counter.
const codeAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

// codePrefix marks QANZ top-up codes.
const codePrefix = "QZ-"

// GenerateTopupCode returns a random single-use top-up code of the given
// length (random part, excluding the prefix).
func GenerateTopupCode(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("code length must be positive")
	}

	buf := make([]byte, length)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", errors.Wrap(err, "failed to read random bytes")
		}
		buf[i] = codeAlphabet[n.Int64()]
	}

	return codePrefix + string(buf), nil
}

// FormatAmount renders a money value with two decimal places, the display
// convention for both JOD and QANZ.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
