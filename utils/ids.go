// utils/ids.go - Public identifier generation
package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const suffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewRegistrationID returns a shareable team identifier of the form
// HACK-<year>-<6 uppercase alphanumerics>, e.g. HACK-2026-K3QZ7A.
// Uniqueness is enforced by the storage index, not here; the caller retries
// generation on a collision.
func NewRegistrationID() string {
	return fmt.Sprintf("HACK-%d-%s", time.Now().Year(), randomSuffix(6))
}

// NewTransactionRef returns a payment reference of the form
// TXN-<unix millis>-<6 uppercase alphanumerics>.
func NewTransactionRef() string {
	return fmt.Sprintf("TXN-%d-%s", time.Now().UnixMilli(), randomSuffix(6))
}

func randomSuffix(n int) string {
	max := big.NewInt(int64(len(suffixAlphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken;
			// fall back to a time-derived index rather than panic mid-request.
			b[i] = suffixAlphabet[time.Now().UnixNano()%int64(len(suffixAlphabet))]
			continue
		}
		b[i] = suffixAlphabet[idx.Int64()]
	}
	return string(b)
}
