package toolchain

import (
	"crypto/sha256"
	"encoding/hex"
)

// fingerprintLength is the number of hex characters kept from the digest.
const fingerprintLength = 16

// Fingerprint returns a short, deterministic digest of the configuration that
// affects the shared artifact: the toolchain root and the extra compiler
// arguments, in order.
func Fingerprint(root string, extraArgs []string) string {
	h := sha256.New()
	h.Write([]byte(root))
	for _, a := range extraArgs {
		// Separator keeps ["-a", "b"] and ["-ab"] apart.
		h.Write([]byte{0})
		h.Write([]byte(a))
	}
	return hex.EncodeToString(h.Sum(nil))[:fingerprintLength]
}
