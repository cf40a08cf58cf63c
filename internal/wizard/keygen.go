package wizard

import (
	"crypto/rand"
	"encoding/base64"
)

const masterKeyBytes = 24

// NewMasterKey mints a proxy master key: the sk- prefix plus 24 bytes of
// OS entropy, URL-safe base64 without padding.
func NewMasterKey() string {
	b := make([]byte, masterKeyBytes)
	_, _ = rand.Read(b)
	return "sk-" + base64.RawURLEncoding.EncodeToString(b)
}
