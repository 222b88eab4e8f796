package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateCertificateNumber builds a candidate certificate number like
// CCW-1718000000000-9F3A2B1C. Callers must retry on a unique-constraint
// conflict; uniqueness is enforced by the database, not here.
func GenerateCertificateNumber() string {
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("CCW-%d-%s", time.Now().UnixMilli(), suffix)
}

// GenerateOrderNumber builds an order number like ORD-1718000000000-9F3A2B1C
func GenerateOrderNumber() string {
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}

// GenerateSecureToken returns a hex token for verification and reset links
func GenerateSecureToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
