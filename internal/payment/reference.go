package payment

import (
	"fmt"
	"strings"
	"time"
)

const referencePrefix = "ORD-"

// NewReference builds ORD-<orderID>-<unixMillis>.
func NewReference(orderID string, now time.Time) string {
	return fmt.Sprintf("%s%s-%d", referencePrefix, orderID, now.UnixMilli())
}

// ParseReference returns the order id embedded by NewReference.
func ParseReference(ref string) (string, error) {
	if !strings.HasPrefix(ref, referencePrefix) {
		return "", ErrInvalidReference
	}
	rest := strings.TrimPrefix(ref, referencePrefix)

	idx := strings.LastIndex(rest, "-")
	if idx <= 0 || idx == len(rest)-1 {
		return "", ErrInvalidReference
	}
	for _, r := range rest[idx+1:] {
		if r < '0' || r > '9' {
			return "", ErrInvalidReference
		}
	}
	return rest[:idx], nil
}
