package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewEntityID produces a human-readable dealer-scoped identifier such as
// "RNT-9F2C41AB". Uniqueness is backed by the unique (dealerId, id) index on
// each collection.
func NewEntityID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(uuid.New().String()[:8]))
}
