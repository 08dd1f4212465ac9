package blob

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewStorageKey generates an object key for an upload: a date-partitioned
// path with a nanosecond timestamp and a random suffix, ending in the
// validated extension. The random suffix keeps concurrent uploads within
// the same nanosecond from colliding.
func NewStorageKey(ext string) string {
	d := time.Now()
	return fmt.Sprintf("documents/%04d/%02d/%02d/%d-%s.%s",
		d.Year(), d.Month(), d.Day(), d.UnixNano(), uuid.New(), ext)
}
