package repository

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// CacheKey fingerprints the given parts into a short stable key.
func CacheKey(namespace string, parts ...string) string {
	d := xxhash.New()
	for _, p := range parts {
		_, _ = d.WriteString(p)
		_, _ = d.WriteString("\x00")
	}
	return namespace + ":" + strconv.FormatUint(d.Sum64(), 16)
}
