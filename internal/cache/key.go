// Package cache is an in-memory query cache in front of the catalog client.
//
// Every distinct Key owns one entry. Concurrent requests for an entry share a
// single in-flight fetch, fresh entries are served without network calls and
// paginated entries grow one page at a time.
package cache

import (
	"strconv"
	"strings"
)

// Key identifies a cache entry.
type Key struct {
	Resource string
	Params   string
}

// NewKey joins params in the given order.
func NewKey(resource string, params ...string) Key {
	return Key{Resource: resource, Params: strings.Join(params, "&")}
}

func (k Key) String() string {
	if k.Params == "" {
		return k.Resource
	}
	return k.Resource + "?" + k.Params
}

// flightKey identifies the in-flight request for a key. Page 0 is a full
// load or refetch, page n > 0 is a load-more of page n.
func flightKey(k Key, page int) string {
	return k.String() + "#" + strconv.Itoa(page)
}
