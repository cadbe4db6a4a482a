package cache

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// AllShops is the shop segment of keys whose value spans several shops.
const AllShops = "*"

// ReportCache keeps computed reports for a short time. Keys are
// "<shopID>|<report>|<params>"; cross-shop reports use AllShops as shopID.
type ReportCache struct {
	store *gocache.Cache
}

// NewReportCache creates a cache whose entries live for ttl. A zero ttl disables caching.
func NewReportCache(ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		return &ReportCache{}
	}
	return &ReportCache{store: gocache.New(ttl, 2*ttl)}
}

// Key builds a cache key from a shop id and the parts that identify the report.
func Key(shopID string, parts ...string) string {
	return shopID + "|" + strings.Join(parts, "|")
}

// Get returns a cached value.
func (c *ReportCache) Get(key string) (any, bool) {
	if c == nil || c.store == nil {
		return nil, false
	}
	return c.store.Get(key)
}

// Set stores a value with the default ttl.
func (c *ReportCache) Set(key string, value any) {
	if c == nil || c.store == nil {
		return
	}
	c.store.SetDefault(key, value)
}

// InvalidateShop drops every entry of shopID and every cross-shop entry.
func (c *ReportCache) InvalidateShop(shopID string) {
	if c == nil || c.store == nil {
		return
	}
	shopPrefix := shopID + "|"
	allPrefix := AllShops + "|"
	for key := range c.store.Items() {
		if strings.HasPrefix(key, shopPrefix) || strings.HasPrefix(key, allPrefix) {
			c.store.Delete(key)
		}
	}
}

// Flush empties the cache.
func (c *ReportCache) Flush() {
	if c == nil || c.store == nil {
		return
	}
	c.store.Flush()
}
