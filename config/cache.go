package config

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

var (
	// DatasetCache holds the derived dataset keyed by snapshot version, so
	// the metric derivation runs once per snapshot and never again.
	DatasetCache *cache.Cache
	// ViewCache memoizes filtered views, aggregate tables and correlation
	// results keyed by filter-state fingerprint.
	ViewCache *cache.Cache
)

const (
	// The snapshot never changes after startup, so the derived dataset
	// never expires.
	datasetCacheDuration = cache.NoExpiration

	viewCacheDuration   = 30 * time.Minute
	viewCleanupInterval = 1 * time.Hour
)

func InitCache() {
	DatasetCache = cache.New(datasetCacheDuration, cache.NoExpiration)
	ViewCache = cache.New(viewCacheDuration, viewCleanupInterval)
}

func ClearAllCaches() {
	DatasetCache.Flush()
	ViewCache.Flush()
}

func GetCacheKey(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		key += ":" + fmt.Sprintf("%v", param)
	}
	return key
}
