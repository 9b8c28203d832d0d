package providers

import (
	"encoding/binary"
	"tarotstats/internal/structures"

	"github.com/coocood/freecache"
)

// StatsCacheInterface holds encoded GET /api/stats responses per fid.
type StatsCacheInterface interface {
	Get(fid int64) ([]byte, bool)
	Set(fid int64, body []byte)
	Invalidate(fid int64)
}

type StatsCache struct {
	cache *freecache.Cache
	ttl   int
}

// NewStatsCache sizes the cache in megabytes. A disabled or zero-sized cache
// never hits.
func NewStatsCache(conf *structures.Config, logger Logger) StatsCacheInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Infof(TypeApp, "Stats cache disabled")
		return noStatsCache{}
	}

	ttl := max(int(conf.Cache.TTL.Seconds()), 1)
	logger.Infof(TypeApp, "Stats cache: %dMB, ttl %ds", conf.Cache.Size, ttl)

	return &StatsCache{
		cache: freecache.NewCache(conf.Cache.Size * 1024 * 1024),
		ttl:   ttl,
	}
}

func fidKey(fid int64) []byte {
	return binary.BigEndian.AppendUint64(make([]byte, 0, 8), uint64(fid))
}

func (c *StatsCache) Get(fid int64) ([]byte, bool) {
	body, err := c.cache.Get(fidKey(fid))
	return body, err == nil
}

func (c *StatsCache) Set(fid int64, body []byte) {
	_ = c.cache.Set(fidKey(fid), body, c.ttl)
}

func (c *StatsCache) Invalidate(fid int64) {
	c.cache.Del(fidKey(fid))
}

type noStatsCache struct{}

func (noStatsCache) Get(int64) ([]byte, bool) { return nil, false }
func (noStatsCache) Set(int64, []byte)        {}
func (noStatsCache) Invalidate(int64)         {}

// countedStatsCache reports every lookup as a hit or a miss.
type countedStatsCache struct {
	StatsCacheInterface
	metrics MetricsProviderInterface
}

func (c countedStatsCache) Get(fid int64) ([]byte, bool) {
	body, ok := c.StatsCacheInterface.Get(fid)
	if ok {
		c.metrics.IncCacheHits()
	} else {
		c.metrics.IncCacheMisses()
	}
	return body, ok
}

// NewInstrumentedStatsCache counts hits and misses. A disabled cache is
// returned bare so it does not report a miss per request.
func NewInstrumentedStatsCache(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) StatsCacheInterface {
	inner := NewStatsCache(conf, logger)
	if _, off := inner.(noStatsCache); off {
		return inner
	}
	return countedStatsCache{StatsCacheInterface: inner, metrics: metrics}
}
