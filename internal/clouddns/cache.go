package clouddns

import (
	dns "google.golang.org/api/dns/v1"
)

// ZoneCache memoizes zone lookups for the duration of one run, keyed by the
// registrable domain a record name belongs to. It is never invalidated;
// callers that mutate zones should use a fresh cache for the next run.
type ZoneCache struct {
	zones map[string]*dns.ManagedZone
}

// NewZoneCache returns an empty run-scoped zone cache.
func NewZoneCache() *ZoneCache {
	return &ZoneCache{zones: make(map[string]*dns.ManagedZone)}
}

// GetOrPopulate returns the cached zone for the given domain, calling lookup
// and storing the result on a miss.
func (c *ZoneCache) GetOrPopulate(domain string, lookup func() (*dns.ManagedZone, error)) (*dns.ManagedZone, error) {
	if zone, ok := c.zones[domain]; ok {
		return zone, nil
	}
	zone, err := lookup()
	if err != nil {
		return nil, err
	}
	c.zones[domain] = zone
	return zone, nil
}

// Len reports how many zones are cached.
func (c *ZoneCache) Len() int {
	return len(c.zones)
}
