package web

import "sync"

type cacheEntry struct {
	hash uint64
	data []byte
}

// cache is a ring of the most recently sent payloads, so clients can be
// told to replay one by index instead of receiving it again.
type cache struct {
	entries []cacheEntry
	idx     int

	sync.RWMutex
}

func newCache(size int) *cache {
	return &cache{entries: make([]cacheEntry, size)}
}

// index returns the slot holding hash, or -1.
func (c *cache) index(hash uint64) int {
	for i, e := range c.entries {
		if e.data != nil && e.hash == hash {
			return i
		}
	}
	return -1
}

// add stores data in the oldest slot and returns the slot.
func (c *cache) add(hash uint64, data []byte) int {
	i := c.idx
	c.entries[i] = cacheEntry{hash: hash, data: data}
	c.idx = (c.idx + 1) % len(c.entries)
	return i
}

// sync encodes the filled slots as (length, index, data) records.
func (c *cache) sync() []byte {
	var out []byte
	for i, e := range c.entries {
		if len(e.data) == 0 {
			continue
		}
		out = append(out, le16(len(e.data))...)
		out = append(out, le16(i)...)
		out = append(out, e.data...)
	}
	return out
}
