package web

// Event is a setting a client may change, sent as [System, Event, value].
type Event = uint8

const (
	_ Event = iota
	Compression
	CompressionLevel
	FramePatching
	FrameSkipping
	FramePatchingRatio
	KeepAlive = 254
	Closing   = 255
)

// System prefixes messages from clients that change hub settings.
const System = 10

// Type is the first byte of every message sent to clients.
type Type = uint8

const (
	Frame          Type = iota // [Frame, idx lo, idx hi, frame...]
	FramePatch                 // [FramePatch, idx lo, idx hi, patch...]
	FrameSkip                  // [FrameSkip, frames skipped (uint32, trailing zeros trimmed)]
	ClientInfo                 // [ClientInfo, info, compression level, patch ratio] or a setting change
	PatchCache                 // [PatchCache, idx...], replay a cached patch
	PatchCacheSync             // [PatchCacheSync, (len16, idx16, data)...]
	FrameCache                 // [FrameCache, idx...], replay a cached frame
	FrameCacheSync             // [FrameCacheSync, (len16, idx16, data)...]
	FrameSync                  // [FrameSync, brotli compressed frame]
	ClientClosing              // [ClientClosing, client ID]
	ServerInfo                 // [ServerInfo, (client ID, latency ms lo, latency ms hi)...]
)
