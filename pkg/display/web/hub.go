// Package web streams frames to browsers over websockets. Frames are
// sent whole or as patches of the changed pixels, optionally brotli
// compressed, and recently sent payloads are cached on both ends by
// their xxhash.
package web

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/cespare/xxhash"
	"github.com/gorilla/websocket"
	"github.com/thelolagemann/gomeboy-ppu/internal/ppu"
	"github.com/thelolagemann/gomeboy-ppu/internal/types"
	"github.com/thelolagemann/gomeboy-ppu/pkg/log"
)

const (
	// FrameSize is the size of an RGBA frame.
	FrameSize = ppu.ScreenWidth * ppu.ScreenHeight * 4
	// patchUnit is a fifth of the screen in pixels. A frame is sent as
	// a patch when fewer than ratio*patchUnit pixels changed.
	patchUnit = ppu.ScreenWidth * ppu.ScreenHeight / 5
	cacheSize = 64
)

// Hub fans out frames to the connected clients.
type Hub struct {
	clients              map[*Client]bool
	broadcast            chan []byte
	register, unregister chan *Client
	done                 chan struct{}

	compression      bool
	compressionLevel int
	framePatching    bool
	framePatchRatio  int
	frameSkipping    bool
	currentID        uint8

	current, dirty         []byte
	framesSkipped          uint32
	patchCache, frameCache *cache

	log log.Logger
	mu  sync.Mutex
}

// Opt configures a Hub.
type Opt func(h *Hub)

// WithCompression brotli compresses frames at the given quality (0-11).
func WithCompression(level int) Opt {
	return func(h *Hub) {
		h.compression = true
		h.compressionLevel = level
	}
}

// WithFramePatching sends only the changed pixels when fewer than
// ratio fifths of the screen changed.
func WithFramePatching(ratio int) Opt {
	return func(h *Hub) {
		h.framePatching = true
		h.framePatchRatio = ratio
	}
}

// WithFrameSkipping drops frames identical to the previous one, and
// tells clients how many were skipped with the next frame.
func WithFrameSkipping() Opt {
	return func(h *Hub) {
		h.frameSkipping = true
	}
}

// WithLogger sets the logger for connection and encoding events.
func WithLogger(l log.Logger) Opt {
	return func(h *Hub) {
		h.log = l
	}
}

// NewHub returns a Hub. Run must be called for frames to be delivered.
func NewHub(opts ...Opt) *Hub {
	h := &Hub{
		clients:          make(map[*Client]bool),
		broadcast:        make(chan []byte, 16),
		register:         make(chan *Client),
		unregister:       make(chan *Client),
		done:             make(chan struct{}),
		compressionLevel: 7,
		framePatchRatio:  1,
		current:          make([]byte, FrameSize),
		dirty:            make([]byte, FrameSize),
		patchCache:       newCache(cacheSize),
		frameCache:       newCache(cacheSize),
		log:              log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run delivers frames to clients until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	t := time.NewTicker(time.Second)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.Send)
				delete(h.clients, c)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
			h.log.Infof("web: client %d connected from %s", c.ID, c.RemoteAddr)
		case c := <-h.unregister:
			if _, ok := h.clients[c]; !ok {
				continue
			}
			delete(h.clients, c)
			close(c.Send)
			h.log.Infof("web: client %d disconnected after %s", c.ID, time.Since(c.connectedAt).Round(time.Second))
			h.send([]byte{ClientClosing, c.ID})
		case msg := <-h.broadcast:
			h.send(msg)
		case <-t.C:
			var data []byte
			for c := range h.clients {
				data = append(data, c.ID)
				data = append(data, le16(int(c.latency()))...)
			}
			h.send(append([]byte{ServerInfo}, data...))
		}
	}
}

// send queues msg for every client, dropping clients that fell behind.
func (h *Hub) send(msg []byte) {
	for c := range h.clients {
		select {
		case c.Send <- msg:
		default:
			close(c.Send)
			delete(h.clients, c)
			h.log.Errorf("web: dropped client %d, send buffer full", c.ID)
		}
	}
}

// Handler returns the websocket endpoint, served at /.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.serveWS)
	return mux
}

// ListenAndServe serves Handler on addr until ctx is done.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: h.Handler()}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()

	h.log.Infof("web: listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web: %w", err)
	}
	return nil
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorf("web: upgrading connection: %v", err)
		return
	}

	c := h.newClient(conn, r)

	// the client is not registered yet, so nothing else is queued
	c.Send <- h.clientInfo()
	for _, msg := range h.sync() {
		c.Send <- msg
	}

	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.ReadPump()
	go c.WritePump()
}

// newClient wraps conn in a Client with the next ID.
func (h *Hub) newClient(conn *websocket.Conn, r *http.Request) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.currentID++
	return &Client{
		hub:         h,
		conn:        conn,
		Send:        make(chan []byte, 256),
		ID:          h.currentID,
		RemoteAddr:  r.RemoteAddr,
		UserAgent:   r.Header.Get("User-Agent"),
		connectedAt: time.Now(),
	}
}

// info returns a byte of information containing the various
// hub settings. The byte is constructed as follows:
//
//	Bit 2: Compression enabled
//	Bit 3: Frame patching enabled
//	Bit 4: Frame skipping enabled
func (h *Hub) info() byte {
	h.mu.Lock()
	defer h.mu.Unlock()

	var info uint8
	if h.compression {
		info |= types.Bit2
	}
	if h.framePatching {
		info |= types.Bit3
	}
	if h.frameSkipping {
		info |= types.Bit4
	}
	return info
}

// clientInfo returns the settings message sent to new clients.
func (h *Hub) clientInfo() []byte {
	info := h.info()

	h.mu.Lock()
	defer h.mu.Unlock()
	return []byte{ClientInfo, info, uint8(h.compressionLevel), uint8(h.framePatchRatio)}
}

// set applies a setting change sent by a client.
func (h *Hub) set(e Event, value uint8) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch e {
	case Compression:
		h.compression = value == 1
	case CompressionLevel:
		if value <= brotli.BestCompression {
			h.compressionLevel = int(value)
		}
	case FramePatching:
		h.framePatching = value == 1
	case FramePatchingRatio:
		h.framePatchRatio = int(value)
	case FrameSkipping:
		h.frameSkipping = value == 1
	}
}

// Push sends an RGBA frame of FrameSize bytes to every client. It
// blocks while the broadcast queue is full.
func (h *Hub) Push(frame []byte) {
	for _, msg := range h.encode(frame) {
		select {
		case h.broadcast <- msg:
		case <-h.done:
			return
		}
	}
}

// encode turns a frame into the messages to broadcast.
func (h *Hub) encode(frame []byte) [][]byte {
	if len(frame) != FrameSize {
		panic(fmt.Sprintf("web: frame of %d bytes, expected %d", len(frame), FrameSize))
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	// track dirty pixel count to determine appropriate update (patch vs full frame)
	dirtied := 0
	for i := range h.dirty {
		h.dirty[i] = 0
	}
	for i := 0; i < FrameSize; i += 4 {
		if !bytes.Equal(frame[i:i+4], h.current[i:i+4]) {
			copy(h.dirty[i:i+4], frame[i:i+4])
			dirtied++
		}
	}
	copy(h.current, frame)

	if dirtied == 0 && h.frameSkipping {
		h.framesSkipped++
		return nil
	}

	var msgs [][]byte
	if h.framesSkipped > 0 && h.frameSkipping {
		skipped := make([]byte, 4)
		binary.LittleEndian.PutUint32(skipped, h.framesSkipped)
		msgs = append(msgs, append([]byte{FrameSkip}, bytes.TrimRight(skipped, "\x00")...))
	}
	h.framesSkipped = 0

	kind, replay, buffer, c := Frame, FrameCache, h.current, h.frameCache
	if h.framePatching && dirtied < h.framePatchRatio*patchUnit {
		kind, replay, buffer, c = FramePatch, PatchCache, h.dirty, h.patchCache
	}

	output := append([]byte(nil), buffer...)
	if h.compression {
		var err error
		if output, err = compress(buffer, h.compressionLevel); err != nil {
			h.log.Errorf("web: compressing frame: %v", err)
			return msgs
		}
	}

	hash := xxhash.Sum64(output)

	c.Lock()
	defer c.Unlock()
	if idx := c.index(hash); idx != -1 {
		return append(msgs, append([]byte{replay}, bytes.TrimRight(le16(idx), "\x00")...))
	}
	idx := c.add(hash, output)
	return append(msgs, append(append([]byte{kind}, le16(idx)...), output...))
}

// sync returns the messages bringing a new client up to date: the
// current frame and both caches.
func (h *Hub) sync() [][]byte {
	h.mu.Lock()
	frame, err := compress(h.current, brotli.BestCompression)
	h.mu.Unlock()
	if err != nil {
		h.log.Errorf("web: compressing sync frame: %v", err)
		frame = nil
	}

	h.patchCache.RLock()
	patches := h.patchCache.sync()
	h.patchCache.RUnlock()

	h.frameCache.RLock()
	frames := h.frameCache.sync()
	h.frameCache.RUnlock()

	return [][]byte{
		append([]byte{FrameSync}, frame...),
		append([]byte{PatchCacheSync}, patches...),
		append([]byte{FrameCacheSync}, frames...),
	}
}

func compress(data []byte, level int) ([]byte, error) {
	var b bytes.Buffer
	w := brotli.NewWriterLevel(&b, level)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func le16(v int) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, uint16(v))
	return b
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 16,
	WriteBufferSize: 1024 * 16,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}
