package main

import (
	"context"
	"image"
	"log"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/scalarwave/mandelgrid"
	"github.com/scalarwave/mandelgrid/palette"
	"github.com/scalarwave/mandelgrid/render"
)

// tileUpdate is one finished tile as sent to websocket viewers. Pix holds
// the tile's RGBA rows top to bottom; encoding/json transports it base64.
type tileUpdate struct {
	X    int     `json:"x"`
	Y    int     `json:"y"`
	W    int     `json:"w"`
	H    int     `json:"h"`
	Pix  []byte  `json:"pix"`
	Done float64 `json:"done"`
}

// hub fans finished tiles out to websocket subscribers and replays already
// finished tiles to late joiners, so every viewer converges on the full
// image no matter when it connects.
type hub struct {
	m           sync.Mutex
	finished    []tileUpdate
	subs        map[chan tileUpdate]struct{}
	totalPixels int
	donePixels  int
}

func newHub(totalPixels int) *hub {
	return &hub{
		subs:        make(map[chan tileUpdate]struct{}),
		totalPixels: totalPixels,
	}
}

// tileHook colorizes each completed tile and publishes it. It runs on
// render worker goroutines, reading only the tile's own buffer region.
func (h *hub) tileHook(job mandelgrid.Job, pal palette.Func) render.TileHook {
	return func(tile image.Rectangle, buf *mandelgrid.Buffer) {
		img := palette.Tile(buf, tile, job.MaxIter, pal, palette.Background)
		h.publish(tileUpdate{
			X:   tile.Min.X,
			Y:   tile.Min.Y,
			W:   tile.Dx(),
			H:   tile.Dy(),
			Pix: img.Pix,
		})
	}
}

func (h *hub) publish(u tileUpdate) {
	h.m.Lock()
	defer h.m.Unlock()

	h.donePixels += u.W * u.H
	u.Done = float64(h.donePixels) / float64(h.totalPixels)
	h.finished = append(h.finished, u)

	for ch := range h.subs {
		select {
		case ch <- u:
		default:
			// Subscriber stopped draining; drop it rather than stall
			// the render workers.
			delete(h.subs, ch)
			close(ch)
		}
	}
}

// subscribe registers a new viewer and returns the replay snapshot of tiles
// finished so far together with the live channel.
func (h *hub) subscribe() ([]tileUpdate, chan tileUpdate) {
	ch := make(chan tileUpdate, 1024)
	h.m.Lock()
	defer h.m.Unlock()
	replay := make([]tileUpdate, len(h.finished))
	copy(replay, h.finished)
	h.subs[ch] = struct{}{}
	return replay, ch
}

func (h *hub) unsubscribe(ch chan tileUpdate) {
	h.m.Lock()
	defer h.m.Unlock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
}

// websocketHandler upgrades the connection and streams tile updates until
// the viewer disconnects or the server shuts down.
func (h *hub) websocketHandler(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // TODO: tighten in prod
		})
		if err != nil {
			log.Println(err)
			return
		}
		defer c.CloseNow()
		log.Printf("viewer connected: %s", r.RemoteAddr)

		wctx, cancel := context.WithCancel(r.Context())
		defer cancel()
		go func() {
			select {
			case <-ctx.Done():
				cancel()
			case <-wctx.Done():
			}
		}()

		replay, ch := h.subscribe()
		defer h.unsubscribe(ch)

		for _, u := range replay {
			if err := wsjson.Write(wctx, c, u); err != nil {
				return
			}
		}
		for {
			select {
			case u, ok := <-ch:
				if !ok {
					return
				}
				if err := wsjson.Write(wctx, c, u); err != nil {
					return
				}
			case <-wctx.Done():
				return
			}
		}
	}
}
