package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "render progressively and stream tiles to browsers over a websocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	cmd.Flags().String("addr", ":8080", "HTTP listen address")
	return cmd
}

func runServe(ctx context.Context) error {
	job, err := jobFromConfig()
	if err != nil {
		return err
	}
	pal, err := paletteFromConfig()
	if err != nil {
		return err
	}

	h := newHub(job.Width * job.Height)
	eng, err := newEngine(h.tileHook(job, pal))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	go func() {
		start := time.Now()
		if _, err := eng.Render(ctx, job); err != nil {
			log.Printf("render: %v", err)
			return
		}
		log.Printf("full render took %s", time.Since(start))
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.websocketHandler(ctx))
	mux.HandleFunc("/", indexHandler(job.Width, job.Height))

	addr := viper.GetString("addr")
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("listening on http://localhost%s", addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func indexHandler(width, height int) http.HandlerFunc {
	page := fmt.Sprintf(indexPage, width, height)
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	}
}

// indexPage draws incoming tile frames onto a canvas, the same composition
// the native PNG path performs, just client-side.
const indexPage = `<!DOCTYPE html>
<html>
<head><title>mandelgrid</title><style>body{background:#111;color:#ddd;font-family:monospace}</style></head>
<body>
<div id="status">connecting…</div>
<canvas id="view" width="%d" height="%d"></canvas>
<script>
const canvas = document.getElementById("view");
const ctx = canvas.getContext("2d");
const status = document.getElementById("status");
const proto = location.protocol === "https:" ? "wss" : "ws";
const ws = new WebSocket(proto + "://" + location.host + "/ws");
ws.onmessage = (ev) => {
  const u = JSON.parse(ev.data);
  const bytes = Uint8ClampedArray.from(atob(u.pix), c => c.charCodeAt(0));
  ctx.putImageData(new ImageData(bytes, u.w, u.h), u.x, u.y);
  status.textContent = "rendered " + (100 * u.done).toFixed(1) + "%%";
};
ws.onclose = () => { status.textContent += " (disconnected)"; };
</script>
</body>
</html>
`
