// mandelgrid renders escape-time images of the Mandelbrot set on the local
// CPU. `mandelgrid render` writes a color-mapped PNG; `mandelgrid serve`
// renders progressively and streams finished tiles to browsers over a
// websocket.
package main

import (
	"log"
	"os"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		log.Printf("error: %v", err)
		os.Exit(1)
	}
}
