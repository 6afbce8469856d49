//go:build !tinygo

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var ms uint64
	flag.Uint64Var(&ms, "headless", 0, "Run without a window for N board milliseconds.")
	flag.Parse()

	rig, err := newSimRig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := rig.panel.Start(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if ms > 0 {
		for i := uint64(0); i < ms; i++ {
			rig.step()
		}
		return
	}

	ebiten.SetWindowTitle("motmon")
	ebiten.SetWindowSize(128*simScale, 64*simScale)
	ebiten.SetTPS(simTPS)
	if err := ebiten.RunGame(&simGame{rig: rig}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
