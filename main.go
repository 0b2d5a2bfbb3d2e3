//go:build !libretro

package main

import (
	"flag"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/user-none/smscore/cli"
	bridge "github.com/user-none/smscore/bridge/ebiten"
	"github.com/user-none/smscore/emu"
	"github.com/user-none/smscore/romloader"
)

func main() {
	romPath := flag.String("rom", "", "path to ROM file")
	regionFlag := flag.String("region", "auto", "region: auto, ntsc, or pal")
	cropBorder := flag.Bool("crop-border", false, "crop left border when blank")
	flag.Parse()

	if *romPath == "" {
		log.Fatal("usage: -rom <path> [-region auto|ntsc|pal] [-crop-border]")
	}

	romData, _, err := romloader.LoadROM(*romPath)
	if err != nil {
		log.Fatalf("Failed to load ROM: %v", err)
	}

	var region emu.Region
	switch strings.ToLower(*regionFlag) {
	case "auto":
		region, _ = emu.DetectRegionFromROM(romData)
	case "ntsc":
		region = emu.RegionNTSC
	case "pal":
		region = emu.RegionPAL
	default:
		log.Fatalf("Invalid region: %s (use auto, ntsc, or pal)", *regionFlag)
	}

	timing := emu.GetTimingForRegion(region)
	e := bridge.NewEmulator(romData, region)

	ebiten.SetWindowSize(emu.ScreenWidth*2, 192*2) // Default size for 192-line mode
	ebiten.SetWindowTitle("smscore")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(348, 348, -1, -1) // Min 348x348, no max
	ebiten.SetTPS(timing.FPS)

	runner := cli.NewRunner(e, *cropBorder)
	defer runner.Close()
	defer e.Close()

	if err := ebiten.RunGame(runner); err != nil {
		log.Fatal(err)
	}
}
