package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"levelengine/internal/audio"
	"levelengine/internal/config"
	"levelengine/internal/level"
)

func main() {
	pflag.String("config", "config.yaml", "path to the configuration file")
	pflag.String("level", "", "level image to open (defaults to the first configured level)")
	pflag.Bool("check", false, "compile the levels and exit without opening a window")
	pflag.Parse()

	v := viper.New()
	v.SetEnvPrefix("LEVELENGINE")
	v.AutomaticEnv()
	if err := v.BindPFlags(pflag.CommandLine); err != nil {
		log.Fatalf("Failed to bind flags: %v", err)
	}

	cfg, err := config.LoadConfig(v.GetString("config"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	levels := cfg.Levels
	if path := v.GetString("level"); path != "" {
		levels = append([]string{path}, levels...)
	}
	if len(levels) == 0 {
		log.Fatal("No levels configured")
	}

	if v.GetBool("check") {
		if err := check(cfg, levels); err != nil {
			log.Fatal(err)
		}
		return
	}

	sounder := audio.New(cfg)
	if err := sounder.Initialize(); err != nil {
		log.Printf("Warning: audio disabled: %v", err)
	}
	defer sounder.Cleanup()

	vw, err := newViewer(cfg, levels, sounder)
	if err != nil {
		log.Fatalf("Failed to start viewer: %v", err)
	}
	defer vw.Close()

	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if err := ebiten.RunGame(vw); err != nil {
		log.Fatal(err)
	}
}

// check compiles every level headlessly and reports all failures at once
func check(cfg *config.Config, levels []string) error {
	var failed []string
	for _, path := range levels {
		l, err := level.Load(path, level.Options{Config: cfg})
		if err != nil {
			failed = append(failed, err.Error())
			continue
		}
		if _, err := l.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", path, err)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d levels failed:\n  %s", len(failed), len(levels), strings.Join(failed, "\n  "))
	}
	fmt.Printf("%d levels ok\n", len(levels))
	return nil
}
