package main

import (
	"flag"
	"log"

	garland "github.com/garland3d/garland"
)

func main() {
	configPath := flag.String("config", "", "optional YAML scene config")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cfg, err := garland.LoadSceneConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	app := garland.NewApp()
	app.UseModules(
		garland.LoggingModule{Debug: *debug},
		garland.TimeModule{},
		garland.WindowModule{
			Width:  cfg.WindowWidth,
			Height: cfg.WindowHeight,
			Title:  cfg.WindowTitle,
		},
		garland.GpuModule{},
		garland.AssetServerModule{},
		garland.OrbitCameraModule{},
		garland.SceneModule{Config: cfg},
		garland.OverlayModule{Text: cfg.Greeting},
		garland.RenderModule{Config: cfg},
	)
	app.Run()
}
