// Command g3dview renders a procedural scene headlessly.
//
// Every frame is drawn by the software rasterizer and written as a PNG.
// The same frame is then replayed through the hardware rasterizer in
// recording mode, which logs the draw commands a GPU would receive.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/gogpu/g3d"
	"github.com/gogpu/g3d/render"
)

// frameStep is the simulated time between frames, in seconds.
const frameStep = float32(1) / 60

func main() {
	var (
		width   = flag.Int("width", 640, "image width")
		height  = flag.Int("height", 480, "image height")
		output  = flag.String("output", "frame", "output file prefix")
		frames  = flag.Int("frames", 1, "number of frames to render")
		config  = flag.String("config", "", "YAML render configuration")
		workers = flag.Int("workers", 0, "software rasterizer workers, 0 uses GOMAXPROCS")
		overlay = flag.Bool("overlay", true, "print the configuration into each frame")
		verbose = flag.Bool("v", false, "log per-frame statistics")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	g3d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(*width, *height, *frames, *workers, *overlay, *output, *config); err != nil {
		log.Fatalf("g3dview: %v", err)
	}
}

func run(width, height, frames, workers int, overlay bool, output, configPath string) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid size %dx%d", width, height)
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	meshes, err := buildScene()
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}

	target := render.NewPixmapTarget(width, height)
	r, err := render.NewRenderer(
		render.WithSoftware(target),
		render.WithHardware(render.NullDeviceHandle{}, nil),
		render.WithWorkers(workers),
		render.WithOverlay(overlay),
	)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, m := range meshes {
		r.AddMesh(m)
	}

	cam := g3d.NewCamera(width, height)
	logger := g3d.Logger()

	pb := progressbar.Default(int64(frames))
	defer pb.Close()

	for i := range frames {
		state := cam.State()

		soft := cfg
		soft.Rasterizer = g3d.RasterizerSoftware
		if err := r.RenderFrame(state, soft); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		path := fmt.Sprintf("%s_%03d.png", output, i)
		if err := target.SavePNG(path); err != nil {
			return err
		}
		logger.Debug("frame saved", "path", path, "stats", r.Stats())

		hard := cfg
		hard.Rasterizer = g3d.RasterizerHardware
		if err := r.RenderFrame(state, hard); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		logger.Debug("frame recorded", "commands", len(r.Hardware().Commands()), "stats", r.Stats())

		r.Update(frameStep, cfg)
		_ = pb.Add(1)
	}

	logger.Info("frames saved", "prefix", output, "frames", frames, "width", width, "height", height)
	return nil
}
