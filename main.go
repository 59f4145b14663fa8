package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/draw"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/echoflaresat/ribbons/config"
	"github.com/echoflaresat/ribbons/render"
	"github.com/echoflaresat/ribbons/sketch"
	"github.com/echoflaresat/ribbons/timeline"
)

type options struct {
	configPath *string
	sketch     *string
	ribbons    *int
	segments   *int
	total      *uint64
	seed       *int64
	workers    *int

	frames *int
	at     *string

	size        *int
	fov, dist   *float64
	tilt, yaw   *float64
	follow      *bool
	out, format *string
	verbose     *bool
	showHelp    *bool
}

func defineFlags(fs *flag.FlagSet) options {
	return options{
		configPath: fs.String("config", "", "TOML file with sketch settings; flags override it"),
		sketch:     fs.String("sketch", "dual", "Sketch to run: static, dual or staggered"),
		ribbons:    fs.Int("ribbons", 20, "Number of ribbons (ignored by static)"),
		segments:   fs.Int("segments", 0, "Segments per ribbon (0 = sketch default)"),
		total:      fs.Uint64("total", 240, "Frames per animation cycle"),
		seed:       fs.Int64("seed", 1, "Seed for the ribbon parameters"),
		workers:    fs.Int("workers", runtime.GOMAXPROCS(0), "Ribbons regenerated and frames encoded in parallel"),

		frames: fs.Int("frames", 240, "Number of frames to export"),
		at:     fs.String("at", "", "Comma separated frame numbers to export instead of a run"),

		size:   fs.Int("size", 512, "Output image size (width/height in pixels)"),
		fov:    fs.Float64("fov", 50.0, "Camera field of view in degrees"),
		dist:   fs.Float64("dist", 4.0, "Camera distance from the target"),
		tilt:   fs.Float64("tilt", 0.0, "Camera tilt in degrees"),
		yaw:    fs.Float64("yaw", 0.0, "Camera yaw in degrees"),
		follow: fs.Bool("follow", false, "Ease the camera toward the ribbons' centroid"),

		out:    fs.String("out", "frames", "Output directory"),
		format: fs.String("format", "png", "Image format: png or tiff"),

		verbose:  fs.Bool("v", false, "Log debug output, including degenerate frames"),
		showHelp: fs.Bool("h", false, "Show this help message"),
	}
}

func printHelp(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Ribbons - procedural ribbon sketch renderer

Usage:
  %[1]s [options]

`, os.Args[0])

	printGroup(fs, "Sketch Options", []string{"config", "sketch", "ribbons", "segments", "total", "seed", "workers"})
	printGroup(fs, "Frames", []string{"frames", "at"})
	printGroup(fs, "Camera Options", []string{"size", "fov", "dist", "tilt", "yaw", "follow"})
	printGroup(fs, "Output", []string{"out", "format"})
	printGroup(fs, "Misc", []string{"v", "h"})
}

func printGroup(fs *flag.FlagSet, title string, keys []string) {
	fmt.Fprintf(os.Stderr, "%s:\n", title)
	for _, name := range keys {
		if f := fs.Lookup(name); f != nil {
			fmt.Fprintf(os.Stderr, "  -%-8s %s (default %q)\n", f.Name, f.Usage, f.DefValue)
		}
	}
	fmt.Fprintln(os.Stderr)
}

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	opts := defineFlags(fs)
	fs.Usage = func() { printHelp(fs) }
	fs.Parse(os.Args[1:])

	if *opts.showHelp {
		printHelp(fs)
		return
	}

	level := slog.LevelInfo
	if *opts.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := loadConfig(fs, opts)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := os.MkdirAll(*opts.out, 0755); err != nil {
		log.Fatalf("Failed to create %s: %v", *opts.out, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	preview := newPreview(opts)
	if *opts.at != "" {
		frames, err := parseFrames(*opts.at)
		if err != nil {
			log.Fatal(err)
		}
		err = exportAt(cfg, preview, frames, *opts.out, *opts.format)
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	s, err := sketch.New(cfg, rand.New(rand.NewSource(cfg.Seed)), 0, sketch.WithRenderer(preview))
	if err != nil {
		log.Fatal(err)
	}
	slog.Info("exporting", "sketch", s.Variant(), "ribbons", len(s.Ribbons()), "frames", *opts.frames, "out", *opts.out)
	if err := exportRun(ctx, s, preview, *opts.frames, max(1, cfg.Workers), *opts.out, *opts.format); err != nil {
		log.Fatal(err)
	}
}

// loadConfig starts from the file named by -config (or the defaults) and
// applies only the flags given on the command line.
func loadConfig(fs *flag.FlagSet, opts options) (config.Config, error) {
	cfg := config.Default()
	if *opts.configPath != "" {
		var err error
		if cfg, err = config.Load(*opts.configPath); err != nil {
			return config.Config{}, err
		}
	}

	if *opts.configPath == "" {
		cfg.Workers = *opts.workers
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "sketch":
			cfg.Sketch = *opts.sketch
		case "ribbons":
			cfg.Ribbons = *opts.ribbons
		case "segments":
			cfg.Segments = *opts.segments
		case "total":
			cfg.TotalFrames = *opts.total
		case "seed":
			cfg.Seed = *opts.seed
		case "workers":
			cfg.Workers = *opts.workers
		}
	})
	return cfg, cfg.Validate()
}

func newPreview(opts options) *render.Preview {
	cam := render.NewCamera(*opts.dist, *opts.fov, *opts.tilt, *opts.yaw)
	p := render.NewPreview(*opts.size, *opts.size, cam, render.DefaultTheme())
	if *opts.follow {
		p.Follow = render.NewFollow(60, 2.0, 1.0)
	}
	return p
}

var errNoFrames = errors.New("no frames given")

func parseFrames(list string) ([]uint64, error) {
	var out []uint64
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid frame %q: %w", part, err)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, errNoFrames
	}
	return out, nil
}

func framePath(dir string, frame uint64, format string) string {
	return filepath.Join(dir, fmt.Sprintf("frame_%06d%s", frame, render.Extension(format)))
}

// exportRun ticks the sketch frames times. Ticking and drawing stay on this
// goroutine; only the encoding of finished images is spread over workers.
func exportRun(ctx context.Context, s *sketch.Sketch, preview *render.Preview, frames, workers int, dir, format string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < frames; i++ {
		if err := s.Update(ctx); err != nil {
			if werr := g.Wait(); werr != nil {
				return werr
			}
			return err
		}
		if err := s.Draw(); err != nil {
			if werr := g.Wait(); werr != nil {
				return werr
			}
			return err
		}

		img := cloneImage(preview.Image())
		path := framePath(dir, s.Frame(), format)
		g.Go(func() error {
			return render.WriteFile(path, img, format)
		})
	}
	return g.Wait()
}

// exportAt renders selected frames without running the animation up to
// them. Repeated frame numbers are served from the timeline cache.
func exportAt(cfg config.Config, preview *render.Preview, frames []uint64, dir, format string) error {
	tl, err := timeline.New(timeline.FromConfig(cfg), len(frames))
	if err != nil {
		return err
	}
	for _, n := range frames {
		f, err := tl.At(n)
		if err != nil {
			return err
		}
		if err := preview.Render(f.Meshes); err != nil {
			return err
		}
		path := framePath(dir, n, format)
		if err := render.WriteFile(path, preview.Image(), format); err != nil {
			return err
		}
		slog.Info("wrote frame", "frame", n, "progress", f.Progress, "path", path)
	}
	return nil
}

func cloneImage(src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst
}
