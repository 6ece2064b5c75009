package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/mr0721/Kopernicus/internal/batch"
	"github.com/mr0721/Kopernicus/internal/body"
	"github.com/mr0721/Kopernicus/internal/config"
	"github.com/mr0721/Kopernicus/internal/geometry"
	"github.com/mr0721/Kopernicus/internal/scaledspace"
	"github.com/mr0721/Kopernicus/internal/texture"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	systemFile := flag.String("system", "", "Path to system definition file (default: system.json)")
	cacheDir := flag.String("cache", "", "Mesh cache directory (default: <system dir>/cache)")
	textureDir := flag.String("textures", "", "Texture asset directory for height maps")
	only := flag.String("body", "", "Build only the named body")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	rebuild := flag.Bool("rebuild", false, "Ignore existing cache records")
	logFile := flag.String("log", "", "Also log to this file (rotated)")
	logLevel := flag.String("level", "", "Log level (default: info)")

	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	cfg.Resolve(config.Flags{
		SystemFile: *systemFile,
		CacheDir:   *cacheDir,
		TextureDir: *textureDir,
		Workers:    *workers,
		Rebuild:    *rebuild,
		LogFile:    *logFile,
		LogLevel:   *logLevel,
	})

	log, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	root, err := body.Load(cfg.SystemFile)
	if err != nil {
		log.Fatal("system definition", zap.Error(err))
	}

	template, err := loadTemplate(cfg)
	if err != nil {
		// A missing reference template is fatal: nothing can build.
		log.Fatal("reference template", zap.Error(err))
	}

	bodies := root.All()
	if *only != "" {
		b := root.FindByName(*only)
		if b == nil {
			log.Fatal("no such body", zap.String("body", *only))
		}
		bodies = []*body.Body{b}
	}

	var textures texture.Resolver
	if cfg.TextureDir != "" {
		idx := texture.BuildIndex(cfg.TextureDir)
		log.Info("indexed textures",
			zap.Int("count", idx.Len()),
			zap.String("dir", cfg.TextureDir))
		textures = texture.NewCache(idx, log)
	}

	log.Info("building scaled-space meshes",
		zap.Int("bodies", len(bodies)),
		zap.Int("workers", cfg.Workers),
		zap.String("cache", cfg.CacheDir))

	results := batch.Run(batch.Config{
		Template:    template,
		Synthesizer: scaledspace.NewSynthesizer(log),
		Cache:       scaledspace.NewCache(cfg.CacheDir, log),
		Textures:    textures,
		Workers:     cfg.Workers,
		Rebuild:     cfg.Rebuild,
		Log:         log,
	}, bodies)

	var built, cached, failed int
	for _, r := range results {
		switch {
		case r.Success && r.Cached:
			cached++
		case r.Success:
			built++
		default:
			failed++
			log.Error("build failed", zap.String("body", r.Name), zap.String("error", r.Error))
		}
	}

	log.Info("done",
		zap.Int("built", built),
		zap.Int("cached", cached),
		zap.Int("failed", failed))
	if failed > 0 {
		os.Exit(1)
	}
}

// loadTemplate returns the reference sphere: a cache-format record when the
// config names one, the built-in geosphere otherwise.
func loadTemplate(cfg config.Config) (*geometry.Mesh, error) {
	if cfg.TemplateMesh == "" {
		return geometry.Geosphere(cfg.Subdivisions), nil
	}
	raw, err := os.ReadFile(cfg.TemplateMesh)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", cfg.TemplateMesh, err)
	}
	mesh, err := scaledspace.UnmarshalMesh(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.TemplateMesh, err)
	}
	return mesh, nil
}
