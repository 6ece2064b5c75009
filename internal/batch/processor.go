// Package batch drives scaled-space mesh builds for a whole system tree
// with a worker pool. Bodies are independent: every build takes its own
// contributor clone, so workers never share mutable state.
package batch

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/mr0721/Kopernicus/internal/body"
	"github.com/mr0721/Kopernicus/internal/geometry"
	"github.com/mr0721/Kopernicus/internal/modifier"
	"github.com/mr0721/Kopernicus/internal/scaledspace"
	"github.com/mr0721/Kopernicus/internal/texture"
)

// Config holds the shared resources for a batch run.
type Config struct {
	Template    *geometry.Mesh
	Synthesizer *scaledspace.Synthesizer
	Cache       *scaledspace.Cache
	Textures    texture.Resolver // optional, wired into map-sampling contributors
	Workers     int
	Rebuild     bool // ignore existing cache records
	Log         *zap.Logger
}

// Result holds the outcome of building one body. Mesh is the finished
// scaled-space mesh, tangents included, whether it came from the cache or a
// fresh build; it is nil only on failure.
type Result struct {
	Name    string
	Mesh    *geometry.Mesh
	Cached  bool // mesh came from the cache, not a rebuild
	Success bool
	Error   string
}

// Run builds every body using a worker pool and returns one result per body,
// in input order.
func Run(cfg Config, bodies []*body.Body) []Result {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	if cfg.Textures != nil {
		for _, b := range bodies {
			attachTextures(cfg.Textures, b.Land)
			attachTextures(cfg.Textures, b.Ocean)
		}
	}

	total := len(bodies)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					log.Info("progress",
						zap.Int64("built", p),
						zap.Int("total", total),
						zap.Float64("bodies_per_sec", float64(p)/elapsed))
				}
			}
		}
	}()

	// Worker pool
	bodyChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range bodyChan {
				results[idx] = processBody(cfg, log, bodies[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range bodies {
		bodyChan <- i
	}
	close(bodyChan)

	wg.Wait()
	close(done)

	return results
}

// processBody resolves one body's mesh: cache hit, or synthesize, tangent
// pass, cache write. A cache read failure falls back to a full rebuild; a
// cache write failure keeps the in-memory mesh and moves on.
func processBody(cfg Config, log *zap.Logger, b *body.Body) Result {
	if !cfg.Rebuild && cfg.Cache.Has(b.Name, b.CacheFile) {
		mesh, err := cfg.Cache.Load(b.Name, b.CacheFile)
		if err == nil {
			geometry.ComputeTangents(mesh)
			return Result{Name: b.Name, Mesh: mesh, Cached: true, Success: true}
		}
		log.Warn("cache read failed, rebuilding",
			zap.String("body", b.Name), zap.Error(err))
	}

	mesh, err := cfg.Synthesizer.Synthesize(cfg.Template, b.Radius, scaledspace.ReferenceRadius, b.Land, b.Ocean)
	if err != nil {
		return Result{Name: b.Name, Error: err.Error()}
	}
	geometry.ComputeTangents(mesh)

	if err := cfg.Cache.Store(b.Name, b.CacheFile, mesh); err != nil {
		log.Warn("cache write failed, keeping in-memory mesh",
			zap.String("body", b.Name), zap.Error(err))
	}

	return Result{Name: b.Name, Mesh: mesh, Success: true}
}

// attachTextures hands the shared resolver to every contributor that
// samples texture assets.
func attachTextures(r texture.Resolver, mods []modifier.Modifier) {
	for _, m := range mods {
		if tu, ok := m.(modifier.TextureUser); ok {
			tu.SetTextureResolver(r)
		}
	}
}
