package scaledspace

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/mr0721/Kopernicus/internal/geometry"
)

// Cache persists synthesized meshes as flat binary records keyed by body
// name. A file being present is the only validity signal: there is no
// version, no hash, and no staleness check against the contributor
// configuration that produced it. Stale caches are managed by deleting the
// file.
type Cache struct {
	dir string
	log *zap.Logger
}

// NewCache returns a cache rooted at dir. A nil logger disables diagnostics.
func NewCache(dir string, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{dir: dir, log: log}
}

// Path returns the record path for a body: override when non-empty,
// otherwise the default location derived from the body name.
func (c *Cache) Path(body, override string) string {
	if override != "" {
		return override
	}
	return filepath.Join(c.dir, body+".bin")
}

// Has reports whether a record exists for the body.
func (c *Cache) Has(body, override string) bool {
	_, err := os.Stat(c.Path(body, override))
	return err == nil
}

// Load reads the record for a body. Normals and bounds are recomputed from
// the loaded geometry; tangents are never persisted, so the caller re-runs
// the tangent pass itself. A read failure is recoverable: callers fall back
// to a full rebuild.
func (c *Cache) Load(body, override string) (*geometry.Mesh, error) {
	path := c.Path(body, override)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scaledspace: read cache %s: %w", path, err)
	}
	mesh, err := UnmarshalMesh(raw)
	if err != nil {
		return nil, fmt.Errorf("scaledspace: cache %s: %w", path, err)
	}
	return mesh, nil
}

// Store writes the record for a body, creating the containing directory if
// absent. A write failure is non-fatal for the build; callers log and keep
// the in-memory mesh.
func (c *Cache) Store(body, override string, m *geometry.Mesh) error {
	path := c.Path(body, override)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("scaledspace: create cache dir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, MarshalMesh(m), 0644); err != nil {
		return fmt.Errorf("scaledspace: write cache %s: %w", path, err)
	}
	c.log.Debug("cached mesh", zap.String("body", body), zap.String("path", path))
	return nil
}

// MarshalMesh encodes a mesh as the flat cache record: vertex count and
// float32 triples, uv count and float32 pairs, then triangle index count and
// int32 indices, all little-endian. Normals and tangents are not persisted.
func MarshalMesh(m *geometry.Mesh) []byte {
	size := 4 + len(m.Vertices)*12 + 4 + len(m.UVs)*8 + 4 + len(m.Triangles)*4
	w := recordWriter{buf: make([]byte, 0, size)}

	w.putI32(int32(len(m.Vertices)))
	for _, v := range m.Vertices {
		w.putF32(v.X())
		w.putF32(v.Y())
		w.putF32(v.Z())
	}
	w.putI32(int32(len(m.UVs)))
	for _, uv := range m.UVs {
		w.putF32(uv.X())
		w.putF32(uv.Y())
	}
	w.putI32(int32(len(m.Triangles)))
	for _, idx := range m.Triangles {
		w.putI32(idx)
	}
	return w.buf
}

// UnmarshalMesh decodes a cache record and recomputes normals and bounds
// from the loaded geometry.
func UnmarshalMesh(raw []byte) (*geometry.Mesh, error) {
	// Three counts at minimum, even for an empty mesh.
	if len(raw) < 12 {
		return nil, fmt.Errorf("record too short: %d bytes", len(raw))
	}
	r := &recordReader{data: raw}

	nv := int(r.i32())
	if nv < 0 || r.remaining() < nv*12 {
		return nil, fmt.Errorf("truncated record: %d vertices, %d bytes left", nv, r.remaining())
	}
	mesh := &geometry.Mesh{Vertices: make([]mgl32.Vec3, nv)}
	for i := 0; i < nv; i++ {
		mesh.Vertices[i] = mgl32.Vec3{r.f32(), r.f32(), r.f32()}
	}

	nuv := int(r.i32())
	if nuv < 0 || r.remaining() < nuv*8 {
		return nil, fmt.Errorf("truncated record: %d uvs, %d bytes left", nuv, r.remaining())
	}
	mesh.UVs = make([]mgl32.Vec2, nuv)
	for i := 0; i < nuv; i++ {
		mesh.UVs[i] = mgl32.Vec2{r.f32(), r.f32()}
	}

	nt := int(r.i32())
	if nt < 0 || r.remaining() < nt*4 {
		return nil, fmt.Errorf("truncated record: %d indices, %d bytes left", nt, r.remaining())
	}
	mesh.Triangles = make([]int32, nt)
	for i := 0; i < nt; i++ {
		mesh.Triangles[i] = r.i32()
	}

	if n := r.remaining(); n != 0 {
		return nil, fmt.Errorf("record has %d trailing bytes", n)
	}

	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	mesh.RecomputeNormals()
	mesh.RecomputeBounds()
	return mesh, nil
}

type recordWriter struct {
	buf []byte
}

func (w *recordWriter) putI32(v int32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(v))
}

func (w *recordWriter) putF32(v float32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, math.Float32bits(v))
}

type recordReader struct {
	data []byte
	off  int
}

func (r *recordReader) remaining() int { return len(r.data) - r.off }

func (r *recordReader) i32() int32 {
	if r.off+4 > len(r.data) {
		r.off = len(r.data)
		return 0
	}
	v := int32(binary.LittleEndian.Uint32(r.data[r.off:]))
	r.off += 4
	return v
}

func (r *recordReader) f32() float32 {
	return math.Float32frombits(uint32(r.i32()))
}
