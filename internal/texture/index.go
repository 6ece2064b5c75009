package texture

import (
	"os"
	"path/filepath"
	"strings"
)

// Index maps lowercase asset stems to filesystem paths. DDS containers take
// priority over encoded-image fallbacks for the same stem.
type Index struct {
	entries map[string]string // stem.lower() → full path
}

var indexedExts = map[string]bool{
	".dds": true,
	".png": true,
	".jpg": true,
	".tga": true,
}

// BuildIndex scans dir recursively for loadable texture files.
func BuildIndex(dir string) *Index {
	idx := &Index{entries: make(map[string]string)}

	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !indexedExts[ext] {
			return nil
		}
		stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

		existing, exists := idx.entries[stem]
		if !exists {
			idx.entries[stem] = path
		} else if ext == ".dds" && strings.ToLower(filepath.Ext(existing)) != ".dds" {
			// The container wins over a fallback image for the same stem.
			idx.entries[stem] = path
		}
		return nil
	})

	return idx
}

// ResolvePath returns the filesystem path for a texture name, or ("", false).
// Name may carry a path prefix and extension from foreign conventions
// ("Terrain\\maps\\kerbin_height.png"); only the stem matters.
func (idx *Index) ResolvePath(name string) (string, bool) {
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(name)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))

	path, ok := idx.entries[stem]
	return path, ok
}

// Len returns the number of indexed textures.
func (idx *Index) Len() int {
	return len(idx.entries)
}
