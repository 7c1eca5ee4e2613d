package probe

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	// Register decoders for DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nordskill/medialib/internal/asset"
)

// Meta holds metadata extracted locally from a media file before it is
// submitted for upload.
type Meta struct {
	Name     string // base name without extension
	Width    int
	Height   int
	Duration float64 // seconds, video only; 0 when unknown
}

// DecodeError reports that a local file could not be read or decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", filepath.Base(e.Path), e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// File extracts metadata from a local media file. This is best-effort:
// image dimensions come from the stdlib decoders, MP4 duration and
// dimensions from a minimal box walk. Formats we cannot parse yield a
// Meta with only the name filled in rather than an error, as long as
// the file itself is readable.
func File(path string, kind asset.Kind) (Meta, error) {
	meta := Meta{Name: baseName(path)}

	f, err := os.Open(path)
	if err != nil {
		return meta, &DecodeError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	switch kind {
	case asset.KindImage:
		cfg, _, err := image.DecodeConfig(f)
		if err != nil {
			return meta, &DecodeError{Path: path, Err: err}
		}
		meta.Width = cfg.Width
		meta.Height = cfg.Height

	case asset.KindVideo:
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
		if ext == "mp4" || ext == "m4v" || ext == "mov" {
			info, err := readMP4Info(f)
			if err != nil {
				return meta, &DecodeError{Path: path, Err: err}
			}
			meta.Width = info.width
			meta.Height = info.height
			meta.Duration = info.duration
		}
		// Other containers (webm etc.): name only.
	}

	return meta, nil
}

func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
