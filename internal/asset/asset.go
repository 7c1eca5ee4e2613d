package asset

import "strings"

// Kind classifies an asset by media type.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Status is the server-side readiness state of an asset.
// Processing is transient; only optimized assets have a resolvable
// display path. The transition is one-way: processing → optimized.
type Status string

const (
	StatusProcessing Status = "processing"
	StatusOptimized  Status = "optimized"
)

// Terminal reports whether the status will no longer change.
func (s Status) Terminal() bool { return s == StatusOptimized }

// Asset is one managed media file as the backend describes it.
type Asset struct {
	ID        string  `json:"_id"`
	Kind      Kind    `json:"type"`
	Status    Status  `json:"status"`
	Hash      string  `json:"hash"` // content hash, derives the storage folder
	Name      string  `json:"name"`
	Extension string  `json:"extension"`
	Alt       string  `json:"alt,omitempty"`
	Sizes     []int   `json:"sizes,omitempty"`    // image variant widths, ascending
	Duration  float64 `json:"duration,omitempty"` // seconds, video only
}

// DisplayName returns the name with extension, for user-facing listings.
func (a Asset) DisplayName() string {
	if a.Extension == "" {
		return a.Name
	}
	return a.Name + "." + a.Extension
}

// ByID returns the first asset with the given ID, or nil.
func ByID(assets []Asset, id string) *Asset {
	for i := range assets {
		if assets[i].ID == id {
			return &assets[i]
		}
	}
	return nil
}

// IDs returns the ids of the given assets in order.
func IDs(assets []Asset) []string {
	out := make([]string, len(assets))
	for i, a := range assets {
		out[i] = a.ID
	}
	return out
}

// Remove returns assets without the given ids, preserving order.
// Unknown ids are ignored.
func Remove(assets []Asset, ids []string) []Asset {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	out := assets[:0]
	for _, a := range assets {
		if _, gone := drop[a.ID]; !gone {
			out = append(out, a)
		}
	}
	return out
}

// KindForMIME maps a declared media type to an asset kind.
// Anything that is neither image/* nor video/* is unsupported and
// reported with ok=false; callers drop such files without error.
func KindForMIME(mime string) (Kind, bool) {
	switch {
	case strings.HasPrefix(mime, "image/"):
		return KindImage, true
	case strings.HasPrefix(mime, "video/"):
		return KindVideo, true
	default:
		return "", false
	}
}

// KindForExtension classifies a file by its extension (without dot).
// Used when no declared media type is available, e.g. local uploads.
func KindForExtension(ext string) (Kind, bool) {
	switch strings.ToLower(ext) {
	case "jpg", "jpeg", "png", "gif", "webp", "avif", "svg":
		return KindImage, true
	case "mp4", "webm", "mov", "m4v":
		return KindVideo, true
	default:
		return "", false
	}
}
