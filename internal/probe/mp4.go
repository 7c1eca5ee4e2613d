package probe

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// mp4Info is what we pull out of an MP4 container: overall duration
// from mvhd and the visual track's dimensions from the first tkhd that
// carries a non-zero size.
type mp4Info struct {
	width    int
	height   int
	duration float64
}

const topLevelLimit = int64(1)<<62 - 1

// readMP4Info walks the box structure looking for moov/mvhd/tkhd.
// This handles ordinary progressive and faststart files; fragmented
// MP4s without an mvhd duration yield an error.
func readMP4Info(r io.ReadSeeker) (*mp4Info, error) {
	info := &mp4Info{}
	found := false

	err := walkBoxes(r, topLevelLimit, func(typ string, payload int64) (boxAction, error) {
		switch typ {
		case "moov", "trak":
			return boxDescend, nil
		case "mvhd":
			found = true
			return boxConsumed, parseMvhd(r, payload, info)
		case "tkhd":
			return boxConsumed, parseTkhd(r, payload, info)
		}
		return boxSkip, nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New("no mvhd box found")
	}
	return info, nil
}

type boxAction int

const (
	boxSkip boxAction = iota
	boxDescend
	boxConsumed // callback read the payload itself
)

// walkBoxes iterates sibling boxes within limit bytes, recursing into a
// box's payload when the callback asks for it. Callbacks that parse a
// payload themselves must consume exactly that many bytes.
func walkBoxes(r io.ReadSeeker, limit int64, fn func(typ string, payload int64) (boxAction, error)) error {
	var consumed int64
	for consumed < limit {
		var hdr [8]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil
			}
			return err
		}
		size := int64(binary.BigEndian.Uint32(hdr[:4]))
		typ := string(hdr[4:8])
		headerLen := int64(8)

		if size == 1 {
			var large [8]byte
			if _, err := io.ReadFull(r, large[:]); err != nil {
				return err
			}
			size = int64(binary.BigEndian.Uint64(large[:]))
			headerLen = 16
		} else if size == 0 {
			// Box extends to end of the enclosing scope.
			size = limit - consumed
		}
		if size < headerLen {
			return fmt.Errorf("invalid box size %d for %q", size, typ)
		}
		payload := size - headerLen

		action, err := fn(typ, payload)
		if err != nil {
			return err
		}
		switch action {
		case boxDescend:
			if err := walkBoxes(r, payload, fn); err != nil {
				return err
			}
		case boxConsumed:
			// Callback read the payload already.
		default:
			if _, err := r.Seek(payload, io.SeekCurrent); err != nil {
				return err
			}
		}
		consumed += size
	}
	return nil
}

func parseMvhd(r io.Reader, payload int64, info *mp4Info) error {
	buf := make([]byte, payload)
	if _, err := io.ReadFull(r, buf); err != nil {
		return err
	}
	if len(buf) < 4 {
		return errors.New("short mvhd")
	}
	var timescale uint32
	var duration uint64
	switch version := buf[0]; version {
	case 0:
		if len(buf) < 20 {
			return errors.New("short mvhd v0")
		}
		timescale = binary.BigEndian.Uint32(buf[12:16])
		duration = uint64(binary.BigEndian.Uint32(buf[16:20]))
	case 1:
		if len(buf) < 32 {
			return errors.New("short mvhd v1")
		}
		timescale = binary.BigEndian.Uint32(buf[20:24])
		duration = binary.BigEndian.Uint64(buf[24:32])
	default:
		return fmt.Errorf("unknown mvhd version %d", version)
	}
	if timescale > 0 {
		info.duration = float64(duration) / float64(timescale)
	}
	return nil
}

func parseTkhd(r io.Reader, payload int64, info *mp4Info) error {
	buf := make([]byte, payload)
	if _, err := io.ReadFull(r, buf); err != nil {
		return err
	}
	// Width and height are 16.16 fixed point in the last 8 bytes.
	if len(buf) < 8 {
		return nil
	}
	w := int(binary.BigEndian.Uint32(buf[len(buf)-8:len(buf)-4]) >> 16)
	h := int(binary.BigEndian.Uint32(buf[len(buf)-4:]) >> 16)
	// Audio tracks have zero dimensions; keep the first visual track.
	if w > 0 && h > 0 && info.width == 0 {
		info.width = w
		info.height = h
	}
	return nil
}
