package assets

import (
	"bytes"
	"encoding/binary"
	"io"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// storedChannels reads the channel count an image file was saved with. Decoding
// hides this (e.g. gray+alpha PNGs decode to NRGBA), so it comes from the header.
// ok is false when the format isn't one we read headers of, or the header is malformed.
func storedChannels(r io.ReadSeeker) (channels int, ok bool) {

	var magic [8]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return 0, false
	}

	if bytes.Equal(magic[:], pngSignature) {
		return pngChannels(r)
	}

	if magic[0] == 0xff && magic[1] == 0xd8 {
		if _, err := r.Seek(2, io.SeekStart); err != nil {
			return 0, false
		}
		return jpegChannels(r)
	}

	return 0, false
}

// pngChannels walks the chunks after the signature. Paletted images only have
// an alpha channel if a tRNS chunk shows up before the image data.
func pngChannels(r io.ReadSeeker) (int, bool) {

	const (
		colorGray      = 0
		colorRGB       = 2
		colorPalette   = 3
		colorGrayAlpha = 4
		colorRGBA      = 6
	)

	isPaletted := false
	for {

		var hdr [8]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return 0, false
		}

		length := binary.BigEndian.Uint32(hdr[:4])
		chunkType := string(hdr[4:])

		switch chunkType {
		case "IHDR":

			var ihdr [13]byte
			if length != 13 {
				return 0, false
			}
			if _, err := io.ReadFull(r, ihdr[:]); err != nil {
				return 0, false
			}

			switch ihdr[9] {
			case colorGray:
				return 1, true
			case colorGrayAlpha:
				return 2, true
			case colorRGB:
				return 3, true
			case colorRGBA:
				return 4, true
			case colorPalette:
				isPaletted = true
			default:
				return 0, false
			}

			// CRC
			if _, err := r.Seek(4, io.SeekCurrent); err != nil {
				return 0, false
			}
			continue

		case "tRNS":
			if isPaletted {
				return 4, true
			}

		case "IDAT", "IEND":
			if isPaletted {
				return 3, true
			}
			return 0, false
		}

		if _, err := r.Seek(int64(length)+4, io.SeekCurrent); err != nil {
			return 0, false
		}
	}
}

// jpegChannels finds the first start-of-frame segment and reads its component count
func jpegChannels(r io.ReadSeeker) (int, bool) {

	var buf [2]byte
	for {

		if _, err := io.ReadFull(r, buf[:1]); err != nil {
			return 0, false
		}
		if buf[0] != 0xff {
			return 0, false
		}

		// Any number of 0xff fill bytes may precede the marker
		marker := byte(0xff)
		for marker == 0xff {
			if _, err := io.ReadFull(r, buf[:1]); err != nil {
				return 0, false
			}
			marker = buf[0]
		}

		// Standalone markers have no length
		if marker == 0x01 || (marker >= 0xd0 && marker <= 0xd8) {
			continue
		}

		if _, err := io.ReadFull(r, buf[:2]); err != nil {
			return 0, false
		}
		length := int64(binary.BigEndian.Uint16(buf[:2]))
		if length < 2 {
			return 0, false
		}

		isSOF := marker >= 0xc0 && marker <= 0xcf && marker != 0xc4 && marker != 0xc8 && marker != 0xcc
		if isSOF {

			// precision(1) height(2) width(2) components(1)
			var sof [6]byte
			if _, err := io.ReadFull(r, sof[:]); err != nil {
				return 0, false
			}
			return int(sof[5]), true
		}

		if _, err := r.Seek(length-2, io.SeekCurrent); err != nil {
			return 0, false
		}
	}
}
