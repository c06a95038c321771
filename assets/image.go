package assets

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"os"
	"runtime"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/mandykoh/prism"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image is decoded pixel data with rows packed tightly (Width*Channels bytes per row,
// no padding) and non-premultiplied alpha.
type Image struct {
	Pix      []byte
	Width    int
	Height   int
	Channels int
}

// Release drops the pixel buffer. Width, height and channels stay valid.
func (img *Image) Release() {
	img.Pix = nil
}

// Decoder turns an image file into raw pixel rows
type Decoder interface {
	Decode(path string) (Image, error)
}

var _ Decoder = &FileDecoder{}

// FileDecoder decodes png, jpeg, gif, bmp, tiff and webp files from disk.
//
// The channel count is the one the file was saved with, read from the header for
// png and jpeg. Layouts other than RGB and RGBA (gray, gray+alpha) are reported
// with no pixel data and are never converted.
type FileDecoder struct {

	// FlipVertically stores the last row first, so that texture coordinate (0,0) is
	// the bottom-left of the image as OpenGL expects
	FlipVertically bool
}

func (d *FileDecoder) Decode(path string) (Image, error) {

	f, err := os.Open(path)
	if err != nil {
		return Image{}, fmt.Errorf("failed to open image '%s'. Err: %w", path, err)
	}
	channels, hasStoredChannels := storedChannels(f)
	f.Close()

	img, err := imgio.Open(path)
	if err != nil {
		return Image{}, fmt.Errorf("failed to decode image '%s'. Err: %w", path, err)
	}

	if !hasStoredChannels {
		channels = channelCount(img)
	}

	return pack(img, channels, d.FlipVertically), nil
}

// FromImage packs any image.Image into an Image, with the channel count taken from
// the color model of img
func FromImage(img image.Image, flipVertically bool) Image {
	return pack(img, channelCount(img), flipVertically)
}

// pack converts img to rows of the given channel count. Only 3 and 4 channels get
// pixel data, other counts are reported with a nil Pix.
func pack(img image.Image, channels int, flipVertically bool) Image {

	bounds := img.Bounds()
	out := Image{
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Channels: channels,
	}

	if out.Channels != 3 && out.Channels != 4 {
		return out
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		nrgba = prism.ConvertImageToNRGBA(img, runtime.NumCPU())
	}

	out.Pix = packRows(nrgba, out.Channels, flipVertically)
	return out
}

func channelCount(img image.Image) int {

	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model, color.AlphaModel, color.Alpha16Model:
		return 1
	case color.YCbCrModel, color.CMYKModel:
		return 3
	}

	p, ok := img.(*image.Paletted)
	if !ok {
		return 4
	}

	for _, c := range p.Palette {
		if _, _, _, a := c.RGBA(); a != 0xffff {
			return 4
		}
	}

	return 3
}

func packRows(img *image.NRGBA, channels int, flipVertically bool) []byte {

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	rowSize := w * channels
	out := make([]byte, rowSize*h)

	for y := 0; y < h; y++ {

		dstY := y
		if flipVertically {
			dstY = h - 1 - y
		}

		srcStart := img.PixOffset(b.Min.X, b.Min.Y+y)
		srcRow := img.Pix[srcStart : srcStart+w*4]
		dstRow := out[dstY*rowSize : (dstY+1)*rowSize]

		if channels == 4 {
			copy(dstRow, srcRow)
			continue
		}

		for x := 0; x < w; x++ {
			dstRow[x*3+0] = srcRow[x*4+0]
			dstRow[x*3+1] = srcRow[x*4+1]
			dstRow[x*3+2] = srcRow[x*4+2]
		}
	}

	return out
}
