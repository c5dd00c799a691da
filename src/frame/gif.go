package frame

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"

	"lifelapse/src/universe"
)

//grayPalette maps the palette index to the same gray level, so the cell values are used as indexes directly
var grayPalette = func() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.Gray{Y: uint8(i)}
	}
	return p
}()

//ErrOutOfOrder is returned when a frame skips or repeats an index of the animation
var ErrOutOfOrder = errors.New("frame is out of order")

//GIFSink collects the frames and writes one animated GIF on Close
//every frame stays in memory until Close, rows*cols*scale^2 bytes each
//(the default 240 frames of 768x1024 take about 190MB), use BMPSink for long runs
type GIFSink struct {
	path    string
	delay   int //in 100ths of a second
	options Options
	frames  []*image.Paletted
}

func NewGIFSink(path string, fps int, o Options) *GIFSink {
	delay := 100 / fps
	if delay < 1 {
		delay = 1
	}
	return &GIFSink{path: path, delay: delay, options: o}
}

func (s *GIFSink) WriteFrame(index int, snapshot universe.Snapshot) error {
	if index != len(s.frames) {
		return fmt.Errorf("frame %d after %d frames: %w", index, len(s.frames), ErrOutOfOrder)
	}
	g := Render(snapshot, s.options)
	p := image.NewPaletted(g.Rect, grayPalette)
	copy(p.Pix, g.Pix)
	s.frames = append(s.frames, p)
	return nil
}

//Close encodes all the collected frames and releases them
func (s *GIFSink) Close() (err error) {
	animation := &gif.GIF{}
	for _, p := range s.frames {
		animation.Image = append(animation.Image, p)
		animation.Delay = append(animation.Delay, s.delay)
	}
	s.frames = nil
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return gif.EncodeAll(f, animation)
}
