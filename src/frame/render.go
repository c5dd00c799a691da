package frame

import (
	"image"
	"image/draw"

	"github.com/anthonynsimon/bild/transform"
	"lifelapse/src/universe"
)

//Options describes how a snapshot is turned into the image
type Options struct {
	Flip  bool //flip vertically, the row 0 goes to the bottom of the image
	Scale int  //every cell becomes Scale x Scale pixels, 0 and 1 mean no scaling
}

//Render converts the snapshot to the grayscale image, 0 is black, any other value is the gray level
func Render(s universe.Snapshot, o Options) *image.Gray {
	img := &image.Gray{
		Pix:    s.Pix,
		Stride: s.Cols,
		Rect:   image.Rect(0, 0, s.Cols, s.Rows),
	}
	if !o.Flip && o.Scale <= 1 {
		return img
	}
	var res image.Image = img
	if o.Flip {
		res = transform.FlipV(res)
	}
	if o.Scale > 1 {
		res = transform.Resize(res, s.Cols*o.Scale, s.Rows*o.Scale, transform.NearestNeighbor)
	}
	//bild works in RGBA, the sinks write 8-bit gray
	b := res.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), res, b.Min, draw.Src)
	return gray
}
