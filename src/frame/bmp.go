package frame

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
	"lifelapse/src/universe"
)

//BMPSink writes every frame to its own 8-bit grayscale BMP file named after the frame index
type BMPSink struct {
	dir     string
	options Options
}

//NewBMPSink creates the sink, the output directory is created when missing
func NewBMPSink(dir string, o Options) (*BMPSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &BMPSink{dir: dir, options: o}, nil
}

//FileName returns the file name of the frame with the given index
func FileName(index int, ext string) string {
	return fmt.Sprintf("%05d.%s", index, ext)
}

//WriteFrame encodes the snapshot to <dir>/<index>.bmp
func (s *BMPSink) WriteFrame(index int, snapshot universe.Snapshot) (err error) {
	f, err := os.Create(filepath.Join(s.dir, FileName(index, "bmp")))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return bmp.Encode(f, Render(snapshot, s.options))
}

//Close does nothing, every frame is written and closed by WriteFrame
func (s *BMPSink) Close() error {
	return nil
}
