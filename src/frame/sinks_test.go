package frame

import (
	"errors"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"lifelapse/src/universe"
)

func gray(c color.Color) uint8 {
	return color.GrayModel.Convert(c).(color.Gray).Y
}

func TestBMPSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	sink, err := NewBMPSink(dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	s := testSnapshot()
	for i := 0; i < 3; i++ {
		if err := sink.WriteFrame(i, s); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}
	if err := sink.Close(); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"00000.bmp", "00001.bmp", "00002.bmp"} {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		img, err := bmp.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if b := img.Bounds(); b.Dx() != s.Cols || b.Dy() != s.Rows {
			t.Fatalf("%s bounds = %v", name, b)
		}
		for r := 0; r < s.Rows; r++ {
			for c := 0; c < s.Cols; c++ {
				if got := gray(img.At(c, r)); got != s.At(r, c) {
					t.Fatalf("%s pixel (%d,%d) = %d, want %d", name, c, r, got, s.At(r, c))
				}
			}
		}
	}
}

func TestBMPSink_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	sink, err := NewBMPSink(dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}
	if err := sink.WriteFrame(0, testSnapshot()); err == nil {
		t.Fatal("frame is written to the removed directory")
	}
}

func TestFileName(t *testing.T) {
	if n := FileName(42, "bmp"); n != "00042.bmp" {
		t.Fatalf("FileName = %q", n)
	}
}

func TestGIFSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "life.gif")
	sink := NewGIFSink(path, 5, Options{Scale: 2})
	s := testSnapshot()
	for i := 0; i < 4; i++ {
		if err := sink.WriteFrame(i, s); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}
	if err := sink.WriteFrame(7, s); !errors.Is(err, ErrOutOfOrder) {
		t.Fatalf("out of order frame error = %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(anim.Image) != 4 {
		t.Fatalf("frames = %d, want 4", len(anim.Image))
	}
	for i, d := range anim.Delay {
		if d != 20 {
			t.Fatalf("frame %d delay = %d, want 20", i, d)
		}
	}
	img := anim.Image[0]
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Fatalf("bounds = %v", b)
	}
	if got := gray(img.At(1, 1)); got != 255 {
		t.Fatalf("born cell = %d, want 255", got)
	}
	if got := gray(img.At(3, 3)); got != 128 {
		t.Fatalf("survived cell = %d, want 128", got)
	}
	if got := gray(img.At(1, 5)); got != 0 {
		t.Fatalf("dead cell = %d, want 0", got)
	}
}

func TestMemorySink(t *testing.T) {
	var a, b MemorySink
	m := Multi{&a, &b}
	s := testSnapshot()
	for i := 0; i < 2; i++ {
		if err := m.WriteFrame(i, s); err != nil {
			t.Fatal(err)
		}
	}
	if len(a.Frames()) != 2 || len(b.Frames()) != 2 {
		t.Fatalf("frames = %d, %d, want 2, 2", len(a.Frames()), len(b.Frames()))
	}
	if err := m.WriteFrame(5, s); !errors.Is(err, ErrOutOfOrder) {
		t.Fatalf("out of order frame error = %v", err)
	}
	var _ universe.FrameSink = m
}

func TestGIFSink_FrameMemory(t *testing.T) {
	const rows, cols, scale = 4, 5, 3
	sink := NewGIFSink(filepath.Join(t.TempDir(), "life.gif"), 24, Options{Scale: scale})
	s := universe.Snapshot{Rows: rows, Cols: cols, Pix: make([]uint8, rows*cols)}
	for i := 0; i < 3; i++ {
		if err := sink.WriteFrame(i, s); err != nil {
			t.Fatal(err)
		}
	}
	if len(sink.frames) != 3 {
		t.Fatalf("%d frames are kept, want 3", len(sink.frames))
	}
	for i, p := range sink.frames {
		if len(p.Pix) != rows*cols*scale*scale {
			t.Fatalf("frame %d takes %d bytes, want %d", i, len(p.Pix), rows*cols*scale*scale)
		}
	}
	if err := sink.Close(); err != nil {
		t.Fatal(err)
	}
	if sink.frames != nil {
		t.Fatal("the frames are kept after Close")
	}
}
