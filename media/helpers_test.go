package media

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"testing"
)

func encodeJPEGImage(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 50 {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode test jpeg: %v", err)
	}

	return buf.Bytes()
}

func encodePNGImage(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test png: %v", err)
	}

	return buf.Bytes()
}

func encodeGIFImage(t *testing.T, w, h, frames int) []byte {
	t.Helper()

	palette := []color.Color{color.Black, color.White}
	anim := &gif.GIF{}
	for i := 0; i < frames; i++ {
		frame := image.NewPaletted(image.Rect(0, 0, w, h), palette)
		frame.SetColorIndex(i%w, 0, 1)
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 10)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		t.Fatalf("failed to encode test gif: %v", err)
	}

	return buf.Bytes()
}

func stageBytes(t *testing.T, stager *Stager, data []byte, filename string) *StagedFile {
	t.Helper()

	staged, err := stager.Stage(bytes.NewReader(data), filename)
	if err != nil {
		t.Fatalf("failed to stage test file: %v", err)
	}

	return staged
}

func requireEmptyDir(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read staging dir: %v", err)
	}
	if len(entries) != 0 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("expected staging dir to be empty, found %v", names)
	}
}

func decodeImageFileDims(t *testing.T, path string) (int, int) {
	t.Helper()

	img, err := decodeImageFile(path)
	if err != nil {
		t.Fatalf("failed to decode %q: %v", path, err)
	}

	return img.Bounds().Dx(), img.Bounds().Dy()
}
