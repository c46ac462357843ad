package media

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

type Role string

const (
	RoleSmall    Role = "small"
	RoleLarge    Role = "large"
	RolePreview  Role = "preview"
	RoleOriginal Role = "original-passthrough"
)

const (
	smallBound  = 800
	largeBound  = 2000
	jpegQuality = 80
)

// Variant is one derived output of a staged file: a role, a local file to
// upload, the content type to store it under, and its object key.
type Variant struct {
	Role        Role
	Path        string
	Key         string
	ContentType string
	Temp        bool // created by the deriver; the pipeline must remove it
}

// Derive expands a staged file into the variant set for its kind. On error
// the returned slice still lists any temp files created before the failure so
// the caller can collect them.
func Derive(staged *StagedFile, kind Kind) ([]Variant, error) {
	switch kind {
	case KindStaticImage:
		return deriveStaticImage(staged)
	case KindAnimatedImage:
		return deriveAnimatedImage(staged)
	case KindVideo:
		// Loss-free passthrough; only the stored label is normalized.
		return []Variant{{
			Role:        RoleOriginal,
			Path:        staged.Path,
			Key:         staged.Name + staged.Ext,
			ContentType: "video/mp4",
		}}, nil
	case KindAudio:
		return []Variant{{
			Role:        RoleOriginal,
			Path:        staged.Path,
			Key:         staged.Name + staged.Ext,
			ContentType: "audio/mpeg",
		}}, nil
	default:
		return nil, ErrUnsupportedMediaType
	}
}

// deriveStaticImage produces large and small raster copies, in that upload
// order, normalized to JPEG whatever the input format was.
func deriveStaticImage(staged *StagedFile) ([]Variant, error) {
	img, err := decodeImageFile(staged.Path)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	var variants []Variant

	for _, target := range []struct {
		role  Role
		bound int
	}{
		{RoleLarge, largeBound},
		{RoleSmall, smallBound},
	} {
		suffix := fmt.Sprintf("_%s.jpg", target.role)
		path := filepath.Join(filepath.Dir(staged.Path), staged.Name+suffix)

		if err := writeResizedJPEG(path, img, target.bound); err != nil {
			return variants, fmt.Errorf("resize %s variant: %w", target.role, err)
		}

		variants = append(variants, Variant{
			Role:        target.role,
			Path:        path,
			Key:         staged.Name + suffix,
			ContentType: "image/jpeg",
			Temp:        true,
		})
	}

	return variants, nil
}

// deriveAnimatedImage uploads the gif untouched and extracts the first frame
// as a static JPEG preview.
func deriveAnimatedImage(staged *StagedFile) ([]Variant, error) {
	f, err := os.Open(staged.Path)
	if err != nil {
		return nil, fmt.Errorf("open staged gif: %w", err)
	}
	defer f.Close()

	frame, err := gif.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode gif first frame: %w", err)
	}

	previewPath := filepath.Join(filepath.Dir(staged.Path), staged.Name+".jpg")
	if err := writeResizedJPEG(previewPath, frame, 0); err != nil {
		return nil, fmt.Errorf("encode gif preview: %w", err)
	}

	return []Variant{
		{
			Role:        RoleOriginal,
			Path:        staged.Path,
			Key:         staged.Name + ".gif",
			ContentType: "image/gif",
		},
		{
			Role:        RolePreview,
			Path:        previewPath,
			Key:         staged.Name + ".jpg",
			ContentType: "image/jpeg",
			Temp:        true,
		},
	}, nil
}

func decodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

// writeResizedJPEG encodes img to path as JPEG, scaled so its long edge fits
// within bound. A bound of zero, or an image already within the bound, is
// written at original size; images are never enlarged.
func writeResizedJPEG(path string, img image.Image, bound int) error {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	long := w
	if h > long {
		long = h
	}

	if bound > 0 && long > bound {
		newW := w * bound / long
		newH := h * bound / long
		if newW < 1 {
			newW = 1
		}
		if newH < 1 {
			newH = 1
		}

		dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
