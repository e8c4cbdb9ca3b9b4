package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"campusevents_backend/internals/constants"
	helper "campusevents_backend/internals/helpers"
)

const (
	MaxUploadBytes = 5 << 20
	MaxWidth       = 1280
	MaxHeight      = 720
	WebPQuality    = 80

	MaxSourceSide   = 10_000
	MaxSourcePixels = 40_000_000
)

// decodeImage reads the header first so a small file declaring a huge canvas
// is rejected before any pixel buffer is allocated.
func decodeImage(data []byte) (image.Image, error) {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)
	isWebP := strings.Contains(ct, "webp")
	if !isWebP && !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("unsupported content type %s", ct)
	}

	var (
		cfg image.Config
		err error
	)
	if isWebP {
		cfg, err = webp.DecodeConfig(bytes.NewReader(data))
	} else {
		cfg, _, err = image.DecodeConfig(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("read image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > MaxSourceSide || cfg.Height > MaxSourceSide ||
		int64(cfg.Width)*int64(cfg.Height) > MaxSourcePixels {
		return nil, helper.ErrValidation(fmt.Sprintf("Image dimensions %dx%d exceed the %d pixel limit", cfg.Width, cfg.Height, MaxSourcePixels))
	}

	if isWebP {
		return webp.Decode(bytes.NewReader(data))
	}
	return imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
}

// ProcessImage decodes data, fits it into MaxWidth x MaxHeight and re-encodes it as WebP.
func ProcessImage(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, helper.ErrValidation("Image file is empty")
	}
	if len(data) > MaxUploadBytes {
		return nil, helper.ErrValidation("Image must be at most 5 MB")
	}

	img, err := decodeImage(data)
	if err != nil {
		if helper.IsKind(err, helper.KindValidation) {
			return nil, err
		}
		return nil, helper.ErrValidation("File is not a supported image (jpeg, png, gif, webp)")
	}

	b := img.Bounds()
	if b.Dx() > MaxWidth || b.Dy() > MaxHeight {
		img = imaging.Fit(img, MaxWidth, MaxHeight, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Quality: WebPQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveUploadedImage processes the multipart file and stores it under folder.
// It returns the public URL.
func SaveUploadedImage(ctx context.Context, store Storage, folder string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", helper.ErrValidation("image file is required")
	}
	if !constants.IsImageFile(fh.Filename) {
		return "", helper.ErrValidation("Only .png, .jpg, .jpeg, .gif and .webp images are accepted")
	}
	if fh.Size > MaxUploadBytes {
		return "", helper.ErrValidation("Image must be at most 5 MB")
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, MaxUploadBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	out, err := ProcessImage(data)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s/%s-%s.webp", folder, time.Now().Format("20060102"), uuid.NewString())
	if err := store.Put(ctx, key, bytes.NewReader(out), "image/webp"); err != nil {
		return "", err
	}
	log.Printf("[INFO] stored image %s (%d bytes)", key, len(out))
	return store.URL(key), nil
}

// RemoveStoredImage deletes an image previously returned by SaveUploadedImage.
// URLs from elsewhere (seed defaults, external links) are left alone.
func RemoveStoredImage(ctx context.Context, store Storage, url string) {
	key, ok := store.KeyFromURL(url)
	if !ok {
		return
	}
	if err := store.Delete(ctx, key); err != nil {
		log.Printf("[WARN] failed to delete old image %s: %v", key, err)
	}
}
