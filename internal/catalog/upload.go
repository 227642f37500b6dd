package catalog

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"
)

const maxImageSize = 5 << 20

var allowedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

// ImageFile is one image picked for upload.
type ImageFile struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

func FromFileHeaders(headers []*multipart.FileHeader) []ImageFile {
	files := make([]ImageFile, 0, len(headers))
	for _, h := range headers {
		files = append(files, ImageFile{Filename: h.Filename, Size: h.Size, Open: openHeader(h)})
	}
	return files
}

func openHeader(h *multipart.FileHeader) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return h.Open()
	}
}

func validateImage(f ImageFile) error {
	ext := strings.ToLower(filepath.Ext(f.Filename))
	if ext == "" {
		return ErrMissingExtension
	}
	if _, ok := allowedImageExtensions[ext]; !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedImage, ext)
	}
	if f.Size > maxImageSize {
		return fmt.Errorf("%w: %s", ErrImageTooLarge, f.Filename)
	}
	return nil
}

// encodeImages writes one form field per image index: image0, image1, ...
func encodeImages(files []ImageFile) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for i, f := range files {
		part, err := w.CreateFormFile("image"+strconv.Itoa(i), filepath.Base(f.Filename))
		if err != nil {
			return nil, "", err
		}

		src, err := f.Open()
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrFailedReadImage, err)
		}
		n, err := io.Copy(part, io.LimitReader(src, maxImageSize+1))
		src.Close()
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrFailedReadImage, err)
		}
		if n > maxImageSize {
			return nil, "", fmt.Errorf("%w: %s", ErrImageTooLarge, f.Filename)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
