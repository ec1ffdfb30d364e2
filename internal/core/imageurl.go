package core

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const DefaultImageCDN = "https://cdn.sanity.io"

// ImageRef is a parsed asset reference of the form
// image-<id>-<width>x<height>-<format>.
type ImageRef struct {
	ID     string
	Width  int
	Height int
	Format string
}

func ParseImageRef(ref string) (ImageRef, error) {
	parts := strings.Split(ref, "-")
	if len(parts) != 4 || parts[0] != "image" || parts[1] == "" || parts[3] == "" {
		return ImageRef{}, fmt.Errorf("%w: %q", ErrInvalidImageRef, ref)
	}
	w, h, ok := strings.Cut(parts[2], "x")
	if !ok {
		return ImageRef{}, fmt.Errorf("%w: %q", ErrInvalidImageRef, ref)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return ImageRef{}, fmt.Errorf("%w: %q", ErrInvalidImageRef, ref)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return ImageRef{}, fmt.Errorf("%w: %q", ErrInvalidImageRef, ref)
	}
	return ImageRef{ID: parts[1], Width: width, Height: height, Format: parts[3]}, nil
}

type ImageURLBuilder struct {
	ProjectID string
	Dataset   string
	BaseURL   string
}

// Build returns the delivery URL for img sized to width x height. Zero
// dimensions are left to the CDN. Images carrying a direct url skip the
// reference parsing; an unusable image yields "".
func (b ImageURLBuilder) Build(img *Image, width, height int) string {
	if img.IsZero() {
		return ""
	}
	src := img.URL
	if src == "" {
		src = img.Asset.URL
	}
	if src == "" {
		ref, err := ParseImageRef(img.Asset.Ref)
		if err != nil || b.ProjectID == "" || b.Dataset == "" {
			return ""
		}
		base := b.BaseURL
		if base == "" {
			base = DefaultImageCDN
		}
		src = fmt.Sprintf("%s/images/%s/%s/%s-%dx%d.%s",
			strings.TrimSuffix(base, "/"), b.ProjectID, b.Dataset,
			ref.ID, ref.Width, ref.Height, ref.Format)
	}

	u, err := url.Parse(src)
	if err != nil {
		return src
	}
	q := u.Query()
	q.Set("auto", "format")
	q.Set("fm", "webp")
	q.Set("q", "80")
	if width > 0 {
		q.Set("w", strconv.Itoa(width))
	}
	if height > 0 {
		q.Set("h", strconv.Itoa(height))
	}
	u.RawQuery = q.Encode()
	return u.String()
}
