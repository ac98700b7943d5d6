package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const maxImageBytes = 20 << 20

func IsDataURI(image string) bool {
	return strings.HasPrefix(image, "data:")
}

// ParseDataURI decodes a data URI. The declared media type is replaced by
// the sniffed one, which must be an image.
func ParseDataURI(image string) (string, []byte, error) {
	if !IsDataURI(image) {
		return "", nil, fmt.Errorf("%w: not a data URI", ErrUnsupportedImage)
	}
	header, payload, ok := strings.Cut(strings.TrimPrefix(image, "data:"), ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: data URI has no payload", ErrUnsupportedImage)
	}

	var (
		data []byte
		err  error
	)
	if strings.HasSuffix(header, ";base64") {
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		}
	} else {
		var unescaped string
		unescaped, err = url.PathUnescape(payload)
		data = []byte(unescaped)
	}
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	mimeType, err := imageMIMEType(data)
	if err != nil {
		return "", nil, err
	}
	return mimeType, data, nil
}

func imageMIMEType(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty image", ErrUnsupportedImage)
	}
	mtype := mimetype.Detect(data)
	mimeType, _, _ := strings.Cut(mtype.String(), ";")
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("%w: content is %s", ErrUnsupportedImage, mimeType)
	}
	return mimeType, nil
}

// loadImage resolves an image reference into bytes for providers that only
// accept inline data.
func loadImage(ctx context.Context, client *http.Client, image string) (string, []byte, error) {
	if IsDataURI(image) {
		return ParseDataURI(image)
	}

	u, err := url.Parse(image)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", nil, fmt.Errorf("%w: %q", ErrUnsupportedImage, image)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("vision: download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("%w: download returned %s", ErrUnsupportedImage, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return "", nil, fmt.Errorf("vision: read image: %w", err)
	}
	if len(data) > maxImageBytes {
		return "", nil, fmt.Errorf("%w: image larger than %d bytes", ErrUnsupportedImage, maxImageBytes)
	}

	mimeType, err := imageMIMEType(data)
	if err != nil {
		return "", nil, err
	}
	return mimeType, data, nil
}
