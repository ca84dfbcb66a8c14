package assets

import (
	"bytes"
	"image"

	// Decoders for the formats handlers commonly request.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/go-drift/treesync/pkg/errors"
)

// ImageProvider decodes named resources from an underlying Provider into
// images. PNG, JPEG, GIF, BMP and WebP are supported.
type ImageProvider struct {
	Source Provider
}

// Image fetches and decodes the named resource.
func (p *ImageProvider) Image(name string) (image.Image, error) {
	data, err := p.Source.Resource(name)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &errors.TreeError{
			Op:   "assets.Image",
			Kind: errors.KindDecode,
			Err:  err,
		}
	}
	return img, nil
}
