package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/image/draw"
)

// imagePage is a raster image prepared for embedding
type imagePage struct {
	data      []byte
	imageType string // "JPG" or "PNG"
	width     int
	height    int
}

// prepareImage decodes data and normalizes it to three opaque channels.
// YCbCr JPEGs are embedded as they are; anything else is flattened onto
// white and re-encoded as PNG, which is lossless.
func prepareImage(data []byte) (*imagePage, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("image has no pixels")
	}

	if format == "jpeg" {
		if _, ok := img.(*image.YCbCr); ok {
			return &imagePage{data: data, imageType: "JPG", width: bounds.Dx(), height: bounds.Dy()}, nil
		}
	}

	flat := flattenOnWhite(img)
	var buf bytes.Buffer
	if err := png.Encode(&buf, flat); err != nil {
		return nil, fmt.Errorf("cannot encode image: %w", err)
	}
	return &imagePage{data: buf.Bytes(), imageType: "PNG", width: bounds.Dx(), height: bounds.Dy()}, nil
}

// flattenOnWhite composites img over an opaque white canvas. The png
// encoder writes opaque RGBA images as 8-bit RGB.
func flattenOnWhite(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Over)
	return dst
}

// renderImagePage embeds the image on a single page of the same size,
// one pixel per point
func renderImagePage(page *imagePage) ([]byte, error) {
	w, h := float64(page.width), float64(page.height)

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})

	opts := fpdf.ImageOptions{ImageType: page.imageType}
	pdf.RegisterImageOptionsReader("image", opts, bytes.NewReader(page.data))
	pdf.ImageOptions("image", 0, 0, w, h, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("cannot write image page: %w", err)
	}
	return buf.Bytes(), nil
}
