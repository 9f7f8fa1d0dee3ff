// Package tagger derives coarse descriptive tags from decoded images.
// It is a pure function of pixel data; undecodable input is rejected
// before it ever reaches this package.
package tagger

import (
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

const separator = " | "

// Fixed bucket thresholds. Not configurable.
const (
	hdPixelCount = 1_000_000
	brightCutoff = 150.0
	darkCutoff   = 80.0
)

// Characterize produces the display tag string for a photo: exactly one
// tag per bucket (resolution, brightness, dominant tone) joined by " | ".
func Characterize(img image.Image) string {
	return strings.Join([]string{
		resolutionTag(img),
		brightnessTag(img),
		toneTag(img),
	}, separator)
}

func resolutionTag(img image.Image) string {
	bounds := img.Bounds()
	if bounds.Dx()*bounds.Dy() > hdPixelCount {
		return "HD"
	}
	return "SD"
}

// brightnessTag buckets the mean ITU-R 601 luminance on the 0-255 scale.
// The boundaries are inclusive on the Neutral side.
func brightnessTag(img image.Image) string {
	mean := meanLuminance(img)
	switch {
	case mean > brightCutoff:
		return "Bright"
	case mean < darkCutoff:
		return "Dark"
	default:
		return "Neutral"
	}
}

// toneTag reads the average color of the whole image (a 1x1 box-filter
// downsample) and names the strictly dominant channel. Ties and
// green-dominant images fall through to Balanced.
func toneTag(img image.Image) string {
	avg := imaging.Resize(img, 1, 1, imaging.Box)
	r, g, b, _ := avg.At(avg.Bounds().Min.X, avg.Bounds().Min.Y).RGBA()
	switch {
	case r > g && r > b:
		return "Warm"
	case b > r && b > g:
		return "Cool"
	default:
		return "Balanced"
	}
}

func meanLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	var sum float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// 16-bit channels down to the 0-255 scale.
			sum += 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
		}
	}
	return sum / float64(pixels)
}
