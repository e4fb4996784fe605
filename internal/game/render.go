// internal/game/render.go
//
// Stand-in image generation for the dev puzzle API.
// Responsibilities:
//   - Turn a seed string into a small deterministic PNG (base64).
//   - Two horizontal bands whose colours come from the seed's SHA-256.

package game

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
)

const renderSize = 16

// Render returns a base64 PNG whose colours are derived from seed.
// The same seed always yields the same image.
func Render(seed string) string {
	sum := sha256.Sum256([]byte(seed))
	img := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
	top := color.RGBA{sum[0], sum[1], sum[2], 0xff}
	bottom := color.RGBA{sum[3], sum[4], sum[5], 0xff}
	for y := 0; y < renderSize; y++ {
		c := top
		if y >= renderSize/2 {
			c = bottom
		}
		for x := 0; x < renderSize; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}
