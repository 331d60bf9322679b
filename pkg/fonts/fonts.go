// Package fonts provides the font faces raster sinks draw labels with.
//
// The Go fonts are embedded in golang.org/x/image, so rendering does not
// depend on what is installed on the host. Parsed fonts and faces are
// cached; faces are keyed by size and weight.
package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family matching the embedded faces.
const FontFamily = "Go, sans-serif"

var (
	parseOnce     sync.Once
	regular, bold *truetype.Font
	parseErr      error

	mu    sync.Mutex
	faces = map[faceKey]font.Face{}
)

type faceKey struct {
	size float64
	bold bool
}

func load() error {
	parseOnce.Do(func() {
		if regular, parseErr = truetype.Parse(goregular.TTF); parseErr != nil {
			return
		}
		bold, parseErr = truetype.Parse(gobold.TTF)
	})
	return parseErr
}

// Face returns a face of the given pixel size. Faces are shared and must
// not be closed by callers.
func Face(size float64, isBold bool) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("font size must be positive, got %g", size)
	}
	if err := load(); err != nil {
		return nil, fmt.Errorf("parse embedded font: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	k := faceKey{size: size, bold: isBold}
	if f, ok := faces[k]; ok {
		return f, nil
	}
	ttf := regular
	if isBold {
		ttf = bold
	}
	f := truetype.NewFace(ttf, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	faces[k] = f
	return f, nil
}

// RegularTTF returns the embedded regular font file.
func RegularTTF() []byte { return goregular.TTF }
