package render

import (
	"fmt"
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// Label fonts come from the host system rather than an embedded asset;
// the first sans-serif face found wins. When none resolves, capture
// still succeeds and labels are simply omitted.
var fontCandidates = []string{
	"DejaVuSans.ttf",
	"LiberationSans-Regular.ttf",
	"Arial.ttf",
	"Helvetica.ttf",
	"FreeSans.ttf",
}

var (
	parsedFont     *truetype.Font
	parsedFontErr  error
	parsedFontOnce sync.Once
)

func systemFont() (*truetype.Font, error) {
	parsedFontOnce.Do(func() {
		for _, name := range fontCandidates {
			path, err := findfont.Find(name)
			if err != nil {
				continue
			}
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			f, err := truetype.Parse(data)
			if err != nil {
				continue
			}
			parsedFont = f
			return
		}
		parsedFontErr = fmt.Errorf("no usable sans-serif font found (tried %v)", fontCandidates)
	})
	return parsedFont, parsedFontErr
}

// loadFontFace builds a face at the given point size from the cached
// system font.
func loadFontFace(points float64) (font.Face, error) {
	f, err := systemFont()
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: points}), nil
}
