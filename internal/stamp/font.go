package stamp

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// resolveFont returns the parsed font to stamp with: the first readable and
// parseable file from paths, else the embedded Go Regular face. The embedded
// fallback carries no CJK glyphs, so age labels may render as boxes with it;
// fallback reports whether that happened.
func resolveFont(paths []string) (f *sfnt.Font, source string, fallback bool, err error) {
	for _, path := range paths {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			continue
		}
		parsed, parseErr := parseFirstFont(data)
		if parseErr != nil {
			continue
		}
		return parsed, path, false, nil
	}

	f, err = parseFirstFont(goregular.TTF)
	if err != nil {
		return nil, "", false, fmt.Errorf("unable to parse embedded font: %w", err)
	}
	return f, "embedded Go Regular", true, nil
}

// parseFirstFont parses TTF/OTF data, taking the first font of a TTC
// collection (simsun.ttc and friends).
func parseFirstFont(data []byte) (*sfnt.Font, error) {
	coll, err := sfnt.ParseCollection(data)
	if err != nil {
		return nil, err
	}
	return coll.Font(0)
}

// newFace builds a screen-DPI face at the given pixel size.
func newFace(f *sfnt.Font, size float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
