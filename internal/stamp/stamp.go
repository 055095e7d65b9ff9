// Package stamp draws label text onto photos. It is the image I/O side of
// the pipeline: decode, draw the label with a drop shadow, encode into the
// output path. Which label to draw is decided elsewhere.
package stamp

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Position selects where on the photo the label lands.
type Position int

const (
	// PositionBottomCenter centers the label above the bottom margin
	// (age labels).
	PositionBottomCenter Position = iota
	// PositionBottomRight tucks the label into the bottom-right corner
	// (timestamps).
	PositionBottomRight
)

const (
	minFontSize   = 20
	fontSizeRatio = 0.03 // of the shorter image edge
	marginRatio   = 50   // margin = shorter edge / marginRatio
)

var (
	textColor   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	shadowColor = color.RGBA{A: 128}
)

// Stamper renders labels onto image files. The font is resolved once, a
// face is derived per size as photos of different dimensions come through.
type Stamper struct {
	jpegQuality int

	font         *sfnt.Font
	fontSource   string
	fontFallback bool
	faces        map[int]font.Face
}

// Option configures a Stamper.
type Option func(*Stamper) error

// WithFontPaths sets the ordered list of font files to try. The first one
// that exists and parses wins; with none usable the embedded Go Regular
// face is used.
func WithFontPaths(paths []string) Option {
	return func(s *Stamper) error {
		f, source, fallback, err := resolveFont(paths)
		if err != nil {
			return err
		}
		s.font, s.fontSource, s.fontFallback = f, source, fallback
		return nil
	}
}

// WithJPEGQuality sets the encode quality for JPEG output (default 95).
func WithJPEGQuality(quality int) Option {
	return func(s *Stamper) error {
		if quality < 1 || quality > 100 {
			return fmt.Errorf("jpeg quality %d out of range", quality)
		}
		s.jpegQuality = quality
		return nil
	}
}

// New creates a Stamper. Without WithFontPaths the embedded face is used.
func New(options ...Option) (*Stamper, error) {
	s := &Stamper{
		jpegQuality: 95,
		faces:       make(map[int]font.Face),
	}

	for _, opt := range options {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if s.font == nil {
		if err := WithFontPaths(nil)(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// FontSource names the font actually in use.
func (s *Stamper) FontSource() string { return s.fontSource }

// UsingFallbackFont reports whether no configured font file was usable and
// the embedded face (no CJK glyphs) is in effect.
func (s *Stamper) UsingFallbackFont() bool { return s.fontFallback }

// Stamp decodes srcPath, draws label at pos, and writes the result to
// dstPath. The font size scales with the photo (3% of the shorter edge,
// at least 20px) so labels stay readable across resolutions.
//
// The output format follows the destination extension. Formats without an
// encoder (webp) are written as JPEG; OutputName maps the filename.
func (s *Stamper) Stamp(srcPath, dstPath, label string, pos Position) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("unable to open image: %w", err)
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return fmt.Errorf("unable to decode image: %w", err)
	}

	bounds := img.Bounds()
	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, img, bounds.Min, draw.Src)

	if err := s.drawLabel(canvas, label, pos); err != nil {
		return err
	}

	return s.encode(canvas, dstPath)
}

func (s *Stamper) drawLabel(canvas *image.RGBA, label string, pos Position) error {
	bounds := canvas.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	short := width
	if height < short {
		short = height
	}

	size := int(float64(short) * fontSizeRatio)
	if size < minFontSize {
		size = minFontSize
	}

	face, err := s.face(size)
	if err != nil {
		return err
	}

	drawer := &font.Drawer{Dst: canvas, Face: face}
	textWidth := drawer.MeasureString(label).Ceil()
	metrics := face.Metrics()
	textHeight := (metrics.Ascent + metrics.Descent).Ceil()

	margin := short / marginRatio

	var x int
	switch pos {
	case PositionBottomRight:
		x = width - textWidth - margin
	default:
		x = (width - textWidth) / 2
	}
	y := height - textHeight - margin

	// Baseline sits one ascent below the top of the text box.
	dot := fixed.P(bounds.Min.X+x, bounds.Min.Y+y).Add(fixed.Point26_6{Y: metrics.Ascent})

	shadowOffset := size / 30
	if shadowOffset < 1 {
		shadowOffset = 1
	}

	drawer.Src = image.NewUniform(shadowColor)
	drawer.Dot = dot.Add(fixed.P(shadowOffset, shadowOffset))
	drawer.DrawString(label)

	drawer.Src = image.NewUniform(textColor)
	drawer.Dot = dot
	drawer.DrawString(label)

	return nil
}

func (s *Stamper) face(size int) (font.Face, error) {
	if f, ok := s.faces[size]; ok {
		return f, nil
	}
	f, err := newFace(s.font, float64(size))
	if err != nil {
		return nil, fmt.Errorf("unable to create %dpx font face: %w", size, err)
	}
	s.faces[size] = f
	return f, nil
}

func (s *Stamper) encode(img image.Image, dstPath string) error {
	out, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	defer out.Close()

	switch strings.ToLower(filepath.Ext(dstPath)) {
	case ".png":
		err = png.Encode(out, img)
	case ".bmp":
		err = bmp.Encode(out, img)
	case ".tiff":
		err = tiff.Encode(out, img, nil)
	default:
		err = jpeg.Encode(out, img, &jpeg.Options{Quality: s.jpegQuality})
	}
	if err != nil {
		return fmt.Errorf("unable to encode image: %w", err)
	}

	return out.Close()
}

// OutputName maps a source filename to the name written into the output
// directory. Formats that can only be decoded (webp) come back as JPEG.
func OutputName(filename string) string {
	if strings.EqualFold(filepath.Ext(filename), ".webp") {
		return strings.TrimSuffix(filename, filepath.Ext(filename)) + ".jpg"
	}
	return filename
}
