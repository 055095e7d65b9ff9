// Package exifdate reads the capture date out of a photo's EXIF block.
// It backs the optional fallback taken when a filename carries no date.
package exifdate

import (
	"os"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/Nomadcxx/photostamp/internal/dateparse"
)

// ReadDate extracts DateTimeOriginal (or DateTime) from the file's EXIF
// data. Missing files, non-JPEG/TIFF formats, and photos without EXIF all
// report false; EXIF absence is expected, not an error.
func ReadDate(path string) (dateparse.Date, bool) {
	f, err := os.Open(path)
	if err != nil {
		return dateparse.Date{}, false
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return dateparse.Date{}, false
	}

	t, err := x.DateTime()
	if err != nil {
		return dateparse.Date{}, false
	}

	return dateparse.Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, true
}
