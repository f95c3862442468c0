package exifloc

import (
	"bytes"

	"github.com/apex/log"
	"github.com/rwcarlsen/goexif/exif"

	"citybuddy/models"
)

// Extract pulls a decimal-degree coordinate out of a photo's EXIF GPS block.
// A nil result means the image carries no usable GPS metadata; malformed or
// partial GPS tags are treated the same way. Photos without location are
// common, so nothing here is ever a fatal error.
func Extract(imageData []byte) *models.Coordinate {
	x, err := exif.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil
	}

	lat, ok := readAxis(x, exif.GPSLatitude, exif.GPSLatitudeRef)
	if !ok {
		return nil
	}
	lon, ok := readAxis(x, exif.GPSLongitude, exif.GPSLongitudeRef)
	if !ok {
		return nil
	}

	return &models.Coordinate{Latitude: lat, Longitude: lon}
}

// readAxis reads one degree/minute/second triple plus its hemisphere
// reference and converts it to decimal degrees.
func readAxis(x *exif.Exif, field, refField exif.FieldName) (float64, bool) {
	tag, err := x.Get(field)
	if err != nil || tag.Count < 3 {
		return 0, false
	}

	var dms [3]float64
	for i := 0; i < 3; i++ {
		num, den, err := tag.Rat2(i)
		if err != nil || den == 0 {
			return 0, false
		}
		dms[i] = float64(num) / float64(den)
	}

	ref := ""
	if refTag, err := x.Get(refField); err == nil {
		if s, err := refTag.StringVal(); err == nil {
			ref = s
		} else {
			log.Debugf("unreadable GPS ref tag %s", refField)
		}
	}

	return DMSToDecimal(dms[0], dms[1], dms[2], ref), true
}

// DMSToDecimal converts a degree/minute/second triple to decimal degrees,
// negated for southern and western hemisphere references.
func DMSToDecimal(deg, min, sec float64, ref string) float64 {
	v := deg + min/60.0 + sec/3600.0
	if ref == "S" || ref == "W" {
		v = -v
	}
	return v
}
