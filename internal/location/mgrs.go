package location

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	UTM "github.com/im7mortal/UTM"
	"github.com/pkg/errors"
)

// Latitude bands C..X (I and O skipped), each spanning 8 degrees.
const latBands = "CDEFGHJKLMNPQRSTUVWX"

// Row letters for the 100 km grid squares, cycling every 2,000 km.
const rowLetters = "ABCDEFGHJKLMNPQRSTUV"

// Column letter sets; which set applies depends on the zone number.
var colSets = [3]string{"ABCDEFGH", "JKLMNPQR", "STUVWXYZ"}

// Minimum northing in meters for each latitude band, used to resolve the
// 2,000 km row-letter ambiguity.
var bandMinNorthing = map[byte]float64{
	'C': 1100000, 'D': 2000000, 'E': 2800000, 'F': 3700000,
	'G': 4600000, 'H': 5500000, 'J': 6400000, 'K': 7300000,
	'L': 8200000, 'M': 9100000, 'N': 0, 'P': 800000,
	'Q': 1700000, 'R': 2600000, 'S': 3500000, 'T': 4400000,
	'U': 5300000, 'V': 6200000, 'W': 7000000, 'X': 7900000,
}

var mgrsPattern = regexp.MustCompile(`^(\d{1,2})([A-Z])([A-Z])([A-Z])(\d{2,10})$`)

// GridToLatLon converts a military grid reference to geographic
// coordinates. The reference is decoded to a full UTM easting/northing and
// the inverse projection is delegated to the UTM library. Stateless; safe
// for concurrent use.
func GridToLatLon(ref string) (float64, float64, error) {
	normalized := strings.ToUpper(strings.TrimSpace(ref))

	m := mgrsPattern.FindStringSubmatch(normalized)
	if m == nil {
		return 0, 0, errors.Errorf("malformed grid reference %q", ref)
	}

	zone, err := strconv.Atoi(m[1])
	if err != nil || zone < 1 || zone > 60 {
		return 0, 0, errors.Errorf("invalid zone number in %q", ref)
	}

	band := m[2][0]
	if !strings.ContainsRune(latBands, rune(band)) {
		return 0, 0, errors.Errorf("invalid latitude band %q in %q", string(band), ref)
	}

	digits := m[5]
	if len(digits)%2 != 0 {
		return 0, 0, errors.Errorf("odd number of position digits in %q", ref)
	}

	e100k, err := squareEasting(zone, m[3][0])
	if err != nil {
		return 0, 0, errors.Wrapf(err, "grid reference %q", ref)
	}
	n100k, err := squareNorthing(zone, band, m[4][0])
	if err != nil {
		return 0, 0, errors.Wrapf(err, "grid reference %q", ref)
	}

	// Fewer than five digit pairs scale up to meters.
	precision := len(digits) / 2
	scale := math.Pow10(5 - precision)
	eastingDigits, _ := strconv.ParseFloat(digits[:precision], 64)
	northingDigits, _ := strconv.ParseFloat(digits[precision:], 64)

	easting := e100k + eastingDigits*scale
	northing := n100k + northingDigits*scale

	lat, lon, err := UTM.ToLatLon(easting, northing, zone, string(band))
	if err != nil {
		return 0, 0, errors.Wrapf(err, "UTM conversion of %q", ref)
	}
	return lat, lon, nil
}

// squareEasting resolves the 100 km column letter against the letter set
// for the zone.
func squareEasting(zone int, col byte) (float64, error) {
	set := colSets[(zone-1)%3]
	idx := strings.IndexByte(set, col)
	if idx < 0 {
		return 0, errors.Errorf("column letter %q not valid for zone %d", string(col), zone)
	}
	return float64(idx+1) * 100000, nil
}

// squareNorthing resolves the 100 km row letter. Even-numbered zones offset
// the row sequence by five letters; the band's minimum northing then picks
// the right 2,000 km cycle.
func squareNorthing(zone int, band, row byte) (float64, error) {
	idx := strings.IndexByte(rowLetters, row)
	if idx < 0 {
		return 0, errors.Errorf("row letter %q is not a valid grid row", string(row))
	}
	if zone%2 == 0 {
		idx = (idx - 5 + len(rowLetters)) % len(rowLetters)
	}

	n100k := float64(idx) * 100000
	for n100k < bandMinNorthing[band] {
		n100k += 2000000
	}
	return n100k, nil
}
