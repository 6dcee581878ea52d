package astro

import (
	"sort"
	"strings"
	"unicode"
)

// Nakshatra is one of the 27 birth stars, identified by its canonical index.
type Nakshatra int

// Count is the number of Nakshatras.
const Count = 27

var names = [Count]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni", "Uttara Phalguni",
	"Hasta", "Chitra", "Swati", "Vishakha", "Anuradha", "Jyeshtha",
	"Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana", "Dhanishta", "Shatabhisha",
	"Purva Bhadrapada", "Uttara Bhadrapada", "Revati",
}

// Alternate spellings seen in user-entered horoscope fields.
var aliases = map[string]Nakshatra{
	"aswini":          0,
	"ashvini":         0,
	"bharni":          1,
	"kritika":         2,
	"karthigai":       2,
	"krithika":        2,
	"rohni":           3,
	"mrigasira":       4,
	"mrigashirsha":    4,
	"aridra":          5,
	"arudra":          5,
	"thiruvathirai":   5,
	"punarpoosam":     6,
	"pushyami":        7,
	"poosam":          7,
	"aslesha":         8,
	"ayilyam":         8,
	"makha":           9,
	"magam":           9,
	"purvaphalguni":   10,
	"pubba":           10,
	"uttaraphalguni":  11,
	"hastha":          12,
	"chithirai":       13,
	"chitta":          13,
	"swathi":          14,
	"svati":           14,
	"visakha":         15,
	"vishaka":         15,
	"anusham":         16,
	"jyestha":         17,
	"jyeshta":         17,
	"kettai":          17,
	"moola":           18,
	"moolam":          18,
	"purvashada":      19,
	"poorvashada":     19,
	"uttarashada":     20,
	"uthradam":        20,
	"sravana":         21,
	"shravan":         21,
	"thiruvonam":      21,
	"dhanista":        22,
	"dhanishtha":      22,
	"avittam":         22,
	"shatabhishak":    23,
	"satabhisha":      23,
	"sadayam":         23,
	"purvabhadra":     24,
	"poorvabhadra":    24,
	"uttarabhadra":    25,
	"uthrattathi":     25,
	"revathi":         26,
}

// lookup maps normalized names (canonical and alias) to their Nakshatra.
var lookup map[string]Nakshatra

// byLength holds every normalized name, longest first, for substring resolution.
var byLength []string

func init() {
	lookup = make(map[string]Nakshatra, Count+len(aliases))
	for i, n := range names {
		lookup[normalize(n)] = Nakshatra(i)
	}
	for k, v := range aliases {
		lookup[k] = v
	}
	byLength = make([]string, 0, len(lookup))
	for k := range lookup {
		byLength = append(byLength, k)
	}
	sort.Slice(byLength, func(i, j int) bool {
		if len(byLength[i]) != len(byLength[j]) {
			return len(byLength[i]) > len(byLength[j])
		}
		return byLength[i] < byLength[j]
	})
}

// normalize lower-cases s and drops everything but letters.
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Resolve finds the Nakshatra named in free text. An exact match on the
// normalized text wins; otherwise the longest known name contained in the
// text is used, so "Libra, Rohini" resolves to Rohini.
func Resolve(text string) (Nakshatra, bool) {
	n := normalize(text)
	if n == "" {
		return 0, false
	}
	if nk, ok := lookup[n]; ok {
		return nk, true
	}
	for _, name := range byLength {
		if strings.Contains(n, name) {
			return lookup[name], true
		}
	}
	return 0, false
}

// Index is the position of n in the canonical order, 0 based.
func (n Nakshatra) Index() int {
	return int(n)
}

func (n Nakshatra) String() string {
	if n < 0 || int(n) >= Count {
		return "Unknown"
	}
	return names[n]
}

// Names returns the canonical Nakshatra names in order.
func Names() []string {
	out := make([]string, Count)
	copy(out, names[:])
	return out
}
