package astro

import "github.com/poiesic/matchwell/core"

// Point allocations of the modeled components.
const (
	TotalPoints   = 36
	NadiPoints    = 8
	GanaPoints    = 6
	BhakootPoints = 7
	OtherPoints   = 15

	// NeutralScore is returned when either star cannot be resolved.
	NeutralScore = 18
)

// Nadi is the pulse category of a Nakshatra.
type Nadi int

const (
	Adi Nadi = iota
	Madhya
	Antya
)

func (n Nadi) String() string {
	return [...]string{"Adi", "Madhya", "Antya"}[n]
}

// Gana is the temperament category of a Nakshatra.
type Gana int

const (
	Deva Gana = iota
	Manushya
	Rakshasa
)

func (g Gana) String() string {
	return [...]string{"Deva", "Manushya", "Rakshasa"}[g]
}

var nadiOf = [Count]Nadi{
	Adi, Madhya, Antya, Antya, Madhya, Adi, Adi, Madhya, Antya,
	Antya, Madhya, Adi, Adi, Madhya, Antya, Antya, Madhya, Adi,
	Adi, Madhya, Antya, Antya, Madhya, Adi, Adi, Madhya, Antya,
}

var ganaOf = [Count]Gana{
	Deva, Manushya, Rakshasa, Manushya, Deva, Manushya, Deva, Deva, Rakshasa,
	Rakshasa, Manushya, Manushya, Deva, Rakshasa, Deva, Rakshasa, Deva, Rakshasa,
	Rakshasa, Manushya, Manushya, Deva, Rakshasa, Rakshasa, Manushya, Manushya, Deva,
}

// Distances (mod 12) that make Bhakoot incompatible. 12 can never occur
// after the modulus and is kept for parity with the traditional table.
var bhakootIncompatible = map[int]bool{2: true, 5: true, 6: true, 8: true, 9: true, 12: true}

// NadiOf returns the Nadi category of n.
func NadiOf(n Nakshatra) Nadi { return nadiOf[n] }

// GanaOf returns the Gana category of n.
func GanaOf(n Nakshatra) Gana { return ganaOf[n] }

// Neutral is the result used when a birth star is missing or unknown.
func Neutral() core.KundliResult {
	return core.KundliResult{Score: NeutralScore, Total: TotalPoints}
}

// Compatibility scores two free-text birth stars. It is pure: the same
// inputs always produce the same result. Unresolvable input on either side
// yields Neutral.
func Compatibility(starA, starB string) core.KundliResult {
	a, okA := Resolve(starA)
	b, okB := Resolve(starB)
	if !okA || !okB {
		return Neutral()
	}
	return Match(a, b)
}

// Match scores two resolved Nakshatras.
func Match(a, b Nakshatra) core.KundliResult {
	nadi := nadiScore(a, b)
	gana := ganaScore(ganaOf[a], ganaOf[b])
	bhakoot := bhakootScore(a, b)
	other := (a.Index()*13 + b.Index()*7) % OtherPoints

	total := min(nadi+gana+bhakoot+other, TotalPoints)
	return core.KundliResult{
		Score: total,
		Total: TotalPoints,
		Details: []core.KundliDetail{
			{Name: "Nadi", Score: nadi, Total: NadiPoints, Value1: nadiOf[a].String(), Value2: nadiOf[b].String()},
			{Name: "Gana", Score: gana, Total: GanaPoints, Value1: ganaOf[a].String(), Value2: ganaOf[b].String()},
			{Name: "Bhakoot", Score: bhakoot, Total: BhakootPoints},
			{Name: "Other", Score: other, Total: OtherPoints},
		},
	}
}

func nadiScore(a, b Nakshatra) int {
	if nadiOf[a] == nadiOf[b] {
		return 0
	}
	return NadiPoints
}

func ganaScore(a, b Gana) int {
	if a == b {
		return GanaPoints
	}
	if a > b {
		a, b = b, a
	}
	switch {
	case a == Deva && b == Manushya:
		return 5
	case a == Manushya && b == Rakshasa:
		return 1
	}
	return 0
}

func bhakootScore(a, b Nakshatra) int {
	d := a.Index() - b.Index()
	if d < 0 {
		d = -d
	}
	if bhakootIncompatible[d%12] {
		return 0
	}
	return BhakootPoints
}
