package astro

import (
	"testing"

	"github.com/poiesic/matchwell/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"Rohini", "Rohini", true},
		{"  ROHINI ", "Rohini", true},
		{"Libra, Rohini", "Rohini", true},
		{"purva-phalguni", "Purva Phalguni", true},
		{"Uttara Bhadrapada", "Uttara Bhadrapada", true},
		{"Star: Uttara Ashadha (Capricorn)", "Uttara Ashadha", true},
		{"Moolam", "Mula", true},
		{"swathi", "Swati", true},
		{"", "", false},
		{"Leo", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Resolve(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got.String())
			}
		})
	}
}

func TestNames(t *testing.T) {
	n := Names()
	require.Len(t, n, Count)
	assert.Equal(t, "Ashwini", n[0])
	assert.Equal(t, "Revati", n[26])
}

func TestCompatibility_UnknownStarIsNeutral(t *testing.T) {
	want := core.KundliResult{Score: 18, Total: 36}
	assert.Equal(t, want, Compatibility("Rohini", "unknown"))
	assert.Equal(t, want, Compatibility("", "Rohini"))
	assert.Equal(t, want, Compatibility("", ""))
}

func TestCompatibility_KnownPair(t *testing.T) {
	got := Compatibility("Libra, Rohini", "Hasta")

	assert.Equal(t, 36, got.Total)
	assert.Equal(t, 16, got.Score)
	require.Len(t, got.Details, 4)
	assert.Equal(t, core.KundliDetail{Name: "Nadi", Score: 8, Total: 8, Value1: "Antya", Value2: "Adi"}, got.Details[0])
	assert.Equal(t, core.KundliDetail{Name: "Gana", Score: 5, Total: 6, Value1: "Manushya", Value2: "Deva"}, got.Details[1])
	assert.Equal(t, 0, got.Details[2].Score)
	assert.Equal(t, 3, got.Details[3].Score)
}

func TestCompatibility_SameNadiScoresZeroEitherWay(t *testing.T) {
	// Ashwini and Ardra are both Adi.
	ab := Compatibility("Ashwini", "Ardra")
	ba := Compatibility("Ardra", "Ashwini")
	assert.Equal(t, 0, ab.Details[0].Score)
	assert.Equal(t, 0, ba.Details[0].Score)
}

func TestMatch_Properties(t *testing.T) {
	for a := range Nakshatra(Count) {
		for b := range Nakshatra(Count) {
			ab := Match(a, b)
			ba := Match(b, a)

			assert.Equal(t, 36, ab.Total)
			assert.GreaterOrEqual(t, ab.Score, 0)
			assert.LessOrEqual(t, ab.Score, 36)
			assert.Equal(t, ab, Match(a, b), "deterministic")
			assert.Equal(t, ab.Details[0].Score, ba.Details[0].Score, "nadi symmetric for %s/%s", a, b)
			assert.Equal(t, ab.Details[1].Score, ba.Details[1].Score, "gana symmetric for %s/%s", a, b)
			assert.Equal(t, ab.Details[2].Score, ba.Details[2].Score, "bhakoot symmetric for %s/%s", a, b)
		}
	}
}

func TestGanaScore(t *testing.T) {
	assert.Equal(t, 6, ganaScore(Rakshasa, Rakshasa))
	assert.Equal(t, 5, ganaScore(Manushya, Deva))
	assert.Equal(t, 1, ganaScore(Rakshasa, Manushya))
	assert.Equal(t, 0, ganaScore(Deva, Rakshasa))
}

func TestBhakootScore(t *testing.T) {
	assert.Equal(t, 7, bhakootScore(0, 0))
	assert.Equal(t, 0, bhakootScore(0, 2))
	assert.Equal(t, 0, bhakootScore(14, 0)) // 14 mod 12 = 2
	assert.Equal(t, 7, bhakootScore(0, 12)) // 12 mod 12 = 0
	assert.Equal(t, 7, bhakootScore(3, 4))
}
