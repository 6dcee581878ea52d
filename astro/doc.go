// Package astro computes a simplified Vedic (Ashtakoot) compatibility score
// between two birth stars.
//
// Nadi (8), Gana (6) and Bhakoot (7) are modeled from fixed membership
// tables. The remaining 15 points stand in for Varna, Vashya, Tara, Yoni and
// Graha Maitri and come from a fixed formula over the two star indexes, so a
// pair always scores the same. Missing or unknown stars score a neutral 18/36.
package astro
