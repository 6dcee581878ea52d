package badger

import (
	"encoding/binary"

	"github.com/poiesic/matchwell/core"
)

// Key prefixes for different data types
const (
	profilePrefix   = "prof:"
	profileIDSeq    = "profseq"
	presencePrefix  = "pres:"
	dismissalPrefix = "dism:"
)

// appendID writes id in BigEndian order so lexicographic key order matches
// numeric ID order.
func appendID(buf []byte, id core.ID) []byte {
	return binary.BigEndian.AppendUint64(buf, uint64(id))
}

// makeProfileKey generates a key for a profile by ID.
// Format: prefix + 8-byte ID
func makeProfileKey(id core.ID) []byte {
	return appendID([]byte(profilePrefix), id)
}

// profileIDFromKey extracts the ID from a profile key.
func profileIDFromKey(key []byte) core.ID {
	return core.ID(binary.BigEndian.Uint64(key[len(profilePrefix):]))
}

// makePresenceKey generates the presence key for a user.
func makePresenceKey(id core.ID) []byte {
	return appendID([]byte(presencePrefix), id)
}

// makeDismissalKey generates a composite key for a dismissed recommendation.
// Format: prefix + seekerID + candidateID
func makeDismissalKey(seeker, candidate core.ID) []byte {
	return appendID(makePartialDismissalKey(seeker), candidate)
}

// makePartialDismissalKey generates the prefix covering all of a seeker's dismissals.
func makePartialDismissalKey(seeker core.ID) []byte {
	return appendID([]byte(dismissalPrefix), seeker)
}

// dismissedIDFromKey extracts the candidate ID from a dismissal key.
func dismissedIDFromKey(key []byte) core.ID {
	return core.ID(binary.BigEndian.Uint64(key[len(key)-8:]))
}
