package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Profile IDs come from storage sequences; content digests use IDFromContent.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Gender is the closed set used for opposite-gender filtering.
// The zero value means the gender is absent.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ParseGender maps free text onto the closed gender set. Anything
// unrecognized yields the absent gender.
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m", "man":
		return GenderMale
	case "female", "f", "woman":
		return GenderFemale
	}
	return ""
}

// Known reports whether g is one of the closed set values.
func (g Gender) Known() bool {
	return g == GenderMale || g == GenderFemale
}

// Opposite returns the gender candidates must have for a seeker of gender g.
// Absent genders have no opposite.
func (g Gender) Opposite() Gender {
	switch g {
	case GenderMale:
		return GenderFemale
	case GenderFemale:
		return GenderMale
	}
	return ""
}

// Profile is the shared shape of seekers and candidates.
type Profile struct {
	Id            ID        `json:"id"`
	Name          string    `json:"name" validate:"required,max=200"`
	Gender        Gender    `json:"gender,omitempty" validate:"omitempty,oneof=male female"`
	Age           int       `json:"age,omitempty" validate:"omitempty,gte=18,lte=120"`
	Bio           string    `json:"bio,omitempty" validate:"max=5000"`
	Premium       bool      `json:"premium,omitempty"`
	LikesReceived int       `json:"likes_received,omitempty" validate:"gte=0"`
	Phone         string    `json:"phone,omitempty" validate:"omitempty,max=32"`
	Email         string    `json:"email,omitempty" validate:"omitempty,email"`
	Metadata      Metadata  `json:"metadata"`
	BioVector     []float32 `json:"bio_vector,omitempty"` // Bio embedding (populated by backfill)
	BioDigest     ID        `json:"bio_digest,omitempty"` // IDFromContent of the bio BioVector was computed from
	InsertedAt    time.Time `json:"inserted_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Metadata holds the structured profile attributes used by matching.
type Metadata struct {
	Religion      Religion  `json:"religion"`
	Career        Career    `json:"career"`
	Lifestyle     Lifestyle `json:"lifestyle"`
	Horoscope     Horoscope `json:"horoscope"`
	Location      Location  `json:"location"`
	Height        string    `json:"height,omitempty" validate:"max=32"`
	Hobbies       []string  `json:"hobbies,omitempty" validate:"max=50,dive,max=100"`
	MaritalStatus string    `json:"marital_status,omitempty"`
	FamilyValues  string    `json:"family_values,omitempty"`
	Appearance    string    `json:"appearance,omitempty"`
}

type Religion struct {
	Religion string `json:"religion,omitempty"`
	Caste    string `json:"caste,omitempty"`
	Gothra   string `json:"gothra,omitempty"`
}

type Career struct {
	Profession   string    `json:"profession,omitempty"`
	Company      string    `json:"company,omitempty"`
	AnnualIncome int64     `json:"annual_income,omitempty" validate:"gte=0"`
	Education    Education `json:"education"`
}

type Education struct {
	Level       string `json:"level,omitempty"`
	Institution string `json:"institution,omitempty"`
}

type Lifestyle struct {
	Diet     string `json:"diet,omitempty"`
	Smoking  string `json:"smoking,omitempty"`
	Drinking string `json:"drinking,omitempty"`
}

type Horoscope struct {
	Nakshatra string `json:"nakshatra,omitempty"`
	Rashi     string `json:"rashi,omitempty"`
}

type Location struct {
	City     string `json:"city,omitempty"`
	District string `json:"district,omitempty"`
	State    string `json:"state,omitempty"`
	Address  string `json:"address,omitempty"`
}

// Clone returns a copy of the profile that shares no slices with p.
func (p *Profile) Clone() Profile {
	c := *p
	if p.BioVector != nil {
		c.BioVector = append([]float32(nil), p.BioVector...)
	}
	if p.Metadata.Hobbies != nil {
		c.Metadata.Hobbies = append([]string(nil), p.Metadata.Hobbies...)
	}
	return c
}

// HasCurrentBioVector reports whether the stored bio vector was computed
// from the profile's current bio.
func (p *Profile) HasCurrentBioVector() bool {
	return len(p.BioVector) > 0 && p.BioDigest == IDFromContent(p.Bio)
}
