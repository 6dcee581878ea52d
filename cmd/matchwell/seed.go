package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/poiesic/matchwell/astro"
	"github.com/poiesic/matchwell/core"
	"gopkg.in/yaml.v3"
)

// loadProfiles reads a YAML or JSON list of profiles. Keys follow the JSON
// field names of core.Profile in both formats.
func loadProfiles(path string) ([]*core.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}

	// YAML is a superset of JSON, so one decoder handles both. Round-tripping
	// through JSON applies the json struct tags.
	var raw []any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse profiles %s: %w", path, err)
	}
	asJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("parse profiles %s: %w", path, err)
	}
	var profiles []*core.Profile
	if err := json.Unmarshal(asJSON, &profiles); err != nil {
		return nil, fmt.Errorf("parse profiles %s: %w", path, err)
	}
	if len(profiles) == 0 {
		return nil, errors.New("profile file is empty")
	}
	return profiles, nil
}

var (
	femaleNames = []string{"Priya", "Ananya", "Divya", "Kavya", "Meera", "Lakshmi", "Sneha", "Pooja", "Aishwarya", "Deepika", "Swathi", "Harini"}
	maleNames   = []string{"Arjun", "Rahul", "Vikram", "Karthik", "Suresh", "Aditya", "Rohan", "Nikhil", "Sanjay", "Vivek", "Manoj", "Harsha"}
	surnames    = []string{"Reddy", "Iyer", "Sharma", "Nair", "Rao", "Patel", "Menon", "Gupta", "Naidu", "Kulkarni"}
	cities      = []string{"Hyderabad", "Bangalore", "Chennai", "Mumbai", "Pune", "Delhi", "Kolkata", "Ahmedabad"}
	professions = []string{"Software Engineer", "Doctor", "Teacher", "Chartered Accountant", "Lawyer", "Data Scientist", "Business Owner", "Civil Engineer"}
	religions   = []string{"Hindu", "Hindu", "Hindu", "Muslim", "Christian", "Sikh", "Jain"}
	castes      = []string{"Reddy", "Iyer", "Brahmin", "Kamma", "Nair", "Maratha", ""}
	diets       = []string{"Vegetarian", "Non-Vegetarian", "Eggetarian", "Vegan"}
	habits      = []string{"No", "No", "No", "Occasionally", "Yes"}
	maritals    = []string{"Never Married", "Never Married", "Never Married", "Divorced", "Widowed"}
	hobbies     = []string{"music", "trekking", "cooking", "reading", "travel", "photography", "cricket", "dance", "yoga", "painting"}
	bioOpeners  = []string{
		"I enjoy a quiet weekend with family and good books.",
		"Passionate about my work and always learning something new.",
		"Love travelling to the mountains and trying local food.",
		"Family oriented person who values honesty and kindness.",
		"Tired of small talk, looking for meaningful conversations.",
	}
)

// generateProfiles returns count deterministic synthetic profiles.
func generateProfiles(count int, seed uint64) []*core.Profile {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	pick := func(s []string) string { return s[r.IntN(len(s))] }
	stars := astro.Names()

	profiles := make([]*core.Profile, count)
	for i := range profiles {
		gender := core.GenderFemale
		first := pick(femaleNames)
		if i%2 == 1 {
			gender = core.GenderMale
			first = pick(maleNames)
		}
		religion := pick(religions)
		caste := ""
		if religion == "Hindu" {
			caste = pick(castes)
		}
		profession := pick(professions)
		interests := []string{pick(hobbies), pick(hobbies)}

		profiles[i] = &core.Profile{
			Name:          first + " " + pick(surnames),
			Gender:        gender,
			Age:           22 + r.IntN(17),
			Bio:           fmt.Sprintf("%s I work as a %s and spend my free time on %s and %s.", pick(bioOpeners), profession, interests[0], interests[1]),
			Premium:       r.IntN(5) == 0,
			LikesReceived: r.IntN(200),
			Phone:         fmt.Sprintf("+91 9%09d", r.IntN(1_000_000_000)),
			Email:         fmt.Sprintf("user%d@example.com", i+1),
			Metadata: core.Metadata{
				Religion:      core.Religion{Religion: religion, Caste: caste},
				Career:        core.Career{Profession: profession, AnnualIncome: int64(3+r.IntN(40)) * 100_000},
				Lifestyle:     core.Lifestyle{Diet: pick(diets), Smoking: pick(habits), Drinking: pick(habits)},
				Horoscope:     core.Horoscope{Nakshatra: pick(stars)},
				Location:      core.Location{City: pick(cities)},
				Height:        fmt.Sprintf("%d'%d\"", 5, r.IntN(12)),
				Hobbies:       interests,
				MaritalStatus: pick(maritals),
			},
		}
	}
	return profiles
}
