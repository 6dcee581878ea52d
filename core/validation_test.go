package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidateProfile(t *testing.T) {
	validTime := time.Now().Add(-1 * time.Hour)
	futureTime := time.Now().Add(1 * time.Hour)

	tests := []struct {
		name    string
		profile *Profile
		wantErr error
	}{
		{
			name: "valid profile",
			profile: &Profile{
				Id:         1,
				Name:       "Priya",
				Gender:     GenderFemale,
				Age:        27,
				Email:      "priya@example.com",
				InsertedAt: validTime,
			},
			wantErr: nil,
		},
		{
			name: "valid profile with absent gender and age",
			profile: &Profile{
				Name: "Sam",
			},
			wantErr: nil,
		},
		{
			name: "valid profile with malformed height",
			profile: &Profile{
				Name:     "Ravi",
				Metadata: Metadata{Height: "tallish"},
			},
			wantErr: nil,
		},
		{
			name:    "nil profile",
			profile: nil,
			wantErr: ErrInvalidProfile,
		},
		{
			name:    "empty name",
			profile: &Profile{Name: "  "},
			wantErr: ErrEmptyName,
		},
		{
			name:    "unknown gender",
			profile: &Profile{Name: "Kim", Gender: Gender("other")},
			wantErr: ErrInvalidGender,
		},
		{
			name:    "underage",
			profile: &Profile{Name: "Kid", Age: 16},
			wantErr: ErrInvalidProfile,
		},
		{
			name:    "bad email",
			profile: &Profile{Name: "Anil", Email: "not-an-email"},
			wantErr: ErrInvalidProfile,
		},
		{
			name: "negative income",
			profile: &Profile{
				Name:     "Meera",
				Metadata: Metadata{Career: Career{AnnualIncome: -5}},
			},
			wantErr: ErrInvalidProfile,
		},
		{
			name:    "future insert timestamp",
			profile: &Profile{Name: "Dev", InsertedAt: futureTime},
			wantErr: ErrInvalidTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProfile(tt.profile)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateProfile() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Errorf("ValidateProfile() error = nil, want %v", tt.wantErr)
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateProfile() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
