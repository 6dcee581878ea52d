package core

import "testing"

func TestParseHeightInches(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{`5'10"`, 70, true},
		{`5' 10`, 70, true},
		{`5'`, 60, true},
		{"5ft 10in", 70, true},
		{"5 feet 10 inches", 70, true},
		{"6 ft", 72, true},
		{"178 cm", 70, true},
		{"160cm", 63, true},
		{"70 in", 70, true},
		{`68"`, 68, true},
		{"5.8 ft", 0, false},
		{"5.10'", 0, false},
		{"tall", 0, false},
		{"", 0, false},
		{`5'14"`, 0, false},
		{"900 cm", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseHeightInches(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseHeightInches(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
