package retrieval

import (
	"testing"

	"shopchat-be/internal/constant"
)

func TestAgeRangeForAge(t *testing.T) {
	tests := []struct {
		age  string
		want string
	}{
		{"11", constant.AgeRange10to12},
		{"14", constant.AgeRange13to15},
		{"17 years old", constant.AgeRange16to18},
		{"I'm 20", constant.AgeRange19to21},
		{"9", ""},
		{"22", ""},
		{"teen", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := AgeRangeForAge(tt.age); got != tt.want {
			t.Errorf("AgeRangeForAge(%q) = %q, want %q", tt.age, got, tt.want)
		}
	}
}

func TestNormalizeGender(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"male", constant.GenderMale},
		{"Boy", constant.GenderMale},
		{"f", constant.GenderFemale},
		{"Girl", constant.GenderFemale},
		{"nonbinary", constant.GenderUnisex},
		{"", constant.GenderUnisex},
	}

	for _, tt := range tests {
		if got := NormalizeGender(tt.in); got != tt.want {
			t.Errorf("NormalizeGender(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
