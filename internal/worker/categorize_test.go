package worker

import (
	"sort"
	"testing"
)

func TestMatchCategories(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		want        []string
	}{
		{
			name:  "gaming console",
			title: "Xbox Series X Console",
			want:  []string{"gaming"},
		},
		{
			name:        "multi category",
			title:       "Gaming Laptop",
			description: "portable laptop for gaming",
			want:        []string{"electronics", "gaming"},
		},
		{
			name:  "no match",
			title: "Mystery Box",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchCategories(tt.title, tt.description)
			sort.Strings(got)
			if len(got) != len(tt.want) {
				t.Fatalf("matchCategories = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("category %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
