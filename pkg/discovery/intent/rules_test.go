package intent

import "testing"

func TestIsBrowsing(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    bool
	}{
		{"recommendation request", "Can you recommend something for my sister?", true},
		{"gift phrasing", "I need a gift for my friend", true},
		{"show me", "Show me what's trending", true},
		{"explicit want", "I want an xbox", false},
		{"availability question", "Do you have playstation 5?", false},
		{"explicit want beats recommend", "I want a nintendo switch, any ideas?", false},
		{"plain statement", "nike air max", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBrowsing(tt.message); got != tt.want {
				t.Errorf("IsBrowsing(%q) = %v, want %v", tt.message, got, tt.want)
			}
		})
	}
}
