package internal

import "testing"

func TestIsRTL(t *testing.T) {
	tests := []struct {
		lang string
		want bool
	}{
		{"Persian", true},
		{" persian ", true},
		{"Farsi", true},
		{"French", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			if got := IsRTL(tt.lang); got != tt.want {
				t.Errorf("IsRTL(%q) = %v, want %v", tt.lang, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"chat noir", "chat_noir"},
		{"گربه", "گربه"},
		{"a/b\\c", "a_b_c"},
		{"deck-1_x", "deck-1_x"},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsRTLText(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"گربه", true},
		{"  ۱۲ سلام", true},
		{"chat", false},
		{"12 chats", false},
		{"", false},
		{"שלום", true},
	}

	for _, tt := range tests {
		if got := IsRTLText(tt.text); got != tt.want {
			t.Errorf("IsRTLText(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
