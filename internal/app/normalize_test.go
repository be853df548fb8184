package app

import "testing"

func TestNormalizeTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Naruto", "naruto"},
		{"NARUTO", "naruto"},
		{"  Naruto  ", "naruto"},
		{"Pokémon", "pokemon"},
		{"Fate/Zero", "fate zero"},
		// Punctuation becomes a space without collapsing, so the colon
		// spelling never equals the plain one.
		{"Naruto: Shippuden", "naruto  shippuden"},
		{"Naruto Shippuden", "naruto shippuden"},
		{"86", ""},
	}
	for _, c := range cases {
		if got := NormalizeTitle(c.in); got != c.want {
			t.Fatalf("NormalizeTitle(%q): want %q, got %q", c.in, c.want, got)
		}
	}
}

func TestCorrectTitle(t *testing.T) {
	if got := CorrectTitle("Naruto Shippuuden"); got != "naruto shippuden" {
		t.Fatalf("known misspelling not corrected: got %q", got)
	}
	if got := CorrectTitle("One Piece"); got != "One Piece" {
		t.Fatalf("unknown title must pass through: got %q", got)
	}
}
