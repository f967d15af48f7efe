package reel

import "testing"

func TestYears_NewestFirst(t *testing.T) {
	got := Years()
	want := []string{"2025", "2024", "2023"}
	if len(got) != len(want) {
		t.Fatalf("expected %d years, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	if Latest() != "2025" {
		t.Fatalf("expected latest 2025, got %s", Latest())
	}
}

func TestGet(t *testing.T) {
	c, ok := Get("2024")
	if !ok {
		t.Fatal("expected 2024 to be configured")
	}
	if c.Title != "ECHOES" || c.BackgroundImage != "" {
		t.Fatalf("unexpected config: %+v", c)
	}
	if IsValid("1999") {
		t.Fatal("1999 must not be a reel year")
	}
	if c, _ := Get("2025"); c.BackgroundImage == "" {
		t.Fatal("2025 should carry a background image")
	}
}
