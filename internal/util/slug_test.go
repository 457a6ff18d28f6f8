package util

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Harvest Season 2026", "harvest-season-2026"},
		{"  New   Dairy Facility!  ", "new-dairy-facility"},
		{"Crème Brûlée & Café", "creme-brulee-cafe"},
		{"already-a-slug", "already-a-slug"},
		{"UPPER_case__title", "upper-case-title"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := Slugify(tc.input); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	titles := []string{
		"Harvest Season 2026",
		"Crème Brûlée & Café",
		"   ---   ",
		"混合 Title 标题",
	}

	for _, title := range titles {
		once := Slugify(title)
		twice := Slugify(once)
		if once != twice {
			t.Fatalf("Slugify not idempotent for %q: %q != %q", title, once, twice)
		}
	}
}

func TestSlugifySymbolsOnly(t *testing.T) {
	for _, input := range []string{"!!!", "&&&", "---", "@#$%^&*", "。。。"} {
		if got := Slugify(input); got != "" {
			t.Fatalf("Slugify(%q) = %q, want empty", input, got)
		}
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"a", "harvest-2026", "x-y-z"}
	invalid := []string{"", "-lead", "trail-", "double--hyphen", "Upper", "with space"}

	for _, s := range valid {
		if !IsValidSlug(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	for _, s := range invalid {
		if IsValidSlug(s) {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}
