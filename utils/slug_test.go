package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Rugs":             "rugs",
		"Outdoor Fabrics":  "outdoor-fabrics",
		"  Velvet  Plain ": "velvet-plain",
		"Rugs & Carpets":   "rugs-and-carpets",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	if Slugify("Linen Blend") != Slugify("Linen Blend") {
		t.Fatal("slug must be deterministic")
	}
}
