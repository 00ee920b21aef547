package slug

import "testing"

// TestGenerate exercises the slug generator with city names, service
// names, punctuation, and boundary conditions.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// --- City names ---
		{
			name:  "two word city",
			input: "Fort Lauderdale",
			want:  "fort-lauderdale",
		},
		{
			name:  "abbreviated city",
			input: "St. Louis",
			want:  "st-louis",
		},
		{
			name:  "three word city",
			input: "Salt Lake City",
			want:  "salt-lake-city",
		},
		{
			name:  "single word city",
			input: "Miami",
			want:  "miami",
		},
		{
			name:  "apostrophe in name",
			input: "Coeur d'Alene",
			want:  "coeur-d-alene",
		},
		{
			name:  "hyphenated name preserved as separator",
			input: "Winston-Salem",
			want:  "winston-salem",
		},

		// --- Punctuation collapses ---
		{
			name:  "comma separated",
			input: "Miami, Florida",
			want:  "miami-florida",
		},
		{
			name:  "mixed punctuation run collapses to one hyphen",
			input: "Massage -- & Wellness",
			want:  "massage-wellness",
		},
		{
			name:  "parentheses",
			input: "Cleaning (Deep)",
			want:  "cleaning-deep",
		},

		// --- Whitespace and hyphen trimming ---
		{
			name:  "leading and trailing spaces",
			input: "  hollywood  ",
			want:  "hollywood",
		},
		{
			name:  "leading hyphens trimmed",
			input: "---beauty",
			want:  "beauty",
		},
		{
			name:  "trailing punctuation trimmed",
			input: "wellness!!!",
			want:  "wellness",
		},

		// --- Numbers ---
		{
			name:  "digits kept",
			input: "Area 51 Services",
			want:  "area-51-services",
		},
		{
			name:  "version-like string",
			input: "Spa 2.0",
			want:  "spa-2-0",
		},

		// --- Edge cases ---
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only punctuation",
			input: "!@#$%",
			want:  "",
		},
		{
			name:  "only spaces",
			input: "   ",
			want:  "",
		},
		{
			name:  "already a slug",
			input: "pembroke-pines",
			want:  "pembroke-pines",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.input)
			if got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestGenerate_Idempotent verifies that slugging an existing slug is a no-op.
func TestGenerate_Idempotent(t *testing.T) {
	slugs := []string{
		"fort-lauderdale",
		"st-louis",
		"massage",
		"boca-raton",
	}

	for _, s := range slugs {
		t.Run(s, func(t *testing.T) {
			if got := Generate(s); got != s {
				t.Errorf("Generate(%q) = %q, want idempotent result %q", s, got, s)
			}
		})
	}
}
