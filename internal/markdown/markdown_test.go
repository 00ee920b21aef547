package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name:   "heading with anchor id",
			source: "## Best Massage in Miami",
			want:   []string{"<h2 id=\"best-massage-in-miami\">", "Best Massage in Miami</h2>"},
		},
		{
			name:   "paragraph and emphasis",
			source: "Find **trusted** providers.",
			want:   []string{"<p>", "<strong>trusted</strong>"},
		},
		{
			name:   "gfm table",
			source: "| Service | Price |\n|---|---|\n| Massage | $80 |",
			want:   []string{"<table>", "<td>Massage</td>"},
		},
		{
			name:   "raw html passes through",
			source: "<div class=\"cta\">Book now</div>",
			want:   []string{"<div class=\"cta\">Book now</div>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.source)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML(%q) = %q, missing %q", tt.source, got, want)
				}
			}
		})
	}
}
