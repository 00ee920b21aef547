package models

import "testing"

func TestPageTemplatePatterns(t *testing.T) {
	t.Run("defaults when unset", func(t *testing.T) {
		tpl := &PageTemplate{}
		if got := tpl.TitlePattern(); got != DefaultTitleTemplate {
			t.Errorf("TitlePattern() = %q, want default", got)
		}
		if got := tpl.SlugPattern(); got != DefaultSlugTemplate {
			t.Errorf("SlugPattern() = %q, want default", got)
		}
	})

	t.Run("custom patterns win", func(t *testing.T) {
		tpl := &PageTemplate{
			TitleTemplate: "Best {service} near {city}",
			SlugTemplate:  "{city_slug}-{service_slug}",
		}
		if got := tpl.TitlePattern(); got != "Best {service} near {city}" {
			t.Errorf("TitlePattern() = %q", got)
		}
		if got := tpl.SlugPattern(); got != "{city_slug}-{service_slug}" {
			t.Errorf("SlugPattern() = %q", got)
		}
	})
}
