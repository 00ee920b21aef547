// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package elementor

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"localpress/internal/placeholder"
)

// textFields are the settings keys swept by the literal city pass on
// non-button widgets.
var textFields = [...]string{"title", "editor", "title_text", "description_text"}

// ReplaceCity performs the post-rewrite city pass over the whole tree:
// every case-insensitive occurrence of oldCity in a text field becomes
// newCity, and every button that carried a link gets its target rebuilt
// as a marketplace search URL for the new city. The AI rewrite step
// sometimes echoes the template's original city back; this pass is what
// guarantees the published page never mentions it. When no source city
// was detected, or it already matches the target, the pass does nothing
// at all, leaving authored button links intact.
func ReplaceCity(nodes []*Node, oldCity, newCity, newState, serviceSlug, siteURL string) {
	if oldCity == "" || strings.EqualFold(oldCity, newCity) {
		return
	}
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(oldCity))
	buttonURL := searchURL(siteURL, newCity, newState, serviceSlug)

	for _, n := range nodes {
		replaceInNode(n, re, newCity, buttonURL)
	}
}

func replaceInNode(n *Node, re *regexp.Regexp, newCity, buttonURL string) {
	if n.WidgetType == WidgetButton {
		if text := n.textSetting("text"); text != "" {
			n.setTextSetting("text", re.ReplaceAllLiteralString(text, newCity))
		}
		// Buttons with a link always point at the new city's search
		// results, whether or not the label mentioned the old city.
		if n.linkURL() != "" {
			n.setLinkURL(buttonURL)
		}
	} else {
		for _, field := range textFields {
			if text := n.textSetting(field); text != "" {
				n.setTextSetting(field, re.ReplaceAllLiteralString(text, newCity))
			}
		}
	}

	for _, child := range n.Elements {
		replaceInNode(child, re, newCity, buttonURL)
	}
}

// searchURL builds the marketplace listing-search URL buttons link to.
func searchURL(siteURL, city, state, serviceSlug string) string {
	location := fmt.Sprintf("%s, %s", city, placeholder.StateAbbr(state))
	return fmt.Sprintf("%s/?s=%s&post_type=hp_listing&_category=%s&location=%s",
		siteURL,
		url.QueryEscape(city),
		url.QueryEscape(serviceSlug),
		url.QueryEscape(location),
	)
}
