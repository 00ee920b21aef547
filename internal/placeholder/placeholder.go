// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package placeholder implements the {token} substitution engine used
// for page titles, slugs, and flat HTML templates. The token vocabulary
// is derived from a (city, state, service) tuple and is the stable
// authoring contract for all stored templates.
package placeholder

import (
	"fmt"
	"regexp"
	"strings"

	"localpress/internal/slug"
)

// tokenRe matches a {token} occurrence. Token names are lowercase
// identifiers; anything else between braces is left alone.
var tokenRe = regexp.MustCompile(`\{[a-z][a-z0-9_]*\}`)

// Substitute replaces every {name} token in template with its value
// from vars. Unknown tokens pass through verbatim — templates may
// legitimately contain braces outside the variable set. Substituted
// values are never re-scanned, so the operation is a single pass and
// idempotent once no known tokens remain.
func Substitute(template string, vars map[string]string) string {
	return tokenRe.ReplaceAllStringFunc(template, func(token string) string {
		name := token[1 : len(token)-1]
		if value, ok := vars[name]; ok {
			return value
		}
		return token
	})
}

// Vars builds the full token vocabulary for one city/service pairing.
// siteURL is the marketplace root (no trailing slash).
func Vars(city, state, service, serviceSlug, siteURL string) map[string]string {
	stateAbbr := StateAbbr(state)
	citySlug := slug.Generate(city)
	siteURL = strings.TrimRight(siteURL, "/")

	return map[string]string{
		"city":             city,
		"city_slug":        citySlug,
		"state":            state,
		"state_abbr":       stateAbbr,
		"state_abbr_lower": strings.ToLower(stateAbbr),
		"state_lower":      strings.ToLower(state),
		"service":          service,
		"service_slug":     serviceSlug,
		"service_lower":    strings.ToLower(service),
		"city_state":       fmt.Sprintf("%s, %s", city, state),
		"city_state_abbr":  fmt.Sprintf("%s, %s", city, stateAbbr),
		"listing_url":      fmt.Sprintf("%s/listing-category/%s/", siteURL, serviceSlug),
		"provider_url":     siteURL + "/submit-listing/",
		"site_url":         siteURL,
	}
}
