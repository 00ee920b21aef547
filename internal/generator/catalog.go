// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

// CityState is one target locality.
type CityState struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// Cities is the rollout list, in priority order. The daily scheduler
// walks it top to bottom; batch runs may target any subset.
var Cities = []CityState{
	{"Miami", "Florida"},
	{"Fort Lauderdale", "Florida"},
	{"Los Angeles", "California"},
	{"New York", "New York"},
	{"Hollywood", "Florida"},
	{"Dallas", "Texas"},
	{"Houston", "Texas"},
	{"San Antonio", "Texas"},
	{"Austin", "Texas"},
	{"Chicago", "Illinois"},
	{"Phoenix", "Arizona"},
	{"San Diego", "California"},
	{"San Francisco", "California"},
	{"San Jose", "California"},
	{"Philadelphia", "Pennsylvania"},
	{"Jacksonville", "Florida"},
	{"Orlando", "Florida"},
	{"Tampa", "Florida"},
	{"Atlanta", "Georgia"},
	{"Charlotte", "North Carolina"},
	{"Denver", "Colorado"},
	{"Seattle", "Washington"},
	{"Portland", "Oregon"},
	{"Nashville", "Tennessee"},
	{"Las Vegas", "Nevada"},
	{"Boston", "Massachusetts"},
	{"Washington", "Washington"},
	{"Baltimore", "Maryland"},
	{"Detroit", "Michigan"},
	{"Minneapolis", "Minnesota"},
	{"Columbus", "Ohio"},
	{"Cleveland", "Ohio"},
	{"Cincinnati", "Ohio"},
	{"Indianapolis", "Indiana"},
	{"Kansas City", "Missouri"},
	{"St. Louis", "Missouri"},
	{"New Orleans", "Louisiana"},
	{"Pittsburgh", "Pennsylvania"},
	{"Sacramento", "California"},
	{"Salt Lake City", "Utah"},
	{"Raleigh", "North Carolina"},
	{"Richmond", "Virginia"},
	{"Milwaukee", "Wisconsin"},
	{"Scottsdale", "Arizona"},
	{"Boca Raton", "Florida"},
	{"West Palm Beach", "Florida"},
	{"Pompano Beach", "Florida"},
	{"Coral Springs", "Florida"},
	{"Pembroke Pines", "Florida"},
	{"Hialeah", "Florida"},
}

// ArticleTemplate is one article formula. The title pattern uses the
// shared placeholder vocabulary.
type ArticleTemplate struct {
	Key          string
	TitlePattern string
	// Description steers the model toward the article's intent.
	Description string
}

// ArticleTemplates are the article formulas, crossed with every
// service and city to form the queue.
var ArticleTemplates = []ArticleTemplate{
	{
		Key:          "best-in-city",
		TitlePattern: "Best {service} in {city}",
		Description:  "Ranking and discovery guide for top providers",
	},
	{
		Key:          "near-me",
		TitlePattern: "{service} Near Me in {city}",
		Description:  "Local search intent page",
	},
	{
		Key:          "cost-guide",
		TitlePattern: "How Much Does {service} Cost in {city}",
		Description:  "Pricing and comparison guide",
	},
	{
		Key:          "how-to-choose",
		TitlePattern: "How to Choose a {service} in {city}",
		Description:  "Decision-making guide",
	},
	{
		Key:          "provider-guide",
		TitlePattern: "How to Get More {service} Clients in {city}",
		Description:  "Provider recruitment article",
	},
}
