// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package rewrite sends extracted page copy to an LLM and maps the
// rewritten text back by block index. The model is asked for a strict
// JSON array; everything else in this package is defending that
// contract at the parse boundary.
package rewrite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrParse means the model's reply was not the JSON array the prompt
// demands, even after stripping markdown fences.
var ErrParse = errors.New("rewrite: response is not a valid rewrite array")

// TextGenerator is the slice of the AI layer this package needs.
// *ai.Registry satisfies it.
type TextGenerator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Target is the locality the copy is being rewritten for.
type Target struct {
	City    string
	State   string
	Service string
}

// Result is one rewritten block, keyed by its position in the input
// slice. The JSON field names are the model's output contract.
type Result struct {
	Index         int    `json:"index"`
	RewrittenText string `json:"rewrittenText"`
}

// Client rewrites batches of text blocks through a text generator.
type Client struct {
	gen TextGenerator
}

// NewClient creates a rewrite client on top of a text generator.
func NewClient(gen TextGenerator) *Client {
	return &Client{gen: gen}
}

// inputBlock is what the model sees for each block.
type inputBlock struct {
	Index        int    `json:"index"`
	OriginalText string `json:"originalText"`
}

// Rewrite sends the given texts to the model in one call and returns
// the rewritten blocks. The result may cover only a subset of the
// input; results whose index falls outside the input range are
// discarded. An empty input short-circuits without calling the model.
func (c *Client) Rewrite(ctx context.Context, target Target, texts []string) ([]Result, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	blocks := make([]inputBlock, len(texts))
	for i, text := range texts {
		blocks[i] = inputBlock{Index: i, OriginalText: text}
	}
	payload, err := json.Marshal(blocks)
	if err != nil {
		return nil, fmt.Errorf("rewrite marshal blocks: %w", err)
	}

	raw, err := c.gen.Generate(ctx, systemPrompt(target), string(payload))
	if err != nil {
		return nil, fmt.Errorf("rewrite generate: %w", err)
	}

	var results []Result
	if err := json.Unmarshal([]byte(stripFences(raw)), &results); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	kept := results[:0]
	for _, r := range results {
		if r.Index >= 0 && r.Index < len(texts) {
			kept = append(kept, r)
		}
	}
	return kept, nil
}

// systemPrompt builds the rewriting instructions for one locality.
func systemPrompt(t Target) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert local SEO copywriter. You will receive a JSON array of text blocks from a %s services page. Rewrite each block for the city of %s, %s.\n\n", t.Service, t.City, t.State)
	b.WriteString("Rules:\n")
	fmt.Fprintf(&b, "- Produce unique copy for %s; do not reuse the source sentences verbatim.\n", t.City)
	b.WriteString("- Keep each rewritten block roughly the same length as the original.\n")
	fmt.Fprintf(&b, "- Mention %s naturally and frequently across the blocks.\n", t.City)
	b.WriteString("- Preserve any HTML tags exactly where they appear in the original.\n")
	b.WriteString("- Do not invent business names, statistics, prices, or review counts.\n")
	b.WriteString("- Keep the tone and intent of each original block.\n\n")
	b.WriteString(`Respond with ONLY a JSON array of the form [{"index": 0, "rewrittenText": "..."}], one entry per input block, with no markdown fences and no commentary.`)
	return b.String()
}

// stripFences removes a surrounding markdown code fence, which some
// models add despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
