// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package elementor

import (
	"regexp"
	"strings"
)

// Widget types carrying visitor-facing text.
const (
	WidgetHeading     = "heading"
	WidgetTextEditor  = "text-editor"
	WidgetPostContent = "theme-post-content"
	WidgetButton      = "button"
	WidgetImageBox    = "image-box"
)

// TextBlock is one editable text field lifted out of the tree. It keeps
// a handle to its source node so rewritten text can be injected back
// without re-walking the tree.
type TextBlock struct {
	node *Node

	// Field is the settings key the text lives under.
	Field string
	// Kind is the widget type of the owning node.
	Kind string
	// Original is the text as authored in the template.
	Original string
	// IsButton marks call-to-action labels, which are excluded from AI
	// rewriting and only touched by literal city replacement.
	IsButton bool
	// LinkURL is the button's link target, if any.
	LinkURL string
}

// Apply writes new text into the block's source field in the tree.
func (b *TextBlock) Apply(text string) {
	b.node.setTextSetting(b.Field, text)
}

// Extract walks the tree depth-first in document order and collects
// every non-empty text field from the widgets that carry copy. Unknown
// widget types are skipped but their children are still visited.
func Extract(nodes []*Node) []*TextBlock {
	var blocks []*TextBlock
	for _, n := range nodes {
		blocks = collect(n, blocks)
	}
	return blocks
}

func collect(n *Node, blocks []*TextBlock) []*TextBlock {
	switch n.WidgetType {
	case WidgetHeading:
		blocks = appendBlock(blocks, n, "title", false)
	case WidgetTextEditor, WidgetPostContent:
		blocks = appendBlock(blocks, n, "editor", false)
	case WidgetButton:
		blocks = appendBlock(blocks, n, "text", true)
	case WidgetImageBox:
		blocks = appendBlock(blocks, n, "title_text", false)
		blocks = appendBlock(blocks, n, "description_text", false)
	}
	for _, child := range n.Elements {
		blocks = collect(child, blocks)
	}
	return blocks
}

func appendBlock(blocks []*TextBlock, n *Node, field string, isButton bool) []*TextBlock {
	text := n.textSetting(field)
	if text == "" {
		return blocks
	}
	b := &TextBlock{
		node:     n,
		Field:    field,
		Kind:     n.WidgetType,
		Original: text,
		IsButton: isButton,
	}
	if isButton {
		b.LinkURL = n.linkURL()
	}
	return append(blocks, b)
}

// NonButton filters a block list down to the rewritable copy.
func NonButton(blocks []*TextBlock) []*TextBlock {
	out := make([]*TextBlock, 0, len(blocks))
	for _, b := range blocks {
		if !b.IsButton {
			out = append(out, b)
		}
	}
	return out
}

// cityRe finds the first "in <City>" phrase, where the city name starts
// with a capital letter and runs to the next comma or end of text.
var cityRe = regexp.MustCompile(`(?i:\bin)\s+([A-Z][\w\s.]+?)(?:,|$)`)

// DetectTemplateCity scans the extracted blocks in document order for
// the city the template was originally written about, looking only at
// heading blocks ("Top Massage in Hollywood, FL"). Body copy is full of
// capitalized "in ..." phrases that are not places, so other widget
// kinds are never consulted. Returns "" when no heading names a city.
func DetectTemplateCity(blocks []*TextBlock) string {
	for _, b := range blocks {
		if b.Kind != WidgetHeading {
			continue
		}
		if m := cityRe.FindStringSubmatch(b.Original); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
