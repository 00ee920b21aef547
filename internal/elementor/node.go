// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package elementor parses, walks, and rewrites Elementor page-builder
// exports. An export is a tree of typed element nodes; only leaf text
// settings are ever modified, the structure itself must survive a
// parse→rewrite→serialize round trip byte-faithfully.
package elementor

import "encoding/json"

// Node is one element in an Elementor export tree. Only the fields the
// rewriting pipeline needs are promoted; every other key (id, isInner,
// style settings, …) is retained verbatim in extra and re-emitted on
// marshalling, so unknown widget kinds and future export fields pass
// through untouched.
type Node struct {
	ElType     string
	WidgetType string
	Settings   map[string]any
	Elements   []*Node

	extra map[string]json.RawMessage
}

// UnmarshalJSON decodes a node, promoting the known keys and stashing
// the rest in extra for round-trip fidelity.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	n.extra = make(map[string]json.RawMessage)
	for key, value := range raw {
		switch key {
		case "elType":
			if err := json.Unmarshal(value, &n.ElType); err != nil {
				return err
			}
		case "widgetType":
			if err := json.Unmarshal(value, &n.WidgetType); err != nil {
				return err
			}
		case "settings":
			// Some exports serialize empty settings as [] instead of {}.
			// Keep the raw value so it re-emits unchanged.
			if err := json.Unmarshal(value, &n.Settings); err != nil {
				n.extra[key] = value
			}
		case "elements":
			if err := json.Unmarshal(value, &n.Elements); err != nil {
				return err
			}
		default:
			n.extra[key] = value
		}
	}
	return nil
}

// MarshalJSON re-assembles the node from the promoted fields and the
// retained raw keys.
func (n *Node) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(n.extra)+4)
	for key, value := range n.extra {
		out[key] = value
	}
	if n.ElType != "" {
		out["elType"] = n.ElType
	}
	if n.WidgetType != "" {
		out["widgetType"] = n.WidgetType
	}
	if n.Settings != nil {
		out["settings"] = n.Settings
	}
	if n.Elements != nil {
		out["elements"] = n.Elements
	}
	return json.Marshal(out)
}

// textSetting returns the string value of a settings field, or "" when
// the field is absent or not a string.
func (n *Node) textSetting(field string) string {
	if n.Settings == nil {
		return ""
	}
	s, _ := n.Settings[field].(string)
	return s
}

// setTextSetting overwrites a settings field with new text.
func (n *Node) setTextSetting(field, text string) {
	if n.Settings == nil {
		n.Settings = make(map[string]any)
	}
	n.Settings[field] = text
}

// linkURL returns the node's link target (settings.link.url), or "".
func (n *Node) linkURL() string {
	if n.Settings == nil {
		return ""
	}
	link, ok := n.Settings["link"].(map[string]any)
	if !ok {
		return ""
	}
	u, _ := link["url"].(string)
	return u
}

// setLinkURL overwrites the node's link target, preserving any sibling
// link attributes (is_external, nofollow, …).
func (n *Node) setLinkURL(u string) {
	if n.Settings == nil {
		n.Settings = make(map[string]any)
	}
	link, ok := n.Settings["link"].(map[string]any)
	if !ok {
		link = make(map[string]any)
		n.Settings["link"] = link
	}
	link["url"] = u
}
