// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import "strings"

// xmlEscaper is the single substitution table for every XML artifact.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeXML escapes the five XML special characters as named entities and
// drops characters XML 1.0 cannot carry.
func EscapeXML(s string) string {
	return xmlEscaper.Replace(strings.Map(xmlChar, s))
}

// xmlChar filters runes outside the XML 1.0 Char production.
func xmlChar(r rune) rune {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return r
	case r < 0x20:
		return -1
	case r >= 0xD800 && r <= 0xDFFF:
		return -1
	case r == 0xFFFE || r == 0xFFFF:
		return -1
	}
	return r
}

// XMLText is element character data escaped with EscapeXML. encoding/xml
// writes numeric references for quotes, so text nodes are emitted as
// pre-escaped inner XML instead.
type XMLText struct {
	Raw string `xml:",innerxml"`
}

// Text escapes s into an XMLText.
func Text(s string) XMLText {
	return XMLText{Raw: EscapeXML(s)}
}

// OptionalText returns nil for an empty string so omitempty drops the element.
func OptionalText(s string) *XMLText {
	if s == "" {
		return nil
	}
	t := Text(s)
	return &t
}

// Texts escapes each string.
func Texts(ss []string) []XMLText {
	out := make([]XMLText, 0, len(ss))
	for _, s := range ss {
		out = append(out, Text(s))
	}
	return out
}
