// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package reduce

import "strings"

// componentTag is one scanned <Name ...>, </Name> or <Name ... /> tag.
type componentTag struct {
	name        string
	closing     bool
	selfClosing bool
	end         int // offset just past '>'
}

// stripComponents removes every top-level component block from s. A block
// runs from an uppercase opening tag to its matching close tag, or is a
// single self-closing tag. Lowercase (HTML) tags and anything inside code
// spans or code blocks are left alone.
func stripComponents(s string) (string, error) {
	var out strings.Builder
	out.Grow(len(s))

	code := codeSpans(s)

	var stack []string
	blockStart, copied := 0, 0

	for i := 0; i < len(s); {
		lt := strings.IndexByte(s[i:], '<')
		if lt < 0 {
			break
		}
		pos := i + lt

		for len(code) > 0 && code[0].stop <= pos {
			code = code[1:]
		}
		// Indented code inside an open component is usually nested markup.
		if len(code) > 0 && code[0].start <= pos && (!code[0].indented || len(stack) == 0) {
			i = code[0].stop
			continue
		}

		tag, ok, err := scanTag(s, pos)
		if err != nil {
			return "", err
		}
		if !ok {
			i = pos + 1
			continue
		}

		switch {
		case tag.closing:
			if len(stack) == 0 {
				return "", &MalformedError{Offset: pos, Tag: tag.name, Reason: "closing tag without opener"}
			}
			if top := stack[len(stack)-1]; top != tag.name {
				return "", &MalformedError{Offset: pos, Tag: tag.name, Reason: "interleaved with <" + top + ">"}
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				out.WriteString(s[copied:blockStart])
				copied = tag.end
			}
		case tag.selfClosing:
			if len(stack) == 0 {
				out.WriteString(s[copied:pos])
				copied = tag.end
			}
		default:
			if len(stack) == 0 {
				blockStart = pos
			}
			stack = append(stack, tag.name)
		}
		i = tag.end
	}

	if len(stack) > 0 {
		return "", &MalformedError{Offset: blockStart, Tag: stack[len(stack)-1], Reason: "unclosed component"}
	}

	out.WriteString(s[copied:])
	return out.String(), nil
}

// scanTag parses a component tag starting at s[pos] == '<'. ok is false when
// the '<' does not open an uppercase tag. Quoted strings and {expressions}
// are skipped so a '>' inside an attribute does not end the tag.
func scanTag(s string, pos int) (componentTag, bool, error) {
	j := pos + 1
	var tag componentTag
	if j < len(s) && s[j] == '/' {
		tag.closing = true
		j++
	}
	if j >= len(s) || s[j] < 'A' || s[j] > 'Z' {
		return tag, false, nil
	}

	nameStart := j
	for j < len(s) && isNameByte(s[j]) {
		j++
	}
	tag.name = s[nameStart:j]

	depth := 0
	var quote byte
	for ; j < len(s); j++ {
		c := s[j]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'' || c == '`':
			quote = c
		case c == '{':
			depth++
		case c == '}':
			if depth > 0 {
				depth--
			}
		case c == '>' && depth == 0:
			tag.end = j + 1
			tag.selfClosing = !tag.closing && strings.HasSuffix(strings.TrimRight(s[nameStart:j], " \t\n"), "/")
			return tag, true, nil
		}
	}

	return tag, false, &MalformedError{Offset: pos, Tag: tag.name, Reason: "unterminated tag"}
}

func isNameByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
		c == '_' || c == '.' || c == '-' || c == ':'
}
