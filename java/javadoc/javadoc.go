// Package javadoc splits Javadoc comments into a description and block
// tags. Inline tags such as {@code x} and {@link Foo#bar label} are
// flattened to plain text; HTML is left as written.
package javadoc

import (
	"strings"
	"unicode"
)

// Tag is a block tag such as "@param x the x coordinate".
type Tag struct {
	// Name is the tag name without the leading @.
	Name string
	// Arg is the parameter or exception name of @param, @throws and
	// @exception tags.
	Arg  string
	Text string
}

type Comment struct {
	Description string
	Tags        []Tag
}

// Parse parses a raw /** ... */ comment. Surrounding comment markers and
// leading asterisks are optional.
func Parse(raw string) Comment {
	var c Comment
	var desc []string
	var tag []string
	inTag := false

	flushTag := func() {
		if inTag {
			c.Tags = append(c.Tags, parseTag(strings.Join(tag, "\n")))
		}
		tag = tag[:0]
	}

	for _, line := range commentLines(raw) {
		if isBlockTag(line) {
			flushTag()
			inTag = true
		}
		if inTag {
			tag = append(tag, line)
		} else {
			desc = append(desc, line)
		}
	}
	flushTag()

	c.Description = clean(strings.Join(desc, "\n"))
	return c
}

// Summary returns the first sentence of the description.
func (c Comment) Summary() string {
	for i := 0; i < len(c.Description); i++ {
		if c.Description[i] != '.' {
			continue
		}
		if i+1 == len(c.Description) || c.Description[i+1] == ' ' {
			return c.Description[:i+1]
		}
	}
	return c.Description
}

// Lookup returns the first tag named name.
func (c Comment) Lookup(name string) (Tag, bool) {
	for _, t := range c.Tags {
		if t.Name == name {
			return t, true
		}
	}
	return Tag{}, false
}

// Param returns the text of the @param tag for the named parameter.
func (c Comment) Param(name string) (string, bool) {
	for _, t := range c.Tags {
		if t.Name == "param" && t.Arg == name {
			return t.Text, true
		}
	}
	return "", false
}

func (c Comment) Deprecated() bool {
	_, ok := c.Lookup("deprecated")
	return ok
}

// commentLines strips the comment markers and the "*" prefix of each line.
func commentLines(raw string) []string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "/**")
	raw = strings.TrimSuffix(raw, "*/")
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		line = strings.TrimLeft(line, " \t")
		if strings.HasPrefix(line, "*") {
			line = strings.TrimPrefix(line[1:], " ")
		}
		lines[i] = strings.TrimRight(line, " \t")
	}
	return lines
}

func isBlockTag(line string) bool {
	line = strings.TrimSpace(line)
	return len(line) > 1 && line[0] == '@' && unicode.IsLetter(rune(line[1]))
}

func parseTag(text string) Tag {
	text = strings.TrimSpace(text)[1:]
	name, rest, _ := strings.Cut(text, " ")
	if i := strings.IndexAny(name, "\n\t"); i >= 0 {
		name, rest = name[:i], name[i+1:]+" "+rest
	}

	t := Tag{Name: name}
	switch name {
	case "param", "throws", "exception":
		rest = strings.TrimSpace(rest)
		end := strings.IndexFunc(rest, unicode.IsSpace)
		if end < 0 {
			t.Arg = rest
			return t
		}
		t.Arg, rest = rest[:end], rest[end:]
	}
	t.Text = clean(rest)
	return t
}

// clean flattens inline tags and collapses whitespace runs to one space.
func clean(text string) string {
	return strings.Join(strings.Fields(flattenInline(text)), " ")
}

func flattenInline(text string) string {
	var sb strings.Builder
	for {
		start := strings.Index(text, "{@")
		if start < 0 {
			sb.WriteString(text)
			return sb.String()
		}
		sb.WriteString(text[:start])

		end := matchingBrace(text, start)
		if end < 0 {
			sb.WriteString(text[start:])
			return sb.String()
		}
		sb.WriteString(inlineText(text[start+2 : end]))
		text = text[end+1:]
	}
}

// matchingBrace returns the index of the brace closing the one at open.
func matchingBrace(text string, open int) int {
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func inlineText(tag string) string {
	name, content, _ := strings.Cut(tag, " ")
	if i := strings.IndexAny(name, "\n\t"); i >= 0 {
		name, content = name[:i], name[i+1:]+" "+content
	}
	content = strings.TrimSpace(content)

	switch name {
	case "inheritDoc", "docRoot":
		return ""
	case "link", "linkplain", "see":
		ref, label, ok := strings.Cut(content, " ")
		if ok && strings.TrimSpace(label) != "" {
			return strings.TrimSpace(label)
		}
		return strings.TrimPrefix(strings.ReplaceAll(ref, "#", "."), ".")
	case "code", "literal", "value", "summary":
		return content
	}
	return flattenInline(content)
}
