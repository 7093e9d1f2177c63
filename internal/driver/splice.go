package driver

import (
	"sort"
	"strings"

	"hellomacro/internal/source"
)

type spliceEdit struct {
	start int
	end   int
	data  []byte
}

// splice returns a copy of the file content in which every expanded site
// has HelloMacro removed from its derive list and the generated impl
// inserted right after the item, indented like the item.
func splice(file *source.File, sites []DeriveSite, impls []string) []byte {
	content := append([]byte(nil), file.Content...)

	var edits []spliceEdit
	for i, site := range sites {
		if impls[i] == "" {
			continue
		}
		for _, d := range site.derives {
			edits = append(edits, deriveEdit(content, d))
		}
		sp := site.Item.Tokens.Span()
		indent := lineIndent(content, int(sp.Start))
		edits = append(edits, spliceEdit{
			start: int(sp.End),
			end:   int(sp.End),
			data:  []byte("\n" + indentLines(strings.TrimRight(impls[i], "\n"), indent)),
		})
	}
	if len(edits) == 0 {
		return content
	}

	// с конца, чтобы смещения оставались валидными
	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].start > edits[j].start
	})
	for _, e := range edits {
		if e.start < 0 || e.start > e.end || e.end > len(content) {
			continue
		}
		content = append(content[:e.start], append(e.data, content[e.end:]...)...)
	}
	return content
}

// deriveEdit drops our entries from a derive list, or the whole attribute
// (with its line) when nothing else is derived.
func deriveEdit(content []byte, d deriveAttr) spliceEdit {
	var kept []string
	var first, last int = -1, -1
	for _, e := range d.entries {
		if first < 0 {
			first = int(e.span.Start)
		}
		last = int(e.span.End)
		if !e.ours {
			kept = append(kept, string(content[e.span.Start:e.span.End]))
		}
	}
	if len(kept) > 0 {
		return spliceEdit{start: first, end: last, data: []byte(strings.Join(kept, ", "))}
	}

	start, end := int(d.attr.Span.Start), int(d.attr.Span.End)
	ls := start
	for ls > 0 && (content[ls-1] == ' ' || content[ls-1] == '\t') {
		ls--
	}
	le := end
	for le < len(content) && (content[le] == ' ' || content[le] == '\t') {
		le++
	}
	if (ls == 0 || content[ls-1] == '\n') && le < len(content) && content[le] == '\n' {
		return spliceEdit{start: ls, end: le + 1}
	}
	return spliceEdit{start: start, end: le}
}

// lineIndent returns the whitespace before off when nothing else precedes
// it on its line.
func lineIndent(content []byte, off int) string {
	ls := off
	for ls > 0 && content[ls-1] != '\n' {
		ls--
	}
	prefix := string(content[ls:off])
	if strings.TrimLeft(prefix, " \t") != "" {
		return ""
	}
	return prefix
}

func indentLines(text, indent string) string {
	if indent == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = indent + l
		}
	}
	return strings.Join(lines, "\n")
}
