package source

import (
	"bytes"
	"path/filepath"
	"sort"

	"fortio.org/safecast"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// normalizeCRLF заменяет \r\n на \n; одиночные \r остаются.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if bytes.IndexByte(content, '\r') < 0 {
		return content, false
	}
	out := bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	return out, len(out) != len(content)
}

func removeBOM(content []byte) ([]byte, bool) {
	if bytes.HasPrefix(content, bom) {
		return content[len(bom):], true
	}
	return content, false
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		if b == '\n' {
			// content length is already checked by the caller
			out = append(out, uint32(i)) // #nosec G115
		}
	}
	return out
}

// toLineCol переводит байтовое смещение в (строка, колонка), обе с 1.
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// число переводов строки строго до off
	line := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= off })
	var lineStart uint32
	if line > 0 {
		lineStart = lineIdx[line-1] + 1
	}
	ln, err := safecast.Conv[uint32](line + 1)
	if err != nil {
		ln = ^uint32(0)
	}
	return LineCol{Line: ln, Col: off - lineStart + 1}
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// RelativePath returns path relative to base, in slash form.
func RelativePath(path, base string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path, err
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return path, err
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return path, err
	}
	return filepath.ToSlash(rel), nil
}

// AbsolutePath returns the absolute slash-form path.
func AbsolutePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path, err
	}
	return filepath.ToSlash(abs), nil
}

func BaseName(path string) string {
	return filepath.Base(path)
}
