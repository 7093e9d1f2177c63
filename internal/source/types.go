package source

type (
	// FileID identifies a file inside one FileSet.
	FileID uint32
	// FileFlags records how the file content was obtained and normalized.
	FileFlags uint8
)

const (
	// FileVirtual marks content that did not come from disk (stdin, tests, generated code).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	// FileGenerated marks text produced by the expander itself.
	FileGenerated
)

// File holds one normalized source text with its line index.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based position.
type LineCol struct {
	Line uint32
	Col  uint32
}

// Slice returns the bytes covered by span; out-of-range spans are clamped.
func (f *File) Slice(span Span) []byte {
	n := uint32(len(f.Content)) // #nosec G115 -- Add rejects oversized content
	start, end := min(span.Start, n), min(span.End, n)
	if start > end {
		return nil
	}
	return f.Content[start:end]
}
