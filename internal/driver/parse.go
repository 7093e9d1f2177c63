package driver

import (
	"github.com/cockroachdb/errors"

	"hellomacro/internal/ast"
	"hellomacro/internal/diag"
	"hellomacro/internal/lexer"
	"hellomacro/internal/parser"
	"hellomacro/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	// Decl is nil when parsing failed.
	Decl *ast.Decl
	// Site is set when Decl came from a derive site.
	Site *DeriveSite
	Bag  *diag.Bag
}

// Parse loads path and parses the first derive site. A file without
// sites is parsed as a single declaration.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return parseFile(fs, fs.Get(fileID), maxDiagnostics), nil
}

// ParseText is Parse over in-memory source.
func ParseText(name string, src []byte, maxDiagnostics int) *ParseResult {
	fs := source.NewFileSet()
	return parseFile(fs, fs.Get(fs.AddVirtual(name, src)), maxDiagnostics)
}

func parseFile(fs *source.FileSet, file *source.File, maxDiagnostics int) *ParseResult {
	if maxDiagnostics <= 0 {
		maxDiagnostics = defaultMaxDiagnostics
	}
	res := &ParseResult{FileSet: fs, File: file, Bag: diag.NewBag(maxDiagnostics)}
	stream := lexer.Stream(file, lexer.Options{Reporter: diag.BagReporter{Bag: res.Bag}})
	if res.Bag.HasErrors() {
		return res
	}

	input := stream
	if items, err := parser.Items(stream, parser.Options{}); err == nil {
		if sites, err := FindSites(items); err == nil && len(sites) > 0 {
			res.Site = &sites[0]
			input = sites[0].Item.Tokens
		}
	}

	decl, err := parser.ParseDecl(input, parser.Options{})
	if err != nil {
		res.Bag.Add(parseDiagnostic(err, file))
		return res
	}
	res.Decl = decl
	return res
}
