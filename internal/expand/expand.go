package expand

import (
	"errors"
	"fmt"

	"hellomacro/internal/derive"
	"hellomacro/internal/diag"
	"hellomacro/internal/gen"
	"hellomacro/internal/parser"
	"hellomacro/internal/source"
	"hellomacro/internal/token"
)

// Site identifies where the derive was requested.
type Site struct {
	// Span is the primary location of every diagnostic for this site,
	// usually the `HelloMacro` path inside `#[derive(...)]`.
	Span  source.Span
	Label string
}

// Config is the host-level configuration of one expansion.
type Config struct {
	// Message overrides the default greeting when Set.
	Message string
	Set     bool
	// Files receives the generated text; optional.
	Files *source.FileSet
	// Layout controls printing of the generated item.
	Layout gen.Options
}

// Result describes one expansion. Exactly one of Output and Diag is set.
type Result struct {
	Output token.Stream
	Diag   *diag.Diagnostic
	Stage  Stage
	Failed bool
	// Signature is valid from StageExtracted on.
	Signature derive.Signature
}

// Expand runs the pipeline over input. On success it returns the generated
// item exactly as the generator produced it.
func Expand(site Site, input token.Stream, cfg Config) (token.Stream, *diag.Diagnostic) {
	r := Run(site, input, cfg)
	return r.Output, r.Diag
}

// Run is Expand with the stage information kept.
func Run(site Site, input token.Stream, cfg Config) (res Result) {
	res.Stage = StageReceived
	if site.Span == (source.Span{}) {
		site.Span = input.Span()
	}

	defer func() {
		if rec := recover(); rec != nil {
			d := diag.NewError(diag.ExpPanic, site.Span,
				fmt.Sprintf("internal error while deriving %s (stage %s): %v", gen.TraitName, res.Stage, rec))
			res = Result{Diag: &d, Stage: res.Stage, Failed: true}
		}
	}()

	decl, err := parser.ParseDecl(input, parser.Options{})
	if err != nil {
		return fail(res, site, err)
	}
	res.Stage = StageParsed

	res.Signature = derive.Extract(decl)
	res.Stage = StageExtracted

	out, err := gen.Generate(res.Signature, gen.Config{
		Message: cfg.Message,
		Set:     cfg.Set,
		Files:   cfg.Files,
		Layout:  cfg.Layout,
	})
	if err != nil {
		return fail(res, site, err)
	}
	res.Stage = StageGenerated

	res.Output = out
	res.Stage = StageCompleted
	return res
}

func fail(res Result, site Site, err error) Result {
	d := ToDiagnostic(site, err)
	res.Diag = &d
	res.Failed = true
	return res
}

// ToDiagnostic converts a pipeline error into a diagnostic at the site.
// The offending span, when known, is kept as a note.
func ToDiagnostic(site Site, err error) diag.Diagnostic {
	var (
		pe *parser.Error
		te *gen.TemplateError
	)
	switch {
	case errors.As(err, &pe):
		return siteDiag(site, pe.Code, pe.Span, pe.Msg, "declaration rejected here")
	case errors.As(err, &te):
		return siteDiag(site, te.Code, te.Span, te.Msg, "message template defined here")
	default:
		return diag.NewError(diag.ExpPanic, site.Span, fmt.Sprintf("cannot derive %s: %v", gen.TraitName, err))
	}
}

func siteDiag(site Site, code diag.Code, at source.Span, msg, note string) diag.Diagnostic {
	d := diag.NewError(code, site.Span, fmt.Sprintf("cannot derive %s: %s", gen.TraitName, msg))
	if at != (source.Span{}) && at != site.Span {
		d = d.WithNote(at, note)
	}
	return d
}
