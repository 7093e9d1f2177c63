package driver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"

	"hellomacro/internal/cfgpred"
	"hellomacro/internal/diag"
	"hellomacro/internal/expand"
	"hellomacro/internal/gen"
	"hellomacro/internal/lexer"
	"hellomacro/internal/observ"
	"hellomacro/internal/parser"
	"hellomacro/internal/source"
	"hellomacro/internal/token"
	"hellomacro/internal/trace"
)

const defaultMaxDiagnostics = 100

// Options configure a driver run.
type Options struct {
	// Message overrides the default greeting when MessageSet.
	Message    string
	MessageSet bool
	// Resolver answers #[cfg(...)] predicates.
	Resolver cfgpred.Resolver
	Layout   gen.Options
	// Jobs bounds file parallelism; <= 0 means GOMAXPROCS.
	Jobs int
	// MaxDiagnostics is the per-file limit; <= 0 means 100.
	MaxDiagnostics int
	// Cache is optional.
	Cache *DiskCache
	// ReportDisabled adds an info diagnostic for every cfg-disabled site.
	ReportDisabled bool
	// Timings adds an OBS7001 diagnostic per file.
	Timings bool
	// Events receives progress updates; the caller closes it after the run.
	Events chan<- Event
}

// SiteResult is the outcome of one derive site.
type SiteResult struct {
	Label string
	// Span is the HelloMacro path inside #[derive(...)].
	Span     source.Span
	Disabled bool
	Failed   bool
	// Output is the generated item; empty for cached results.
	Output token.Stream
	// Text is the printed impl.
	Text string
}

// FileResult is the outcome of one file.
type FileResult struct {
	Path   string
	FileID source.FileID
	Sites  []SiteResult
	// Output is the file with the impls spliced in; nil when the file
	// could not be read, lexed or split into items.
	Output []byte
	Bag    *diag.Bag
	Cached bool
}

// Failed reports whether the file has error diagnostics.
func (r FileResult) Failed() bool { return r.Bag != nil && r.Bag.HasErrors() }

// Expanded counts sites that produced an impl.
func (r FileResult) Expanded() int {
	n := 0
	for _, s := range r.Sites {
		if !s.Disabled && !s.Failed {
			n++
		}
	}
	return n
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return defaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

// expandLoaded runs the whole pipeline for a file already in fs.
func expandLoaded(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) FileResult {
	file := fs.Get(id)
	res := FileResult{Path: file.Path, FileID: id, Bag: diag.NewBag(opts.maxDiagnostics())}

	tracer := trace.FromContext(ctx)
	sp := trace.Begin(tracer, trace.ScopeFile, "file", trace.ParentFrom(ctx))
	started := time.Now()
	timer := observ.NewTimer()
	defer func() {
		detail := "ok"
		if res.Failed() {
			detail = "failed"
		} else if res.Cached {
			detail = "cached"
		}
		sp.WithExtra("path", file.Path).WithExtra("sites", strconv.Itoa(len(res.Sites))).End(detail)
		if opts.Timings {
			appendTimingDiagnostic(res.Bag, timingPayload{
				Path:     file.Path,
				TotalMS:  observ.Millis(time.Since(started)),
				Sites:    len(res.Sites),
				Expanded: res.Expanded(),
				Cached:   res.Cached,
				Phases:   timer.Report().Phases,
			})
		}
	}()

	var key Digest
	if opts.Cache != nil {
		key = cacheKey(file, opts)
		var entry CachedFile
		lookup := timer.Track("cache")
		hit, err := opts.Cache.Get(key, &entry)
		if hit {
			lookup("hit")
		} else {
			lookup("miss")
		}
		switch {
		case err != nil:
			reportCache(res.Bag, file, err)
		case hit:
			res.Output = entry.Output
			res.Cached = true
			for _, s := range entry.Sites {
				res.Sites = append(res.Sites, SiteResult{
					Label:    s.Label,
					Span:     source.Span{File: id, Start: s.Start, End: s.End},
					Disabled: s.Disabled,
					Text:     s.Text,
				})
			}
			return res
		}
	}

	rep := diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag})
	lexed := timer.Track("lex")
	stream := lexer.Stream(file, lexer.Options{Reporter: rep})
	lexed(strconv.Itoa(stream.Len()) + " tokens")
	if res.Bag.HasErrors() {
		return res
	}

	scanned := timer.Track("items")
	items, err := parser.Items(stream, parser.Options{})
	if err != nil {
		scanned("error")
		res.Bag.Add(parseDiagnostic(err, file))
		return res
	}
	sites, err := FindSites(items)
	scanned(fmt.Sprintf("%d items, %d sites", len(items), len(sites)))
	if err != nil {
		res.Bag.Add(parseDiagnostic(err, file))
		return res
	}
	if len(sites) == 0 {
		res.Bag.Add(diag.New(diag.SevWarning, diag.ExpNoDeriveSites, source.Span{File: id},
			fmt.Sprintf("no #[derive(%s)] found", gen.TraitName)))
		res.Output = append([]byte(nil), file.Content...)
		return res
	}

	impls := make([]string, len(sites))
	expanded := timer.Track("sites")
	for i, site := range sites {
		sr := expandSite(ctx, fs, site, opts, rep, sp.ID())
		res.Sites = append(res.Sites, sr)
		impls[i] = sr.Text
	}
	expanded("")
	spliced := timer.Track("splice")
	res.Output = splice(file, sites, impls)
	spliced("")

	if opts.Cache != nil && res.Bag.Len() == 0 {
		entry := CachedFile{Output: res.Output}
		for _, s := range res.Sites {
			entry.Sites = append(entry.Sites, CachedSite{
				Label:    s.Label,
				Start:    s.Span.Start,
				End:      s.Span.End,
				Disabled: s.Disabled,
				Text:     s.Text,
			})
		}
		if err := opts.Cache.Put(key, &entry); err != nil {
			reportCache(res.Bag, file, err)
		}
	}
	return res
}

func expandSite(ctx context.Context, fs *source.FileSet, site DeriveSite, opts Options, rep diag.Reporter, parent uint64) SiteResult {
	sr := SiteResult{Label: site.Label(), Span: site.Path}
	tracer := trace.FromContext(ctx)
	sp := trace.Begin(tracer, trace.ScopeSite, "site", parent)

	enabled, ok := gate(site, opts.Resolver, rep)
	switch {
	case !ok:
		sr.Failed = true
		trace.Error(tracer, trace.ScopeSite, "site", sr.Label+": malformed cfg", sp.ID())
		sp.WithExtra("label", sr.Label).End("cfg error")
		return sr
	case !enabled:
		sr.Disabled = true
		if opts.ReportDisabled {
			diag.ReportInfo(rep, diag.ExpSiteDisabled, site.Path,
				fmt.Sprintf("derive(%s) on `%s` skipped: cfg is false on this target", gen.TraitName, sr.Label)).Emit()
		}
		sp.WithExtra("label", sr.Label).End("disabled")
		return sr
	}

	r := expand.Run(expand.Site{Span: site.Path, Label: sr.Label}, site.Item.Tokens, expand.Config{
		Message: opts.Message,
		Set:     opts.MessageSet,
		Files:   fs,
		Layout:  opts.Layout,
	})
	if r.Failed {
		sr.Failed = true
		diag.Emit(rep, *r.Diag)
		trace.Error(tracer, trace.ScopeSite, "site", sr.Label+": "+r.Diag.Code.ID(), sp.ID())
		sp.WithExtra("label", sr.Label).WithExtra("stage", r.Stage.String()).End("failed")
		return sr
	}
	sr.Output = r.Output
	if f := r.Output.File(); f != nil {
		sr.Text = string(f.Content)
	} else {
		sr.Text = r.Output.String() + "\n"
	}
	sp.WithExtra("label", sr.Label).End("expanded")
	return sr
}

func parseDiagnostic(err error, file *source.File) diag.Diagnostic {
	var pe *parser.Error
	if errors.As(err, &pe) {
		return diag.NewError(pe.Code, pe.Span, pe.Msg)
	}
	return diag.NewError(diag.ExpPanic, source.Span{File: file.ID}, err.Error())
}

func reportCache(bag *diag.Bag, file *source.File, err error) {
	bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{File: file.ID},
		"expansion cache unavailable: "+err.Error()))
}
