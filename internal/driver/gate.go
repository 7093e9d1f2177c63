package driver

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"hellomacro/internal/cfgpred"
	"hellomacro/internal/diag"
	"hellomacro/internal/token"
)

// gate evaluates the cfg attributes of site. ok is false when a predicate
// is malformed; the error is reported and the site must not be expanded.
func gate(site DeriveSite, r cfgpred.Resolver, rep diag.Reporter) (enabled, ok bool) {
	enabled, ok = true, true
	for _, a := range site.Cfg {
		if a.Delim != token.LParen {
			diag.ReportError(rep, diag.CfgMalformed, a.Span, "expected `#[cfg(predicate)]`").Emit()
			ok = false
			continue
		}
		e, err := cfgpred.Parse(a.Args)
		if err != nil {
			sp := a.Span
			var ce *cfgpred.Error
			if errors.As(err, &ce) {
				if !ce.Span.Empty() {
					sp = ce.Span
				}
				err = errors.New(ce.Msg)
			}
			diag.ReportError(rep, diag.CfgMalformed, sp, fmt.Sprintf("malformed cfg predicate: %v", err)).Emit()
			ok = false
			continue
		}
		for _, u := range r.Unknown(e) {
			diag.ReportWarning(rep, diag.CfgUnknownPredicate, u.Span,
				fmt.Sprintf("unknown cfg predicate `%s`, treated as false", u)).Emit()
		}
		if !r.Eval(e) {
			enabled = false
		}
	}
	return enabled, ok
}
