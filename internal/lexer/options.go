package lexer

import (
	"hellomacro/internal/diag"
	"hellomacro/internal/source"
)

// maxTokenLength bounds a single token; longer input is treated as hostile.
const maxTokenLength = 1 << 16

type Options struct {
	// Reporter может быть nil, тогда ошибки игнорируются, лексинг продолжается.
	Reporter diag.Reporter
	// KeepDocTrivia keeps doc comments in Leading; otherwise they are dropped like plain comments.
	KeepDocTrivia bool
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	lx.errors++
	diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
}
