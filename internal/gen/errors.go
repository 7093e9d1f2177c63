package gen

import (
	"errors"
	"fmt"

	"hellomacro/internal/diag"
	"hellomacro/internal/source"
)

// ErrTemplate matches every *TemplateError via errors.Is.
var ErrTemplate = errors.New("template error")

// TemplateError reports an invalid message override or, with TplInternal,
// generated text that does not lex back.
type TemplateError struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Msg)
}

func (e *TemplateError) Is(target error) bool {
	return target == ErrTemplate
}

func templateErr(code diag.Code, sp source.Span, format string, args ...any) *TemplateError {
	return &TemplateError{Code: code, Span: sp, Msg: fmt.Sprintf(format, args...)}
}
