// Package token defines the lexical vocabulary of the derive input language
// (a Rust item subset) and the immutable Stream passed between pipeline stages.
// Invariants:
//   - Token.Text is the exact source text of the token, except that
//     identifiers are NFC-normalized.
//   - Token.Span matches Text exactly (Start..End) for lexed tokens;
//     synthesized tokens carry a zero span.
//   - `union`, `macro_rules` and other contextual words are identifiers.
//   - `<`, `>` and `=` are never glued with each other, so generic
//     brackets always close one token at a time.
package token
