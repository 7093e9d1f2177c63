// Package ast describes the one declaration a derive receives.
//
// Unlike a full syntax tree, Decl keeps only what expansion needs: the item
// kind, name, visibility, outer attributes, generic parameters with their
// bounds and defaults as raw token streams, the where clause, and the names
// of fields or variants. Everything else stays in Decl.Tokens.
package ast
