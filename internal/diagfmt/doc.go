// Package diagfmt renders diagnostics, token streams and parsed
// declarations for the CLI.
//
// Форматы: pretty (цвет через fatih/color, подчёркивание с учётом ширины
// символов через go-runewidth) и JSON.
package diagfmt
