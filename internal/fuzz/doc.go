// Package fuzztests houses Go fuzz harnesses for the derive pipeline
// (source -> lexer -> items -> parser -> expand). Its goal is to smoke test
// robustness and guard against panics, hangs and broken spans on arbitrary
// inputs.
//
// Назначение: прогонять произвольные байты через лексер, разбиение на
// элементы и раскрытие derive, проверяя инварианты testkit.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser,
// internal/expand, internal/testkit.

package fuzztests
