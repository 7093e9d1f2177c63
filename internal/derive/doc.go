// Package derive turns a parsed declaration into the signature the
// generator needs: the type name and the two projections of its generic
// parameters.
//
// Bound: параметры с ограничениями, для заголовка `impl<...>`.
// Bare: только имена, для `Name<...>` справа от `for`.
// Пакет не возвращает ошибок: корректность обеспечивает parser.
package derive
