// Package gen renders the `impl HelloMacro` item for an extracted signature.
//
// Назначение: построить ImplItem явным билдером, напечатать его через Writer
// и перелексировать результат в token.Stream.
// Не делает: разбор исходной декларации, IO, диагностику (только TemplateError).
// Зависимости: internal/derive, internal/lexer, internal/token, internal/source.
package gen
