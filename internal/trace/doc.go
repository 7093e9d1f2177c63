// Package trace records what the expansion driver does: which files it
// loads, which derive sites it expands and how long each step takes.
//
// Включение из CLI:
//
//	hellomacro expand --trace=- --trace-level=detail src/
//
// Реализации Tracer: Nop (выключено), StreamTracer (сразу пишет в файл или
// stderr), RingTracer (последние N событий в памяти), MultiTracer.
//
// Уровни: off < error < phase < detail < debug. Области: ScopeDriver
// (команда целиком), ScopeFile (один файл), ScopeSite (одно место derive).
//
// Трейсер передаётся через context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	sp := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "file", 0)
//	defer sp.End("")
//
// Чистое ядро (parser, derive, gen, expand) трейсер не использует.
package trace
