// Package expand is the boundary the host calls at every
// `#[derive(HelloMacro)]` site.
//
// Пайплайн строго линейный: Received → Parsed → Extracted → Generated →
// Completed, либо Failed на любом шаге. Любая ошибка (и паника) превращается
// в одну диагностику, привязанную к месту раскрытия.
package expand
