// Package cfgpred evaluates `#[cfg(...)]` predicates against a fixed
// description of the target.
//
// Поддерживаются all/any/not, голые имена (unix, windows, test,
// debug_assertions, пользовательские флаги) и пары key = "value"
// (target_os, target_family, target_arch, target_pointer_width,
// target_endian, feature). Неизвестный предикат ложен.
package cfgpred
