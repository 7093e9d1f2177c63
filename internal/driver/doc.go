// Package driver is the host side of the expander: it loads Rust source
// files, finds items annotated with #[derive(HelloMacro)], gates them on
// #[cfg(...)], expands every enabled site through package expand and
// splices the generated impls back into the file text.
//
// Directories are processed file-parallel (errgroup, bounded by
// Options.Jobs); results keep the sorted path order, so the output does
// not depend on scheduling. Successful file expansions can be cached on
// disk (DiskCache, msgpack).
package driver
