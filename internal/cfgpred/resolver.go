package cfgpred

import (
	"encoding/binary"
	"runtime"
	"slices"
	"strconv"
)

// Resolver answers single predicates. The zero value matches nothing but
// `all()`.
type Resolver struct {
	OS           string
	Family       string
	Arch         string
	Endian       string
	PointerWidth int
	Debug        bool
	Test         bool
	Features     []string
	// Flags are extra bare names set via `--cfg name`.
	Flags []string
}

var osNames = map[string]string{
	"darwin":  "macos",
	"ios":     "ios",
	"linux":   "linux",
	"windows": "windows",
	"freebsd": "freebsd",
	"netbsd":  "netbsd",
	"openbsd": "openbsd",
	"android": "android",
	"illumos": "illumos",
	"solaris": "solaris",
	"js":      "unknown",
	"wasip1":  "wasi",
}

var archNames = map[string]string{
	"amd64":    "x86_64",
	"386":      "x86",
	"arm64":    "aarch64",
	"arm":      "arm",
	"riscv64":  "riscv64",
	"ppc64":    "powerpc64",
	"ppc64le":  "powerpc64",
	"s390x":    "s390x",
	"mips":     "mips",
	"mipsle":   "mips",
	"mips64":   "mips64",
	"mips64le": "mips64",
	"loong64":  "loongarch64",
	"wasm":     "wasm32",
}

// Host describes the machine the tool runs on, in target-triple terms.
func Host() Resolver {
	return ForPlatform(runtime.GOOS, runtime.GOARCH)
}

// ForPlatform maps Go's GOOS/GOARCH names to cfg values.
func ForPlatform(goos, goarch string) Resolver {
	r := Resolver{
		OS:     lookupOr(osNames, goos),
		Arch:   lookupOr(archNames, goarch),
		Endian: "little",
	}
	switch goos {
	case "windows":
		r.Family = "windows"
	case "js", "wasip1":
		r.Family = "wasm"
	default:
		r.Family = "unix"
	}
	switch goarch {
	case "386", "arm", "mips", "mipsle", "wasm":
		r.PointerWidth = 32
	default:
		r.PointerWidth = 64
	}
	if goos == runtime.GOOS && goarch == runtime.GOARCH {
		r.PointerWidth = strconv.IntSize
		if binary.NativeEndian.Uint16([]byte{0, 1}) == 1 {
			r.Endian = "big"
		}
	} else {
		switch goarch {
		case "ppc64", "s390x", "mips", "mips64":
			r.Endian = "big"
		}
	}
	return r
}

func lookupOr(m map[string]string, key string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return key
}

// Known reports whether a bare name or key is understood by the resolver.
func Known(name string) bool {
	switch name {
	case "unix", "windows", "test", "debug_assertions",
		"target_os", "target_family", "target_arch", "target_pointer_width", "target_endian", "feature":
		return true
	}
	return false
}

// Resolve answers a bare predicate such as `unix` or `debug_assertions`.
func (r Resolver) Resolve(name string) bool {
	switch name {
	case "unix":
		return r.Family == "unix"
	case "windows":
		return r.Family == "windows"
	case "test":
		return r.Test
	case "debug_assertions":
		return r.Debug
	}
	return slices.Contains(r.Flags, name)
}

// ResolveKey answers `key = "value"`.
func (r Resolver) ResolveKey(key, value string) bool {
	switch key {
	case "target_os":
		return r.OS == value
	case "target_family":
		return r.Family == value
	case "target_arch":
		return r.Arch == value
	case "target_pointer_width":
		return strconv.Itoa(r.PointerWidth) == value
	case "target_endian":
		return r.Endian == value
	case "feature":
		return slices.Contains(r.Features, value)
	}
	return false
}
