package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

var inlineSeeds = []string{
	"",
	"struct Pancakes;",
	"#[derive(HelloMacro)] pub struct Point { x: i32, y: i32 }",
	"#[derive(HelloMacro)] enum Option<T> { Some(T), None }",
	"#[derive(HelloMacro)] #[hello_macro(message = \"{name}!\")] struct S;",
	"struct W<'a, T: 'a + ?Sized, const N: usize>(&'a T) where T: Clone;",
	"mod m { #[cfg(test)] #[derive(HelloMacro)] struct T; }",
	"fn not_a_type() {}",
	"r#\"raw\"# b'x' 1.5e3 0x_ff '\\u{1F600}'",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.rs файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".rs" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
