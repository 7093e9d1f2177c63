package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hellomacro/internal/cfgpred"
	"hellomacro/internal/diag"
	"hellomacro/internal/driver"
	"hellomacro/internal/source"
)

const pancakesImpl = `impl HelloMacro for Pancakes {
    fn hello_macro() {
        println!("{}", "Hello, Macro! I'm a Pancakes!");
    }
}`

func expandText(t *testing.T, src string, opts driver.Options) driver.FileResult {
	t.Helper()
	_, res := driver.ExpandText(context.Background(), "lib.rs", []byte(src), opts)
	return res
}

func codes(res driver.FileResult) []diag.Code {
	var out []diag.Code
	for _, d := range res.Bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestExpandRemovesLoneDerive(t *testing.T) {
	res := expandText(t, "#[derive(HelloMacro)]\nstruct Pancakes;\n", driver.Options{})
	require.Empty(t, res.Bag.Items())
	assert.Equal(t, "struct Pancakes;\n"+pancakesImpl+"\n", string(res.Output))
	require.Len(t, res.Sites, 1)
	assert.Equal(t, "Pancakes", res.Sites[0].Label)
	assert.Equal(t, 1, res.Expanded())
}

func TestExpandKeepsOtherDerives(t *testing.T) {
	res := expandText(t, "#[derive(Debug, HelloMacro, Clone)]\nstruct Pancakes;\n", driver.Options{})
	require.Empty(t, res.Bag.Items())
	assert.Equal(t, "#[derive(Debug, Clone)]\nstruct Pancakes;\n"+pancakesImpl+"\n", string(res.Output))
}

func TestExpandPathForm(t *testing.T) {
	res := expandText(t, "#[derive(hello_macro_derive::HelloMacro, Debug)]\nstruct Pancakes;\n", driver.Options{})
	require.Empty(t, res.Bag.Items())
	assert.Equal(t, "#[derive(Debug)]\nstruct Pancakes;\n"+pancakesImpl+"\n", string(res.Output))
}

func TestExpandInsideModule(t *testing.T) {
	src := "mod shapes {\n    #[derive(HelloMacro)]\n    pub struct Circle;\n}\n"
	want := "mod shapes {\n    pub struct Circle;\n" +
		"    impl HelloMacro for Circle {\n" +
		"        fn hello_macro() {\n" +
		"            println!(\"{}\", \"Hello, Macro! I'm a Circle!\");\n" +
		"        }\n" +
		"    }\n}\n"

	res := expandText(t, src, driver.Options{})
	require.Empty(t, res.Bag.Items())
	require.Len(t, res.Sites, 1)
	assert.Equal(t, "shapes::Circle", res.Sites[0].Label)
	assert.Equal(t, want, string(res.Output))
}

func TestExpandMessageOverride(t *testing.T) {
	res := expandText(t, "#[derive(HelloMacro)]\nenum Mood { Happy }\n", driver.Options{Message: "{name} is an {kind}", MessageSet: true})
	require.Empty(t, res.Bag.Items())
	assert.Contains(t, res.Sites[0].Text, `println!("{}", "Mood is an enum");`)
}

func TestExpandCfgDisabled(t *testing.T) {
	src := "#[cfg(target_os = \"windows\")]\n#[derive(HelloMacro)]\nstruct Pancakes;\n"
	linux := cfgpred.ForPlatform("linux", "amd64")

	res := expandText(t, src, driver.Options{Resolver: linux})
	require.Empty(t, res.Bag.Items())
	require.Len(t, res.Sites, 1)
	assert.True(t, res.Sites[0].Disabled)
	assert.Equal(t, src, string(res.Output))
	assert.Equal(t, 0, res.Expanded())

	res = expandText(t, src, driver.Options{Resolver: linux, ReportDisabled: true})
	assert.Equal(t, []diag.Code{diag.ExpSiteDisabled}, codes(res))
	assert.Equal(t, diag.SevInfo, res.Bag.Items()[0].Severity)

	res = expandText(t, src, driver.Options{Resolver: cfgpred.ForPlatform("windows", "amd64")})
	require.Empty(t, res.Bag.Items())
	assert.Equal(t, 1, res.Expanded())
}

func TestExpandCfgOnModule(t *testing.T) {
	src := "#[cfg(any())]\nmod off {\n    #[derive(HelloMacro)]\n    struct A;\n}\n#[derive(HelloMacro)]\nstruct B;\n"
	res := expandText(t, src, driver.Options{})
	require.Empty(t, res.Bag.Items())
	require.Len(t, res.Sites, 2)
	assert.True(t, res.Sites[0].Disabled)
	assert.False(t, res.Sites[1].Disabled)
	assert.Equal(t, "B", res.Sites[1].Label)
}

func TestExpandCfgUnknownAndMalformed(t *testing.T) {
	res := expandText(t, "#[cfg(frobnicate)]\n#[derive(HelloMacro)]\nstruct A;\n", driver.Options{})
	assert.Equal(t, []diag.Code{diag.CfgUnknownPredicate}, codes(res))
	assert.True(t, res.Sites[0].Disabled)

	res = expandText(t, "#[cfg(all(unix,))]\n#[cfg(not(a, b))]\n#[derive(HelloMacro)]\nstruct A;\n", driver.Options{})
	assert.Contains(t, codes(res), diag.CfgMalformed)
	assert.True(t, res.Sites[0].Failed)
	assert.True(t, res.Failed())
}

func TestExpandFailedSiteKeepsSource(t *testing.T) {
	src := "#[derive(HelloMacro)]\nfn main() {}\n#[derive(HelloMacro)]\nstruct Pancakes;\n"
	res := expandText(t, src, driver.Options{})
	require.Equal(t, []diag.Code{diag.SynUnsupportedItem}, codes(res))
	assert.Equal(t, res.Sites[0].Span, res.Bag.Items()[0].Primary)
	assert.True(t, res.Sites[0].Failed)
	assert.False(t, res.Sites[1].Failed)
	assert.Equal(t, "#[derive(HelloMacro)]\nfn main() {}\nstruct Pancakes;\n"+pancakesImpl+"\n", string(res.Output))
}

func TestExpandNoSites(t *testing.T) {
	src := "#[derive(Debug)]\nstruct A;\n"
	res := expandText(t, src, driver.Options{})
	assert.Equal(t, []diag.Code{diag.ExpNoDeriveSites}, codes(res))
	assert.False(t, res.Failed())
	assert.Equal(t, src, string(res.Output))
}

func TestExpandLexAndItemErrors(t *testing.T) {
	res := expandText(t, "#[derive(HelloMacro)]\nstruct A { s: \"open }\n", driver.Options{})
	assert.True(t, res.Failed())
	assert.Nil(t, res.Output)

	res = expandText(t, "#[derive(HelloMacro)]\nstruct A {\n", driver.Options{})
	assert.True(t, res.Failed())
	assert.Nil(t, res.Output)
}

func TestExpandTimings(t *testing.T) {
	res := expandText(t, "#[derive(HelloMacro)]\nstruct A;\n", driver.Options{Timings: true, MaxDiagnostics: 1})
	require.Equal(t, []diag.Code{diag.ObsTimings}, codes(res))
	note := res.Bag.Items()[0].Notes[0].Msg
	assert.Contains(t, note, `"expanded":1`)
	for _, phase := range []string{"lex", "items", "sites", "splice"} {
		assert.Contains(t, note, `"name":"`+phase+`"`)
	}
	assert.Contains(t, note, `"note":"1 items, 1 sites"`)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func sampleTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.rs"), "#[derive(HelloMacro)]\nstruct B;\n")
	writeFile(t, filepath.Join(dir, "a.rs"), "#[derive(HelloMacro)]\nenum A { X }\n")
	writeFile(t, filepath.Join(dir, "sub", "c.rs"), "#[derive(HelloMacro)]\nfn c() {}\n")
	writeFile(t, filepath.Join(dir, "target", "skip.rs"), "struct Skip;\n")
	writeFile(t, filepath.Join(dir, ".git", "skip.rs"), "struct Skip;\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not rust\n")
	return dir
}

func TestListSources(t *testing.T) {
	dir := sampleTree(t)
	files, err := driver.ListSources(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.rs"),
		filepath.Join(dir, "b.rs"),
		filepath.Join(dir, "sub", "c.rs"),
	}, files)
}

func TestExpandDirIsStableAcrossJobs(t *testing.T) {
	dir := sampleTree(t)

	_, serial, err := driver.ExpandDir(context.Background(), dir, driver.Options{Jobs: 1})
	require.NoError(t, err)
	_, parallel, err := driver.ExpandDir(context.Background(), dir, driver.Options{Jobs: 8})
	require.NoError(t, err)

	require.Len(t, serial, 3)
	require.Len(t, parallel, 3)
	for i := range serial {
		assert.Equal(t, serial[i].Path, parallel[i].Path)
		assert.Equal(t, string(serial[i].Output), string(parallel[i].Output))
		assert.Equal(t, codes(serial[i]), codes(parallel[i]))
	}
	assert.False(t, serial[0].Failed())
	assert.False(t, serial[1].Failed())
	assert.True(t, serial[2].Failed(), "fn items cannot derive HelloMacro")
}

func TestExpandPathsLoadError(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.rs")
	writeFile(t, good, "#[derive(HelloMacro)]\nstruct Good;\n")
	missing := filepath.Join(dir, "missing.rs")

	results, err := driver.ExpandPaths(context.Background(), source.NewFileSet(), []string{missing, good}, driver.Options{})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, []diag.Code{diag.IOLoadFileError}, codes(results[0]))
	assert.Nil(t, results[0].Output)
	assert.False(t, results[1].Failed())
}

func TestExpandPathsCancelled(t *testing.T) {
	dir := sampleTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := driver.ExpandDir(ctx, dir, driver.Options{})
	require.Error(t, err)
}

func TestExpandEvents(t *testing.T) {
	dir := sampleTree(t)
	events := make(chan driver.Event, 64)
	_, _, err := driver.ExpandDir(context.Background(), dir, driver.Options{Events: events, Jobs: 2})
	require.NoError(t, err)
	close(events)

	final := map[string]driver.Status{}
	queued := 0
	for ev := range events {
		if ev.Status == driver.StatusQueued {
			queued++
		}
		final[filepath.Base(ev.File)] = ev.Status
	}
	assert.Equal(t, 3, queued)
	assert.Equal(t, driver.StatusDone, final["a.rs"])
	assert.Equal(t, driver.StatusDone, final["b.rs"])
	assert.Equal(t, driver.StatusError, final["c.rs"])
}

func TestDiskCacheHit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.rs")
	writeFile(t, path, "#[derive(Debug, HelloMacro)]\nstruct Pancakes;\n")

	cache, err := driver.NewDiskCache(t.TempDir())
	require.NoError(t, err)
	opts := driver.Options{Cache: cache}

	_, first, err := driver.ExpandFile(context.Background(), path, opts)
	require.NoError(t, err)
	require.False(t, first.Cached)
	require.Empty(t, first.Bag.Items())

	_, second, err := driver.ExpandFile(context.Background(), path, opts)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Output, second.Output)
	require.Len(t, second.Sites, 1)
	assert.Equal(t, first.Sites[0].Text, second.Sites[0].Text)
	assert.Equal(t, first.Sites[0].Span.Start, second.Sites[0].Span.Start)

	// другое сообщение даёт другой ключ
	_, third, err := driver.ExpandFile(context.Background(), path, driver.Options{Cache: cache, Message: "hi", MessageSet: true})
	require.NoError(t, err)
	assert.False(t, third.Cached)
	assert.NotEqual(t, first.Output, third.Output)

	require.NoError(t, cache.DropAll())
	_, fourth, err := driver.ExpandFile(context.Background(), path, opts)
	require.NoError(t, err)
	assert.False(t, fourth.Cached)
}

func TestParseText(t *testing.T) {
	res := driver.ParseText("p.rs", []byte("use std::fmt;\n#[derive(HelloMacro)]\nstruct P<T>(T);\n"), 0)
	require.Empty(t, res.Bag.Items())
	require.NotNil(t, res.Decl)
	require.NotNil(t, res.Site)
	assert.Equal(t, "P", res.Decl.Name)

	res = driver.ParseText("q.rs", []byte("enum Q { A, B }"), 0)
	require.NotNil(t, res.Decl)
	assert.Nil(t, res.Site)

	res = driver.ParseText("r.rs", []byte("fn r() {}"), 0)
	assert.Nil(t, res.Decl)
	assert.Equal(t, diag.SynUnsupportedItem, res.Bag.Items()[0].Code)
}

func TestTokenizeText(t *testing.T) {
	res := driver.TokenizeText("t.rs", []byte("struct A;"), 0)
	require.Empty(t, res.Bag.Items())
	require.Len(t, res.Tokens, 4)
	assert.Equal(t, "EOF", res.Tokens[3].Kind.String())
}
