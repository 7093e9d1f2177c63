package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"hellomacro/internal/diag"
	"hellomacro/internal/source"
	"hellomacro/internal/trace"
)

// ListSources возвращает отсортированный список *.rs файлов в dir.
// Скрытые каталоги и `target` пропускаются.
func ListSources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != dir && (name == "target" || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".rs") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walk %s", dir)
	}
	// для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ExpandDir expands every *.rs file under dir in parallel.
func ExpandDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []FileResult, error) {
	files, err := ListSources(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	results, err := ExpandPaths(ctx, fileSet, files, opts)
	return fileSet, results, err
}

// ExpandFile expands a single file.
func ExpandFile(ctx context.Context, path string, opts Options) (*source.FileSet, FileResult, error) {
	fileSet := source.NewFileSetWithBase(filepath.Dir(path))
	results, err := ExpandPaths(ctx, fileSet, []string{path}, opts)
	if len(results) == 0 {
		return fileSet, FileResult{Path: path}, err
	}
	return fileSet, results[0], err
}

// ExpandText expands in-memory source, e.g. stdin.
func ExpandText(ctx context.Context, name string, src []byte, opts Options) (*source.FileSet, FileResult) {
	fileSet := source.NewFileSet()
	id := fileSet.AddVirtual(name, src)
	return fileSet, expandLoaded(ctx, fileSet, id, opts)
}

// ExpandPaths loads paths into fileSet and expands them concurrently.
// Results are in the order of paths. An unreadable file yields an IO4001
// diagnostic in its own result; the returned error is only set when ctx
// is cancelled.
func ExpandPaths(ctx context.Context, fileSet *source.FileSet, paths []string, opts Options) ([]FileResult, error) {
	tracer := trace.FromContext(ctx)
	sp := trace.Begin(tracer, trace.ScopeDriver, "expand", trace.ParentFrom(ctx))
	ctx = trace.WithSpan(ctx, sp)

	// Загружаем последовательно, чтобы FileID не зависели от планировщика
	fileIDs := make([]source.FileID, len(paths))
	loadErrors := make(map[int]error)
	for i, path := range paths {
		id, err := fileSet.Load(path)
		if err != nil {
			// пустой файл-заглушка, чтобы диагностике было куда указывать
			fileIDs[i] = fileSet.AddVirtual(path, nil)
			loadErrors[i] = err
			continue
		}
		fileIDs[i] = id
		emit(ctx, opts.Events, Event{File: path, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(paths))))
	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[i]; failed {
				bag := diag.NewBag(opts.maxDiagnostics())
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: fileIDs[i]}, "failed to load file: "+loadErr.Error()))
				results[i] = FileResult{Path: path, FileID: fileIDs[i], Bag: bag}
				trace.Error(tracer, trace.ScopeFile, "load", path, sp.ID())
				emit(gctx, opts.Events, Event{File: path, Status: StatusError})
				return nil
			}

			emit(gctx, opts.Events, Event{File: path, Status: StatusWorking})
			res := expandLoaded(gctx, fileSet, fileIDs[i], opts)
			res.Path = path
			results[i] = res

			status := StatusDone
			if res.Failed() {
				status = StatusError
			}
			emit(gctx, opts.Events, Event{File: path, Status: status, Sites: res.Expanded(), Cached: res.Cached})
			return nil
		})
	}

	err := g.Wait()
	sp.WithExtra("files", strconv.Itoa(len(paths))).End("")
	if err != nil {
		return results, errors.Wrap(err, "expansion cancelled")
	}
	return results, nil
}
