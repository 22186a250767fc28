package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/genogram/pkg/cache"
	"github.com/matzehuels/genogram/pkg/errors"
	"github.com/matzehuels/genogram/pkg/family"
)

// Runner executes the pipeline with one icon cache and one logger.
//
// The icon cache is read-through and never invalidated, so a Runner
// reused for several renders reads each icon file at most once. A Runner
// is not safe for concurrent use.
type Runner struct {
	Icons  *cache.Icons
	Logger *log.Logger
}

// NewRunner creates a runner. A nil icons cache draws no decorations and a
// nil logger uses log.Default().
func NewRunner(icons *cache.Icons, logger *log.Logger) *Runner {
	if icons == nil {
		icons = cache.NewNullIcons()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Icons: icons, Logger: logger}
}

// Execute lays out and renders f, keeping the document in memory.
func (r *Runner) Execute(ctx context.Context, f family.Family, opts Options) (*Result, error) {
	res, err := r.Layout(ctx, f, opts)
	if err != nil {
		return nil, err
	}
	if err := r.Render(ctx, res, opts); err != nil {
		return nil, err
	}
	return res, nil
}

// RenderFile renders f and writes the document to path, creating parent
// directories as needed. The format's extension is appended when path has
// none. It returns the absolute path written.
//
// The document is built completely before anything is written, and it is
// moved into place only after a complete write, so a failed render or write
// leaves no partial file behind. Write failures are IO_ERROR and unwrap to
// the underlying *fs.PathError or *os.LinkError.
func (r *Runner) RenderFile(ctx context.Context, f family.Family, path string, opts Options) (string, error) {
	res, err := r.WriteFile(ctx, f, path, opts)
	if err != nil {
		return "", err
	}
	return res.Path, nil
}

// WriteFile is RenderFile returning the whole Result, with Path set to the
// absolute path written.
func (r *Runner) WriteFile(ctx context.Context, f family.Family, path string, opts Options) (*Result, error) {
	if err := errors.ValidateOutputPath(path); err != nil {
		return nil, err
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if filepath.Ext(path) == "" {
		path += Extension(opts.Format)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", path)
	}

	res, err := r.Execute(ctx, f, opts)
	if err != nil {
		return nil, err
	}
	if err := writeFile(abs, res.Document); err != nil {
		return nil, err
	}
	res.Path = abs
	r.logger(opts).Info("wrote genogram", "path", abs)
	return res, nil
}

// Render draws f as an interactive HTML page at path with default options
// and no icons, returning the absolute path written.
func Render(ctx context.Context, f family.Family, path string) (string, error) {
	return NewRunner(nil, nil).RenderFile(ctx, f, path, Options{})
}

// createTemp is swapped in tests to make writes fail.
var createTemp = os.CreateTemp

// writeFile writes data to a temporary file next to path and renames it into
// place, so path either holds the complete document or is left untouched.
func writeFile(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create directory for %s", path)
	}
	out, err := createTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	tmp := out.Name()
	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()

	if _, err := out.Write(data); err != nil {
		out.Close()
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := out.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	if r.Logger != nil {
		return r.Logger
	}
	return log.Default()
}

func hashDocument(data []byte) string {
	return cache.Hash(data)
}
