package pipeline

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/matzehuels/umldraw/pkg/errors"
	umlio "github.com/matzehuels/umldraw/pkg/io"
	"github.com/matzehuels/umldraw/pkg/source/python"
	"github.com/matzehuels/umldraw/pkg/uml"
)

// ReadSource reads the input file, mapping filesystem failures to error codes.
func ReadSource(path string) ([]byte, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "source %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	return src, nil
}

// Extract parses Python source and builds its class model.
func Extract(src []byte, opts Options) (*uml.Model, error) {
	mod, err := python.Parse(src)
	if err != nil {
		return nil, err
	}
	ex := uml.NewExtractor(
		uml.WithDocs(opts.Docs),
		uml.WithIDGenerator(opts.IDGenerator()),
	)
	return ex.Extract(mod), nil
}

// extractFile loads the model for opts.Source, either by extracting a
// Python file or by importing a JSON model export.
func extractFile(opts Options) (*uml.Model, error) {
	if opts.IsModelInput() {
		if _, err := os.Stat(opts.Source); err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "model %s", opts.Source)
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "stat %s", opts.Source)
		}
		m, err := umlio.ImportJSON(opts.Source)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "import model %s", opts.Source)
		}
		return m, nil
	}

	src, err := ReadSource(opts.Source)
	if err != nil {
		return nil, err
	}
	m, err := Extract(src, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.Source, err)
	}
	return m, nil
}
