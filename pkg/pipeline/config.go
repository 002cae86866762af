package pipeline

import (
	stderrors "errors"
	"io/fs"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/umldraw/pkg/errors"
)

// LoadConfig decodes a TOML configuration file over opts. Keys absent from
// the file leave the corresponding option untouched; unknown keys are an
// error so that a misspelt metric does not silently fall back to its default.
//
// A configuration file looks like:
//
//	format = "drawio"
//	stable_ids = true
//
//	[layout]
//	min_width = 200
//	gap = 60
//
//	[document]
//	page_name = "Classes"
func LoadConfig(path string, opts *Options) error {
	md, err := toml.DecodeFile(path, opts)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return errors.New(errors.ErrCodeInvalidConfig, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	// A reloaded configuration must be validated again.
	opts.validated = false
	return nil
}
