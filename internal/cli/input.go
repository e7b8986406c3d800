package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/JonMunkholm/limpiador/internal/core"
	"github.com/spf13/pflag"
)

// inputFlags are the per-file format flags shared by run and columns.
type inputFlags struct {
	sep       string
	customSep string
	header    string
}

// register adds the flags with the given suffix ("-a", "-b" or "").
func (f *inputFlags) register(fs *pflag.FlagSet, suffix, which string) {
	fs.StringVar(&f.sep, "sep"+suffix, "auto", "Separator of "+which+" (auto|comma|semicolon|tab|pipe|custom:<literal>)")
	fs.StringVar(&f.customSep, "custom-sep"+suffix, "", "Literal separator of "+which+" when --sep"+suffix+"=custom")
	fs.StringVar(&f.header, "header"+suffix, "infer", "Header mode of "+which+" (infer|none)")
}

func (f *inputFlags) options() (core.LoadOptions, error) {
	format, err := core.ParseFormatHint(f.sep, f.customSep)
	if err != nil {
		return core.LoadOptions{}, fmt.Errorf("%w: %w", core.ErrInvalidOption, err)
	}
	header, err := core.ParseHeaderMode(f.header)
	if err != nil {
		return core.LoadOptions{}, fmt.Errorf("%w: %w", core.ErrInvalidOption, err)
	}
	return core.LoadOptions{Format: format, Header: header}, nil
}

// readInput reads a whole file. An empty path yields nil so the run
// reports the missing input itself.
func readInput(path string) (*core.Upload, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return &core.Upload{Name: filepath.Base(path), Data: data}, nil
}
