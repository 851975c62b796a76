package main

import (
	"io"
	"os"

	logging "github.com/ipfs/go-log/v2"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/vlei-notebooks/cesrstream/internal/format"
)

type MainConfig struct {
	Verbose bool `cli:"name=v aliases=verbose desc='log debug messages'"`

	Main *cli.Command
}

// setLogLevel turns on debug logging when -v is given.  Otherwise the level
// comes from GOLOG_LOG_LEVEL.
func (cfg *MainConfig) setLogLevel() {
	if cfg.Verbose {
		logging.SetAllLoggers(logging.LevelDebug)
	}
}

type FormatConfig struct {
	*MainConfig

	Color   bool   `cli:"name=color desc='always color the report'"`
	NoColor bool   `cli:"name=nocolor desc='never color the report'"`
	YAML    bool   `cli:"name=yaml desc='print events as yaml'"`
	Indent  int    `cli:"name=indent desc='indentation step, negative for single line json (default 2)'"`
	Where   string `cli:"name=where desc='only print events matching this expr-lang expression'"`

	Format *cli.Command
}

// colorizer returns the colors to use when writing to w, or nil for none.
func (cfg *FormatConfig) colorizer(w io.Writer) *format.Colorizer {
	switch {
	case cfg.NoColor:
		return nil
	case cfg.Color:
		return format.DefaultColorizer()
	}
	f, ok := w.(*os.File)
	if ok && isatty.IsTerminal(f.Fd()) {
		return format.DefaultColorizer()
	}
	return nil
}

// colorOutput wraps w so that escape sequences work on all terminals.
func colorOutput(w io.Writer) io.Writer {
	if f, ok := w.(*os.File); ok {
		return colorable.NewColorable(f)
	}
	return w
}

type SummaryConfig struct {
	*MainConfig

	Summary *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}

type SaidConfig struct {
	*MainConfig

	Key      string `cli:"name=key desc='top-level key holding the SAID (default $id)'"`
	Sections bool   `cli:"name=sections desc='also print the SAIDs of the a, e and r sub-schemas'"`

	Said *cli.Command
}
