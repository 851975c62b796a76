package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/scott-cotton/cli"

	"github.com/vlei-notebooks/cesrstream"
	"github.com/vlei-notebooks/cesrstream/schema"
)

func cesrMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	cfg.setLogLevel()
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return quietEPIPE(err)
}

// quietEPIPE drops the error caused by the reader of stdout going away
// (e.g. 'head' or 'less').
func quietEPIPE(err error) error {
	if errors.Is(err, syscall.EPIPE) {
		return nil
	}
	return err
}

func formatStreams(cfg *FormatConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Format.Parse(cc, args)
	if err != nil {
		return err
	}
	f, err := cfg.formatter(cc.Out)
	if err != nil {
		return err
	}
	out := io.Writer(cc.Out)
	if f.Colorizer != nil {
		out = colorOutput(cc.Out)
	}
	return formatFiles(f, out, cc.In, args)
}

func (cfg *FormatConfig) formatter(w io.Writer) (*cesrstream.Formatter, error) {
	f := cesrstream.DefaultFormatter()
	f.Indent = cfg.Indent
	f.Colorizer = cfg.colorizer(w)
	if cfg.YAML {
		f.Output = cesrstream.YAML
	}
	if cfg.Where != "" {
		filter, err := cesrstream.CompileFilter(cfg.Where)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		f.Filter = filter
	}
	return f, nil
}

func formatFiles(f *cesrstream.Formatter, w io.Writer, stdin io.Reader, paths []string) error {
	return eachStream(stdin, paths, func(path, stream string) error {
		s := f.Vocabulary.Split(stream)
		log.Debugf("%s: %d messages", path, len(s.Messages))
		if s.Trailer != nil {
			log.Debugf("%s: stream stopped at byte %d", path, s.Trailer.Offset)
		}
		return writeReport(w, f.FormatStream(s))
	})
}

func summary(cfg *SummaryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Summary.Parse(cc, args)
	if err != nil {
		return err
	}
	return summarizeFiles(cc.Out, cc.In, args)
}

func summarizeFiles(w io.Writer, stdin io.Reader, paths []string) error {
	return eachStream(stdin, paths, func(path, stream string) error {
		return writeReport(w, cesrstream.Summary(stream))
	})
}

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	differs, err := diffFiles(cc.Out, cc.In, args[0], args[1])
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func diffFiles(w io.Writer, stdin io.Reader, a, b string) (bool, error) {
	if a == "-" && b == "-" {
		return false, fmt.Errorf("%w: stdin can only be read once", cli.ErrUsage)
	}
	streamA, err := readStream(stdin, a)
	if err != nil {
		return false, err
	}
	streamB, err := readStream(stdin, b)
	if err != nil {
		return false, err
	}
	d := cesrstream.Diff(streamA, streamB)
	if d == "" {
		return false, nil
	}
	_, err = io.WriteString(w, d)
	return true, err
}

func said(cfg *SaidConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Said.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: said requires 1 arg, got %v", cli.ErrUsage, args)
	}
	return printSAIDs(cc.Out, args[0], cfg.Key, cfg.Sections)
}

func printSAIDs(w io.Writer, path, key string, sections bool) error {
	if key == "" {
		key = schema.DefaultKey
	}
	s, err := schema.Load(path)
	if err != nil {
		return err
	}
	id, err := s.SAID(key)
	if err != nil {
		return err
	}
	if !sections {
		_, err = fmt.Fprintln(w, id)
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\t%s\n", key, id); err != nil {
		return err
	}
	for _, sub := range s.SectionSAIDs() {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", sub.Section, sub.SAID); err != nil {
			return err
		}
	}
	return nil
}

// eachStream calls fn with the contents of each path in turn, stdin being
// read when there are none.
func eachStream(stdin io.Reader, paths []string, fn func(path, stream string) error) error {
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	for _, path := range paths {
		stream, err := readStream(stdin, path)
		if err != nil {
			return err
		}
		if err := fn(path, stream); err != nil {
			return err
		}
	}
	return nil
}

func readStream(stdin io.Reader, path string) (string, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("error reading %q: %w", path, err)
	}
	log.Debugf("read %d bytes from %s", len(d), path)
	return string(d), nil
}

func writeReport(w io.Writer, report string) error {
	if report == "" {
		return nil
	}
	if !strings.HasSuffix(report, "\n") {
		report += "\n"
	}
	_, err := io.WriteString(w, report)
	return err
}
