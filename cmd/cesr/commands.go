package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "cesr").
		WithSynopsis("cesr [-v] command [opts] [files]").
		WithDescription("cesr prints human-readable reports of CESR event streams.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return cesrMain(cfg, cc, args)
		}).
		WithSubs(
			FormatCommand(cfg),
			SummaryCommand(cfg),
			DiffCommand(cfg),
			SaidCommand(cfg))
}

func FormatCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FormatConfig{MainConfig: mainCfg, Indent: 2}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Format, "format").
		WithAliases("f", "fmt").
		WithSynopsis("format [-color] [-nocolor] [-yaml] [-indent N] [-where EXPR] [files]").
		WithDescription("format event streams as numbered events with their attachments").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return formatStreams(cfg, cc, args)
		})
}

func SummaryCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SummaryConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Summary, "summary").
		WithAliases("s", "sum").
		WithSynopsis("summary [files]").
		WithDescription("print one line per event: version, ilk, SAID, prefix, sequence number and attachment size").
		WithRun(func(cc *cli.Context, args []string) error {
			return summary(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff a b").
		WithDescription("compare the reports of two event streams, exit code 1 if they differ").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func SaidCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SaidConfig{MainConfig: mainCfg, Key: "$id"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Said, "said").
		WithSynopsis("said [-key K] [-sections] file").
		WithDescription("print the SAID of a saidified JSON schema").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return said(cfg, cc, args)
		})
}
