package main

import (
	"github.com/scott-cotton/cli"
)

// Config mirrors go-tony/cmd/o's MainConfig pattern: a plain struct with
// cli:"..." tags expanded into *cli.Opt slices via cli.StructOpts, holding
// the flags encoder.cpp defines (-d, -n, -h; the stats flag's payload is a
// styml addition) plus -color, which controls coloring of the -d output.
type Config struct {
	Dump  bool `cli:"name=d desc='dump on stdout the parsed file as YAML; default is as a Python-like structure'"`
	Stats bool `cli:"name=n desc='dump on stdout some performance statistics on the parsing and YAML dumping'"`
	Help  bool `cli:"name=h aliases=help desc='this help'"`
	Color bool `cli:"name=color desc='force-enable YAML key/comment coloring; default is auto-detected from the output terminal'"`

	Cmd *cli.Command
}

const synopsis = "styml [options] [ YAML filename or '-' ]"

const description = `This tool is a StrictYAML decoder with an interface compatible with the test suite.
Providing '-' as a filename reads the input from stdin.`

// RootCommand builds the single, sub-command-free CLI tree for styml.
func RootCommand() *cli.Command {
	cfg := &Config{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Cmd, "styml").
		WithSynopsis(synopsis).
		WithDescription(description).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return run(cfg, cc, args)
		})
}
