package cli

import (
	"context"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/calc/cli/cmd"
	"github.com/ardnew/calc/lang"
	"github.com/ardnew/calc/log"
	"github.com/ardnew/calc/pkg"
)

// CLI is the top-level command-line interface for calc.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Engine   string           `default:"${engineDefault}" enum:"${engineEnum}" help:"Evaluation engine (${enum})." short:"e"`
	MaxDepth int              `default:"0"                                     help:"Maximum parser nesting depth, 0 for unlimited." placeholder:"N"`
	Version  kong.VersionFlag `                                                help:"Print version and exit."`

	Repl cmd.Repl `cmd:"" default:"withargs" help:"Evaluate expressions interactively (default)"`
	Eval cmd.Eval `cmd:""                    help:"Evaluate expressions from arguments or files"`
	Init cmd.Init `cmd:""                    help:"Initialize configuration file"`
}

// Run executes the calc CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	vars := kong.Vars{
		cmd.ConfigIdentifier: configPath(baseConfig + extYAML),
		cmd.CacheIdentifier:  cacheDir(),
		"engineEnum":         strings.Join(slices.Collect(lang.Engines()), ","),
		"engineDefault":      lang.DefaultEngine.String(),
		"version":            pkg.Name + " " + pkg.Version,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position.
	cli.Log.scan(args)

	groups := []kong.Group{cli.Log.group()}
	if g := cli.Pprof.group(); g.Key != "" {
		groups = append(groups, g)
	}

	// Parse command line
	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(groups),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		// Later files take precedence over earlier ones.
		kong.Configuration(
			resolve(ctx, baseConfig+extYAML, decodeYAML),
			configPath(baseConfig+extYAML),
		),
		kong.Configuration(kong.JSON, configPath(baseConfig+extJSON)),
		kong.Configuration(
			resolve(ctx, baseConfig+extTOML, decodeTOML),
			configPath(baseConfig+extTOML),
		),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	logger := cli.Log.start(ctx)

	// Stuff additional context values for use by commands
	ctx = log.Into(ctx, logger)
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSettings(ctx, cmd.Settings{
		Engine:   lang.ParseEngine(cli.Engine),
		MaxDepth: cli.MaxDepth,
		Cache:    cacheDir(),
	})

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	// Execute the selected command
	return ktx.Run(ctx, &cli)
}
