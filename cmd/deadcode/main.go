package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/c360studio/deadcode/internal/analysis"
	"github.com/c360studio/deadcode/internal/api"
	"github.com/c360studio/deadcode/internal/config"
	"github.com/c360studio/deadcode/internal/deletion"
	"github.com/c360studio/deadcode/internal/model"
	"github.com/c360studio/deadcode/internal/report"
	"github.com/c360studio/deadcode/internal/utils"
	"github.com/c360studio/deadcode/internal/watch"
)

// Exit codes per §6.
const (
	exitSuccess           = 0
	exitFindings          = 1
	exitInvalidInvocation = 2
	exitIOError           = 3
	exitInterrupted       = 130
)

func main() {
	app := &cli.App{
		Name:        "deadcode",
		Usage:       "whole-program dead-code analysis for Android Kotlin/Java source trees",
		Description: "Finds unreferenced classes, write-only properties, unused parameters, unused sealed variants, redundant overrides, unused intent extras, and unused resources across an Android project, then optionally deletes them.",
		ArgsUsage:   "[PATH]",
		Flags:       flags(),
		Action:      run,
	}
	app.Commands = []*cli.Command{serveCommand()}

	if err := app.Run(os.Args); err != nil {
		if exitErr, ok := err.(cli.ExitCoder); ok {
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintln(os.Stderr, "deadcode:", err)
		os.Exit(exitIOError)
	}
}

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Usage: "explicit config file path"},
		&cli.StringSliceFlag{Name: "target", Usage: "directory (relative to PATH) to analyze, repeatable"},
		&cli.StringSliceFlag{Name: "exclude", Usage: "glob pattern to exclude, repeatable"},
		&cli.StringSliceFlag{Name: "retain", Usage: "glob pattern against simple names to retain, repeatable"},
		&cli.StringFlag{Name: "format", Value: "terminal", Usage: "output format: terminal, json, sarif"},
		&cli.StringFlag{Name: "output", Usage: "write report to this file instead of stdout"},
		&cli.BoolFlag{Name: "delete", Usage: "delete declarations behind surviving findings"},
		&cli.BoolFlag{Name: "interactive", Usage: "confirm each file's deletions before applying"},
		&cli.BoolFlag{Name: "dry-run", Usage: "with --delete, report what would be deleted without writing"},
		&cli.StringFlag{Name: "undo-script", Usage: "write a shell script that reverts --delete's edits"},
		&cli.StringFlag{Name: "detect", Usage: "comma-separated detector codes to run (default: all)"},
		&cli.BoolFlag{Name: "deep", Usage: "alias for enabling --unused-params and --unused-resources together"},
		&cli.BoolFlag{Name: "unused-params", Usage: "include DC003 unused-parameter findings"},
		&cli.BoolFlag{Name: "unused-resources", Usage: "include DC102 unused-resource findings"},
		&cli.StringSliceFlag{Name: "coverage", Usage: "JaCoCo/Kover XML or LCOV coverage report, repeatable"},
		&cli.StringFlag{Name: "proguard-usage", Usage: "R8/ProGuard usage.txt to cross-check against"},
		&cli.StringFlag{Name: "min-confidence", Usage: "minimum confidence to report: low, medium, high, confirmed"},
		&cli.BoolFlag{Name: "runtime-only", Usage: "report only findings confirmed by coverage or shrinker evidence"},
		&cli.BoolFlag{Name: "include-runtime-dead", Usage: "also report reachable declarations coverage shows as never executed"},
		&cli.BoolFlag{Name: "detect-cycles", Usage: "report zombie reference cycles unreachable from any entry point"},
		&cli.BoolFlag{Name: "incremental", Usage: "reuse cached parse results for unchanged files"},
		&cli.StringFlag{Name: "cache-path", Usage: "incremental parse cache location"},
		&cli.BoolFlag{Name: "clear-cache", Usage: "discard the incremental parse cache before running"},
		&cli.StringFlag{Name: "baseline", Usage: "suppress findings whose fingerprint appears in this file"},
		&cli.StringFlag{Name: "generate-baseline", Usage: "write every surviving finding's fingerprint to this file instead of reporting"},
		&cli.BoolFlag{Name: "watch", Usage: "re-run the analysis whenever a source file changes"},
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "enable debug logging"},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "suppress non-essential output"},
		&cli.IntFlag{Name: "workers", Value: runtime.NumCPU(), Usage: "parser worker pool size"},
		&cli.BoolFlag{Name: "fail-on-findings", Usage: "exit 1 when any finding survives aggregation"},
	}
}

// exitFor maps err to a §6 exit code via its *model.AnalyzerError kind
// (§7). Parse and resource errors are tolerated mid-pipeline and never
// reach this dispatch; an error that never went through the taxonomy
// defaults to the generic I/O code, matching prior behavior for untyped
// errors.
func exitFor(err error) int {
	var aerr *model.AnalyzerError
	if errors.As(err, &aerr) {
		switch aerr.Kind {
		case model.ErrKindConfiguration:
			return exitInvalidInvocation
		case model.ErrKindInternal, model.ErrKindIO:
			return exitIOError
		}
	}
	return exitIOError
}

// wrapExit reports err to the user and exits with the code its
// AnalyzerError kind maps to.
func wrapExit(err error) error {
	return cli.Exit(err.Error(), exitFor(err))
}

func run(c *cli.Context) error {
	root := c.Args().First()
	if root == "" {
		root = "."
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return wrapExit(model.NewConfigError(fmt.Sprintf("resolving %s", root), err))
	}

	cfgPath, err := config.Discover(c.String("config"), absRoot)
	if err != nil {
		return wrapExit(model.NewConfigError("discovering config file", err))
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return wrapExit(model.NewConfigError("loading config file", err))
	}

	opts, err := buildOptions(c, absRoot, cfg)
	if err != nil {
		return wrapExit(model.NewConfigError("building analysis options", err))
	}

	logger := utils.NewSilentLogger()
	if c.Bool("verbose") {
		logger = utils.NewLogger(true)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if c.Bool("watch") {
		return runWatch(ctx, absRoot, opts, c, logger)
	}

	result, err := analysis.Run(ctx, opts)
	if err != nil {
		if err == analysis.ErrCancelled {
			return cli.Exit("interrupted", exitInterrupted)
		}
		return wrapExit(err)
	}

	return finish(c, opts, result)
}

// buildOptions merges the config file (lowest precedence) with CLI flags
// (highest precedence) into analysis.Options, per §6.
func buildOptions(c *cli.Context, root string, cfg *config.Config) (analysis.Options, error) {
	targets := firstNonEmpty(c.StringSlice("target"), cfg.Targets)
	excludes := firstNonEmpty(c.StringSlice("exclude"), cfg.Exclude)
	retains := firstNonEmpty(c.StringSlice("retain"), cfg.RetainPatterns)
	components := cfg.Android.ComponentPatterns

	opts := analysis.Options{
		Root: root, Targets: targets, Excludes: excludes,
		RetainPatterns: retains, EntryPoints: cfg.EntryPoints, ComponentPatterns: components,
		CoveragePaths: c.StringSlice("coverage"), ProguardUsage: c.String("proguard-usage"),
		RuntimeOnly: c.Bool("runtime-only"), IncludeRuntimeDead: c.Bool("include-runtime-dead"),
		BaselineFile: c.String("baseline"), DetectCycles: c.Bool("detect-cycles"),
		Incremental: c.Bool("incremental"), CachePath: cachePath(c, root), ClearCache: c.Bool("clear-cache"),
		Workers: c.Int("workers"), Verbose: c.Bool("verbose"),
	}

	if detect := c.String("detect"); detect != "" {
		opts.DetectCodes = parseCodes(detect)
	}
	if c.Bool("deep") {
		opts.DetectCodes = unionDeep(opts.DetectCodes)
	}
	if c.Bool("unused-params") {
		opts.DetectCodes = includeCode(opts.DetectCodes, model.DC003UnusedParameter)
	}
	if c.Bool("unused-resources") {
		opts.DetectCodes = includeCode(opts.DetectCodes, model.DCUnusedResource)
	}

	if mc := c.String("min-confidence"); mc != "" {
		conf, ok := model.ParseConfidence(mc)
		if !ok {
			return opts, fmt.Errorf("unrecognized --min-confidence %q", mc)
		}
		opts.MinConfidence = conf
		opts.HasMinConf = true
	}

	return opts, nil
}

func cachePath(c *cli.Context, root string) string {
	if p := c.String("cache-path"); p != "" {
		return p
	}
	return filepath.Join(root, ".deadcode-cache")
}

func firstNonEmpty(flagVal, configVal []string) []string {
	if len(flagVal) > 0 {
		return flagVal
	}
	return configVal
}

func parseCodes(csv string) map[model.Code]bool {
	out := map[model.Code]bool{}
	for _, c := range strings.Split(csv, ",") {
		c = strings.TrimSpace(c)
		if c != "" {
			out[model.Code(c)] = true
		}
	}
	return out
}

// allDetectorCodes lists every code the detectors package emits, used by
// --deep/--unused-params/--unused-resources to add to an otherwise-empty
// selection without silently narrowing one the user already gave via
// --detect.
var allDetectorCodes = []model.Code{
	model.DC001Unreferenced, model.DC002WriteOnly, model.DC003UnusedParameter,
	model.DC005UnusedEnumCase, model.DC008UnusedSealedVariant, model.DC009RedundantOverride,
	model.DCIntentExtra, model.DCUnusedResource,
}

func unionDeep(codes map[model.Code]bool) map[model.Code]bool {
	if codes == nil {
		codes = map[model.Code]bool{}
		for _, c := range allDetectorCodes {
			codes[c] = true
		}
		return codes
	}
	codes[model.DC003UnusedParameter] = true
	codes[model.DCUnusedResource] = true
	return codes
}

func includeCode(codes map[model.Code]bool, code model.Code) map[model.Code]bool {
	if codes == nil {
		codes = map[model.Code]bool{}
		for _, c := range allDetectorCodes {
			codes[c] = true
		}
	}
	codes[code] = true
	return codes
}

// finish renders the result and, if --delete was given, applies it.
func finish(c *cli.Context, opts analysis.Options, result *analysis.Result) error {
	findings := result.Findings

	if gb := c.String("generate-baseline"); gb != "" {
		if err := report.GenerateBaseline(gb, findings); err != nil {
			return wrapExit(model.NewIOError(gb, "writing baseline", err))
		}
		if !c.Bool("quiet") {
			fmt.Printf("wrote %d fingerprints to %s\n", len(findings), gb)
		}
		return nil
	}

	if err := writeReport(c, findings); err != nil {
		return wrapExit(err)
	}

	if c.Bool("delete") {
		delResult, err := applyDeletions(c, opts.Root, findings)
		if err != nil {
			return wrapExit(model.NewIOError(opts.Root, "applying deletions", err))
		}
		if !c.Bool("quiet") {
			fmt.Printf("deleted %d finding(s), skipped %d, failed %d\n",
				len(delResult.Deleted), len(delResult.Skipped), len(delResult.Failed))
		}
	}

	if len(findings) > 0 && c.Bool("fail-on-findings") {
		return cli.Exit("", exitFindings)
	}
	return nil
}

func writeReport(c *cli.Context, findings []model.Finding) error {
	out := os.Stdout
	path := c.String("output")
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return model.NewIOError(path, "creating report output file", err)
		}
		defer f.Close()
		out = f
	}

	var err error
	switch c.String("format") {
	case "json":
		err = report.WriteJSON(out, findings)
	case "sarif":
		err = report.WriteSARIF(out, findings, c.Args().First())
	case "terminal", "":
		if c.Bool("quiet") {
			return nil
		}
		err = report.WriteTerminal(out, findings)
	default:
		return model.NewConfigError(fmt.Sprintf("unrecognized --format %q (expected terminal, json, or sarif)", c.String("format")), nil)
	}
	if err != nil {
		return model.NewIOError(path, "writing report", err)
	}
	return nil
}

func applyDeletions(c *cli.Context, root string, findings []model.Finding) (*deletion.Result, error) {
	plan := deletion.BuildPlan(findings)
	return deletion.Execute(plan, deletion.Options{
		Root: root, DryRun: c.Bool("dry-run"), Interactive: c.Bool("interactive"),
		UndoScriptPath: c.String("undo-script"),
	})
}

func runWatch(ctx context.Context, root string, opts analysis.Options, c *cli.Context, logger *utils.Logger) error {
	w, err := watch.New(root, 300*time.Millisecond, logger)
	if err != nil {
		return wrapExit(model.NewIOError(root, "starting watcher", err))
	}
	defer w.Close()

	runOnce := func(ctx context.Context) {
		result, err := analysis.Run(ctx, opts)
		if err != nil {
			fmt.Fprintln(os.Stderr, "deadcode:", err)
			return
		}
		if err := writeReport(c, result.Findings); err != nil {
			fmt.Fprintln(os.Stderr, "deadcode:", err)
		}
	}

	fmt.Println("watching", root, "for changes (ctrl-c to stop)...")
	runOnce(ctx)
	return w.Run(ctx, runOnce)
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the analyzer behind an HTTP API",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "port", Value: 8080, Usage: "listen port"},
			&cli.BoolFlag{Name: "auth", Usage: "require a bearer token on every request but /health"},
			&cli.StringSliceFlag{Name: "token", Usage: "valid bearer token, repeatable"},
			&cli.StringSliceFlag{Name: "cors-origin", Usage: "allowed CORS origin, repeatable (default: *)"},
		},
		Action: func(c *cli.Context) error {
			origins := c.StringSlice("cors-origin")
			if len(origins) == 0 {
				origins = []string{"*"}
			}
			server := api.NewServer(&api.ServerConfig{
				EnableAuth:  c.Bool("auth"),
				AuthTokens:  c.StringSlice("token"),
				CORSOrigins: origins,
			})
			r := server.SetupRouter()
			addr := ":" + strconv.Itoa(c.Int("port"))
			fmt.Println("deadcode serve listening on", addr)
			return r.Run(addr)
		},
	}
}
