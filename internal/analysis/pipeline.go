// Package analysis orchestrates the full dependency-ordered pipeline of §2:
// discovery, parsing, registry/graph construction, entry-point seeding,
// reachability, optional coverage/shrinker augmentation, detection, and
// aggregation. It is the single place every consumer (the CLI, the HTTP
// API, watch mode) drives a run from, grounded on the teacher's own
// indexing-pipeline shape (discovery -> parser pool -> graph builder) now
// retargeted at the analyzer's Declaration/Reference model instead of a
// database writer.
package analysis

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/c360studio/deadcode/internal/aggregator"
	"github.com/c360studio/deadcode/internal/coverage"
	"github.com/c360studio/deadcode/internal/detectors"
	"github.com/c360studio/deadcode/internal/discovery"
	"github.com/c360studio/deadcode/internal/entrypoint"
	"github.com/c360studio/deadcode/internal/graph"
	"github.com/c360studio/deadcode/internal/model"
	"github.com/c360studio/deadcode/internal/reachability"
	"github.com/c360studio/deadcode/internal/registry"
	"github.com/c360studio/deadcode/internal/report"
	"github.com/c360studio/deadcode/internal/shrinker"
	"github.com/c360studio/deadcode/internal/sourceparse"
	"github.com/c360studio/deadcode/internal/utils"
	"github.com/c360studio/deadcode/internal/xmlparse"
)

// Options bundles every knob the pipeline needs, gathered from the merged
// CLI-flags-over-config-file view (§6).
type Options struct {
	Root              string
	Targets           []string
	Excludes          []string
	RetainPatterns    []string
	EntryPoints       []string
	ComponentPatterns []string

	// DetectCodes, when non-nil, restricts detection to the named codes
	// (--detect); nil means every detector in detectors.All runs.
	DetectCodes map[model.Code]bool

	CoveragePaths  []string
	ProguardUsage  string
	MinConfidence  model.Confidence
	HasMinConf     bool
	RuntimeOnly    bool
	IncludeRuntimeDead bool
	BaselineFile   string
	DetectCycles   bool

	Incremental bool
	CachePath   string
	ClearCache  bool
	Workers     int
	Verbose     bool
}

// Result is everything a pipeline run produces, enough for every reporter
// and for --delete's declaration lookups.
type Result struct {
	Findings      []model.Finding
	ZombieCycles  []graph.ZombieCycle
	Registry      *registry.Registry
	Graph         *graph.Graph
	Reachable     *reachability.Set
	FilesParsed   int
	ParseErrors   []error
}

// ErrCancelled is returned when ctx is cancelled at a phase boundary (§5:
// "a global cancellation token is checked at every phase boundary").
var ErrCancelled = fmt.Errorf("analysis cancelled")

// Run executes the full pipeline and returns the aggregated, sorted
// findings plus the intermediate state a caller may want to inspect
// (e.g. for --delete or --detect-cycles reporting).
func Run(ctx context.Context, opts Options) (*Result, error) {
	logger := utils.NewLogger(opts.Verbose)
	if !opts.Verbose {
		logger = utils.NewSilentLogger()
	}

	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	// Phase 1: Discovery.
	files, err := discovery.Discover(discovery.Options{
		Root: opts.Root, Targets: opts.Targets, Excludes: opts.Excludes, Retains: opts.RetainPatterns,
	})
	if err != nil {
		return nil, model.NewIOError(opts.Root, "discovery failed", err)
	}
	logger.Infof("discovered %d files", len(files))

	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	// Phase 2: Parsers.
	var cache *sourceparse.Cache
	if opts.Incremental {
		cache = sourceparse.NewCache(opts.CachePath)
		if opts.ClearCache {
			if err := cache.Clear(); err != nil {
				logger.Warnf("clearing cache: %v", err)
			}
		}
	}

	tasks, xmlFiles := splitTasks(files)
	pool := sourceparse.NewPool(opts.Workers, cache)
	pool.SetVerbose(opts.Verbose)
	pool.SetProgressLogger(poolLogger{logger})

	parsedFiles, parseErrs := pool.Process(tasks)
	for _, e := range parseErrs {
		logger.Warnf("parse error: %v", e)
	}

	xmlParsed, xmlDecls, xmlErrs := parseXMLFiles(xmlFiles)
	for _, e := range xmlErrs {
		logger.Warnf("xml parse error: %v", e)
	}
	parsedFiles = append(parsedFiles, xmlParsed...)

	if cache != nil {
		live := map[string]bool{}
		for _, f := range files {
			live[f.Path] = true
		}
		cache.Evict(live)
		if err := cache.Flush(); err != nil {
			logger.Warnf("flushing parse cache: %v", err)
		}
	}

	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	// Phase 3: Declaration Registry.
	reg := registry.New()
	reg.Ingest(parsedFiles)
	for _, res := range xmlDecls {
		reg.AddResource(res)
	}

	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	// Phase 4: Reference Graph.
	g := graph.NewBuilder(reg).Build(parsedFiles)

	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	// Phase 5: Entry-Point Seeder.
	seeder := entrypoint.New(reg, g, entrypoint.Config{
		EntryPoints:       opts.EntryPoints,
		RetainPatterns:    opts.RetainPatterns,
		ComponentPatterns: opts.ComponentPatterns,
	})
	seeds := seeder.Seed()

	// Phase 6: Reachability.
	reached := reachability.Compute(reg, g, seeds)
	logger.Infof("%d/%d declarations reachable", reached.Len(), reg.Len())

	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	var cycles []graph.ZombieCycle
	if opts.DetectCycles {
		unreached := reachability.Unreached(reg, reached)
		unreachableSet := make(map[model.ID]bool, len(unreached))
		for _, id := range unreached {
			unreachableSet[id] = true
		}
		cycles = graph.FindZombieCycles(g, unreached, unreachableSet)
	}

	// Phase 7: Augmentation (coverage + shrinker overlays).
	var covOverlay *coverage.Overlay
	for _, path := range opts.CoveragePaths {
		overlay, err := loadCoverage(path)
		if err != nil {
			logger.Warnf("dropping coverage overlay %s: %v", path, err)
			continue
		}
		if covOverlay == nil {
			covOverlay = coverage.NewOverlay()
		}
		covOverlay.MergeOverlay(overlay)
	}

	var usage *shrinker.Usage
	if opts.ProguardUsage != "" {
		u, err := shrinker.ParseUsage(opts.ProguardUsage)
		if err != nil {
			logger.Warnf("dropping shrinker overlay %s: %v", opts.ProguardUsage, err)
		} else {
			usage = u
		}
	}

	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	// Phase 8: Detectors.
	intentExtras := collectIntentExtras(parsedFiles)
	detCtx := &detectors.Context{Registry: reg, Graph: g, Reachable: reached, IntentExtras: intentExtras}
	active := selectDetectors(opts.DetectCodes)
	findings := detectors.Run(detCtx, active)

	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	// Phase 9: Finding Aggregator.
	var baseline map[string]bool
	if opts.BaselineFile != "" {
		baseline, err = report.LoadBaseline(opts.BaselineFile)
		if err != nil {
			return nil, model.NewConfigError("loading --baseline", err)
		}
	}

	agCfg := aggregator.Config{
		Coverage: covOverlay, Shrinker: usage,
		MinConfidence: opts.MinConfidence, HasMinConfidence: opts.HasMinConf,
		RuntimeOnly: opts.RuntimeOnly, IncludeRuntimeDead: opts.IncludeRuntimeDead,
		BaselineFingerprints: baseline,
	}
	final := aggregator.Aggregate(findings, reg, reached, agCfg)

	return &Result{
		Findings: final, ZombieCycles: cycles, Registry: reg, Graph: g, Reachable: reached,
		FilesParsed: len(parsedFiles), ParseErrors: parseErrs,
	}, nil
}

func checkCancelled(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ErrCancelled
	default:
		return nil
	}
}

// splitTasks partitions discovered files into Kotlin/Java parser tasks
// (read into memory up front, the only blocking I/O the pool itself
// performs per §5) and the XML files that go through internal/xmlparse
// instead of the tree-sitter pool.
func splitTasks(files []discovery.File) ([]sourceparse.FileTask, []discovery.File) {
	var tasks []sourceparse.FileTask
	var xmlFiles []discovery.File
	for _, f := range files {
		switch f.Kind {
		case discovery.KindKotlin, discovery.KindJava:
			content, err := os.ReadFile(f.Abs)
			if err != nil {
				continue
			}
			info, statErr := os.Stat(f.Abs)
			var modTime int64
			if statErr == nil {
				modTime = info.ModTime().UnixNano()
			}
			lang := sourceparse.LangKotlin
			if f.Kind == discovery.KindJava {
				lang = sourceparse.LangJava
			}
			tasks = append(tasks, sourceparse.FileTask{Path: f.Path, Language: lang, Content: content, ModTime: modTime})
		case discovery.KindManifestXml, discovery.KindLayoutXml, discovery.KindValuesXml:
			xmlFiles = append(xmlFiles, f)
		}
	}
	return tasks, xmlFiles
}

// parseXMLFiles runs the three XML dialects of §4.3 and converts their
// output into the same (declarations, pending-references) shape the
// tree-sitter parsers produce, so graph.Builder can treat every file
// uniformly.
func parseXMLFiles(files []discovery.File) ([]*sourceparse.ParsedFile, []model.Resource, []error) {
	var out []*sourceparse.ParsedFile
	var resources []model.Resource
	var errs []error

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	for _, f := range files {
		content, err := os.ReadFile(f.Abs)
		if err != nil {
			errs = append(errs, model.NewIOError(f.Path, "reading xml file", err))
			continue
		}

		switch f.Kind {
		case discovery.KindManifestXml:
			res, err := xmlparse.ParseManifest(f.Path, content)
			if err != nil {
				errs = append(errs, model.NewParseError(f.Path, "parsing manifest", err))
				continue
			}
			pf := &sourceparse.ParsedFile{Path: f.Path}
			for _, ref := range res.References {
				pf.References = append(pf.References, sourceparse.RawReference{
					SourceFQName: xmlparse.SourceID().FQName, SourceKind: xmlparse.SourceID().Kind,
					TargetName: ref.ClassFQName, Kind: model.RefXmlBinding, Location: ref.Location,
				})
			}
			out = append(out, pf)

		case discovery.KindLayoutXml:
			res, err := xmlparse.ParseLayout(f.Path, content)
			if err != nil {
				errs = append(errs, model.NewParseError(f.Path, "parsing layout", err))
				continue
			}
			sourceID := model.ID{FQName: "layout:" + f.Path, Kind: "layout_entry"}
			pf := &sourceparse.ParsedFile{Path: f.Path}
			for _, ref := range res.References {
				pf.References = append(pf.References, sourceparse.RawReference{
					SourceFQName: sourceID.FQName, SourceKind: sourceID.Kind,
					TargetName: ref.TargetName, Kind: ref.Kind, Location: ref.Location,
				})
			}
			out = append(out, pf)

		case discovery.KindValuesXml:
			res, err := xmlparse.ParseValues(f.Path, content)
			if err != nil {
				errs = append(errs, model.NewResourceError(f.Path, "parsing values", err))
				continue
			}
			resources = append(resources, res.Declared...)
			sourceID := model.ID{FQName: "values:" + f.Path, Kind: "values_entry"}
			pf := &sourceparse.ParsedFile{Path: f.Path}
			for _, ref := range res.References {
				pf.References = append(pf.References, sourceparse.RawReference{
					SourceFQName: sourceID.FQName, SourceKind: sourceID.Kind,
					TargetName: ref.TargetName, Kind: ref.Kind, Location: ref.Location,
				})
			}
			out = append(out, pf)
		}
	}
	return out, resources, errs
}

func collectIntentExtras(files []*sourceparse.ParsedFile) []sourceparse.IntentExtraUse {
	var out []sourceparse.IntentExtraUse
	for _, pf := range files {
		out = append(out, pf.IntentExtras...)
	}
	return out
}

func selectDetectors(codes map[model.Code]bool) []detectors.Detector {
	if codes == nil {
		return detectors.All()
	}
	var out []detectors.Detector
	for _, d := range detectors.All() {
		if codes[d.Code()] {
			out = append(out, d)
		}
	}
	return out
}

func loadCoverage(path string) (*coverage.Overlay, error) {
	if isLCOV(path) {
		return coverage.ParseLCOV(path)
	}
	return coverage.ParseJaCoCo(path)
}

func isLCOV(path string) bool {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[i+1:] == "info" || path[i+1:] == "lcov"
		}
		if path[i] == '/' {
			break
		}
	}
	return false
}

// poolLogger adapts utils.Logger to sourceparse.ProgressLogger.
type poolLogger struct {
	l *utils.Logger
}

func (p poolLogger) LogProgress(current, total int, file string) {
	p.l.Debugf("parsed %d/%d: %s", current, total, file)
}

func (p poolLogger) LogError(file string, err error) {
	p.l.Warnf("failed to parse %s: %v", file, err)
}
