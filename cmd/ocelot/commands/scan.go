package commands

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ocelotsec/ocelot"
	"github.com/ocelotsec/ocelot/internal/config"
	"github.com/ocelotsec/ocelot/internal/logging"
	"github.com/ocelotsec/ocelot/internal/output"
)

var (
	flagFailOn string
	flagCI     bool
	flagDebug  bool
	flagForce  bool
)

var scanCmd = &cobra.Command{
	Use:   "scan <path>...",
	Short: "Scan files or directories for security issues",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringVar(&flagFailOn, "fail-on", "", "Exit with code 1 if findings at or above this severity (critical, high, medium, low)")
	scanCmd.Flags().BoolVar(&flagCI, "ci", false, "CI mode: equivalent to --fail-on high --no-color")
	scanCmd.Flags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	scanCmd.Flags().BoolVar(&flagForce, "force", false, "Scan even when the pre-filter would skip the change set")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	log, err := logging.New(flagDebug)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	if flagCI {
		if flagFailOn == "" {
			flagFailOn = "high"
		}
		flagNoColor = true
	}

	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}
	applyConfig(cfg)

	minSev, err := ocelot.ParseSeverity(flagSeverity)
	if err != nil {
		return err
	}

	input, changed, err := collectInput(args, cfg.Ignore)
	if err != nil {
		return err
	}
	log.Debugw("collected input", "files", len(input.Files))

	if !flagForce && !ocelot.NeedsSecurityScan(changed) {
		log.Debug("pre-filter: documentation-only change set, skipping scan")
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to scan: documentation-only change set (use --force to override).")
		return nil
	}

	catalog, err := ocelot.NewCatalog(catalogOptions(cfg, minSev)...)
	if err != nil {
		return fmt.Errorf("loading rule catalog: %w", err)
	}
	log.Debugw("catalog compiled", "rules", catalog.Len())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	result, err := catalog.Scan(ctx, input)
	if err != nil {
		return err
	}

	if err := writeOutput(result); err != nil {
		return err
	}
	return checkFailOnThreshold(result)
}

// applyConfig lets .ocelot.yml supply defaults for flags the user left
// untouched.
func applyConfig(cfg config.Config) {
	if cfg.Severity != "" && flagSeverity == "info" {
		flagSeverity = cfg.Severity
	}
	if cfg.FailOn != "" && flagFailOn == "" {
		flagFailOn = cfg.FailOn
	}
	if cfg.Format != "" && flagFormat == "terminal" {
		flagFormat = cfg.Format
	}
	if cfg.Rules != "" && flagRules == "" {
		flagRules = cfg.Rules
	}
	if cfg.Workers > 0 && flagWorkers == 0 {
		flagWorkers = cfg.Workers
	}
}

func catalogOptions(cfg config.Config, minSev ocelot.Severity) []ocelot.Option {
	opts := []ocelot.Option{
		ocelot.WithMinSeverity(minSev),
		ocelot.WithWorkers(flagWorkers),
	}
	if flagRules != "" {
		opts = append(opts, ocelot.WithCustomRules(flagRules))
	}
	if len(flagDisableRules) > 0 {
		opts = append(opts, ocelot.WithDisabledRules(flagDisableRules...))
	}
	if len(cfg.RuleOverrides) > 0 {
		overrides := make(map[string]ocelot.RuleOverride, len(cfg.RuleOverrides))
		for id, ovr := range cfg.RuleOverrides {
			overrides[id] = ocelot.RuleOverride{Severity: ovr.Severity, Disabled: ovr.Disabled}
		}
		opts = append(opts, ocelot.WithRuleOverrides(overrides))
	}
	return opts
}

// collectInput reads the given files and directories into an in-memory
// ScanInput. This is the CLI acting as the content-fetching collaborator;
// the scanning core itself never touches the filesystem.
func collectInput(paths []string, ignore []string) (ocelot.ScanInput, []ocelot.ChangedFile, error) {
	input := ocelot.ScanInput{Files: map[string]ocelot.SourceFile{}}
	var changed []ocelot.ChangedFile

	add := func(rel, abs string) error {
		data, err := os.ReadFile(abs)
		if err != nil {
			return fmt.Errorf("reading %s: %w", abs, err)
		}
		rel = filepath.ToSlash(rel)
		input.Files[rel] = ocelot.SourceFile{Content: string(data)}
		changed = append(changed, ocelot.ChangedFile{Path: rel, Content: string(data)})
		return nil
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return input, nil, err
		}
		if !info.IsDir() {
			if err := add(filepath.Base(root), root); err != nil {
				return input, nil, err
			}
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil // skip inaccessible files
			}
			if d.IsDir() {
				base := d.Name()
				if base == ".git" || base == "node_modules" || base == "vendor" {
					return filepath.SkipDir
				}
				return nil
			}
			rel, _ := filepath.Rel(root, path)
			if ignored(rel, ignore) {
				return nil
			}
			return add(rel, path)
		})
		if err != nil {
			return input, nil, err
		}
	}
	return input, changed, nil
}

func ignored(rel string, patterns []string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, filepath.Base(rel)); ok {
			return true
		}
	}
	return false
}

func writeOutput(result *ocelot.ScanResult) error {
	formatter, err := output.ForName(strings.ToLower(flagFormat), flagNoColor)
	if err != nil {
		return err
	}

	w := os.Stdout
	if flagOutput != "" {
		f, err := os.Create(flagOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return formatter.Format(w, result)
}

func checkFailOnThreshold(result *ocelot.ScanResult) error {
	if flagFailOn == "" {
		return nil
	}
	threshold, err := ocelot.ParseSeverity(flagFailOn)
	if err != nil {
		return fmt.Errorf("invalid --fail-on value: %w", err)
	}
	for _, f := range result.Findings {
		if f.Severity >= threshold {
			return fmt.Errorf("findings at or above %s severity", threshold)
		}
	}
	return nil
}
