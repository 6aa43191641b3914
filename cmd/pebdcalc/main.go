package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rgehrsitz/pebdcalc/internal/calculation"
	"github.com/rgehrsitz/pebdcalc/internal/compare"
	"github.com/rgehrsitz/pebdcalc/internal/config"
	"github.com/rgehrsitz/pebdcalc/internal/domain"
	"github.com/rgehrsitz/pebdcalc/internal/output"
	"github.com/rgehrsitz/pebdcalc/internal/transform"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pebdcalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pebdcalc",
		Short: "Military service baseline date calculator",
		Long: `Computes the Pay Entry Base Date, Basic Active Service Date and Active Federal
Active Duty Base Date, creditable service totals and reserve retirement points
from a member's dated service periods, under a named regulatory rule set.`,
		SilenceUsage: true,
	}

	root.AddCommand(calculateCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(compareCmd())
	root.AddCommand(presetsCmd())
	root.AddCommand(transformsCmd())
	root.AddCommand(exampleCmd())
	root.AddCommand(versionCmd())
	return root
}

// loadInput parses an input document and resolves its rule set, honoring a
// --rule-set override and any --transform specs.
func loadInput(cmd *cobra.Command, inputFile string) (*domain.ComputationInput, domain.RuleConfiguration, error) {
	parser := config.NewInputParser()
	doc, err := parser.LoadFromFile(inputFile)
	if err != nil {
		return nil, domain.RuleConfiguration{}, err
	}

	if ruleSet, _ := cmd.Flags().GetString("rule-set"); ruleSet != "" {
		doc.RuleSet = ruleSet
	}
	rules, err := parser.ResolveRules(doc)
	if err != nil {
		return nil, rules, err
	}

	input, err := parser.BuildInput(doc)
	if err != nil {
		return nil, rules, err
	}
	return input, rules, nil
}

func parseTransforms(cmd *cobra.Command) ([]transform.InputTransform, error) {
	specs, _ := cmd.Flags().GetStringArray("transform")
	if len(specs) == 0 {
		return nil, nil
	}
	return transform.NewTransformRegistry().ParseTransformSpecs(specs)
}

func newEngine(cmd *cobra.Command) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(simpleCLILogger{})
	}
	return engine
}

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Calculate baseline dates, service totals and retirement points",
		Long: `Calculate baseline dates, service totals and retirement points for one input document.

Examples:
  pebdcalc calculate member.yaml
  pebdcalc calculate member.yaml --rule-set dodfmr-vol7a --format yaml
  pebdcalc calculate member.yaml --transform reenlist_after_eos:days=1 --transform drop_kind:kind=lost_time
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, rules, err := loadInput(cmd, args[0])
			if err != nil {
				return err
			}

			transforms, err := parseTransforms(cmd)
			if err != nil {
				return err
			}
			input, err = transform.ApplyTransforms(input, transforms)
			if err != nil {
				return err
			}

			result, err := newEngine(cmd).Compute(input, rules)
			if err != nil {
				return err
			}

			outputFormat, _ := cmd.Flags().GetString("format")
			f := output.GetFormatterByName(outputFormat)
			if f == nil {
				return fmt.Errorf("unknown output format: %s (valid: %s)", outputFormat,
					strings.Join(output.AvailableFormatterNames(), ", "))
			}

			if save, _ := cmd.Flags().GetBool("save"); save {
				filename, err := output.WriteFormatted(f, result, fileExtension(f.Name()))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
				return nil
			}

			data, err := f.Format(result)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringP("format", "f", "json", "Output format (json, json-compact, yaml, csv, periods-csv)")
	cmd.Flags().String("rule-set", "", "Rule set preset, overriding the document's rule_set")
	cmd.Flags().StringArray("transform", nil, "What-if transform 'name:key=value,...' (repeatable)")
	cmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	return cmd
}

func fileExtension(formatter string) string {
	switch formatter {
	case "yaml":
		return "yaml"
	case "csv", "periods-csv":
		return "csv"
	default:
		return "json"
	}
}

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate an input document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, rules, err := loadInput(cmd, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Input file %s is valid (rule set %s, %d periods)\n",
				args[0], rules.Name, input.Registry.Len())
			return nil
		},
	}
	cmd.Flags().String("rule-set", "", "Rule set preset, overriding the document's rule_set")
	return cmd
}

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare results across rule set presets and what-if templates",
		Long: `Compare the document's rule set against other presets and what-if templates.

Examples:
  pebdcalc compare member.yaml                       # against every other preset
  pebdcalc compare member.yaml --presets afadbd-v1.0,dodfmr-vol7a
  pebdcalc compare member.yaml --presets none --with reenlist_next_day,no_lost_time --format csv
  pebdcalc compare --list-templates
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if listTemplates, _ := cmd.Flags().GetBool("list-templates"); listTemplates {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("input file required for comparison (use --list-templates to see available templates)")
			}

			input, rules, err := loadInput(cmd, args[0])
			if err != nil {
				return err
			}
			transforms, err := parseTransforms(cmd)
			if err != nil {
				return err
			}

			presets, _ := cmd.Flags().GetStringSlice("presets")
			templatesStr, _ := cmd.Flags().GetString("with")

			compareEngine := compare.NewCompareEngine(newEngine(cmd))
			comparisonSet, err := compareEngine.Compare(context.Background(), input, compare.CompareOptions{
				BaseRules:  rules,
				Presets:    alternativePresets(presets, rules.Name),
				Templates:  transform.ParseTemplateList(templatesStr),
				Transforms: transforms,
			})
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			comparisonSet.InputPath = args[0]

			outputFormat, _ := cmd.Flags().GetString("format")
			var out string
			switch strings.ToLower(outputFormat) {
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(comparisonSet)
			case "json", "":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(comparisonSet)
			default:
				return fmt.Errorf("unknown output format: %s (valid: json, csv)", outputFormat)
			}
			if err != nil {
				return fmt.Errorf("failed to format comparison: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringSlice("presets", nil, "Presets to compare against (default: all other presets; 'none' for templates only)")
	cmd.Flags().String("with", "", "Comma-separated list of what-if templates to compare")
	cmd.Flags().String("rule-set", "", "Base rule set preset, overriding the document's rule_set")
	cmd.Flags().StringArray("transform", nil, "What-if transform applied to every run (repeatable)")
	cmd.Flags().StringP("format", "f", "json", "Output format (json, csv)")
	cmd.Flags().Bool("list-templates", false, "List all available what-if templates")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	return cmd
}

// alternativePresets expands the --presets flag: empty means every preset
// other than the base, "none" means no preset alternatives.
func alternativePresets(requested []string, base string) []string {
	if len(requested) == 1 && strings.EqualFold(requested[0], "none") {
		return nil
	}
	if len(requested) > 0 {
		return requested
	}
	base = strings.TrimSuffix(base, "+overrides")
	var names []string
	for _, name := range config.PresetNames() {
		if !strings.EqualFold(name, base) {
			names = append(names, name)
		}
	}
	return names
}

func presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [name]",
		Short: "List rule set presets, or show one as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				rules, err := config.Preset(args[0])
				if err != nil {
					return err
				}
				return writeYAML(cmd.OutOrStdout(), rules)
			}

			for _, p := range config.Presets() {
				marker := " "
				if p.Name == config.DefaultPreset {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-18s %s\n", marker, p.Name, p.Description)
			}
			return nil
		},
	}
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func transformsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transforms",
		Short: "List what-if transforms usable with --transform",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Available Transforms:")
			for _, name := range transform.NewTransformRegistry().List() {
				fmt.Fprintf(w, "  %s\n", name)
			}
			fmt.Fprintln(w)
			fmt.Fprint(w, transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
		},
	}
}

func exampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write a sample input document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFile, _ := cmd.Flags().GetString("output")
			if outputFile == "" {
				return config.WriteExample(cmd.OutOrStdout())
			}

			f, err := os.Create(outputFile)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := config.WriteExample(f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example input written to %s\n", outputFile)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
	return cmd
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
