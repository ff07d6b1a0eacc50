package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dcec/internal/bridge"
	"dcec/internal/config"
	"dcec/internal/logging"
	"dcec/internal/logic"
	"dcec/internal/problem"
	"dcec/internal/prover"
	"dcec/internal/rules"
)

const version = "1.0.0"

var (
	// Global flags
	verbose    bool
	cfgPath    string
	timeout    time.Duration
	outputMode string

	// Per-command flags
	strategyFlag  string
	backendFlag   string
	translateForm string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dcec",
	Short: "dcec - Deontic Cognitive Event Calculus reasoner",
	Long: `dcec proves goals in a sorted modal logic with deontic, cognitive and
temporal operators.

Problems are YAML files: symbol declarations, labeled axioms and a goal,
with formulas in parenthesized prefix form. Proving runs through a registry
of backends: the native rule engine, a SAT abstraction, a Datalog engine for
the Horn fragment, and external first-order provers when installed.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err = logging.New(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		zap.ReplaceGlobals(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// proveCmd proves the goal of a problem file
var proveCmd = &cobra.Command{
	Use:   "prove [problem.yaml]",
	Short: "Prove the goal of a problem file from its axioms",
	Long: `Loads a problem file and asks the prover manager to establish its goal.

The strategy comes from the --strategy flag, then the problem file, then the
configuration. --backend restricts the registry to a single named backend.

Examples:
  dcec prove examples/billing.yaml
  dcec prove --strategy parallel examples/billing.yaml
  dcec prove --backend smt --output json examples/billing.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runProve,
}

// satCmd checks satisfiability of a problem's formulas
var satCmd = &cobra.Command{
	Use:   "sat [problem.yaml]",
	Short: "Check satisfiability of a problem's axioms and goal together",
	Long: `Conjoins the problem's axioms with its goal and asks the best-suited
backend whether the result is satisfiable. A counterexample assignment is
printed when the backend produced one.

Example:
  dcec sat examples/norms.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runSat,
}

// rulesCmd lists the inference rule catalogue
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the inference rule catalogue by family",
	RunE:  listRules,
}

// backendsCmd reports backend availability
var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "Report which proof backends are available",
	Long: `Builds the backend registry from the configuration and reports which
entries are usable. External provers are unavailable when their binary is
not on PATH; set atp.eprover_path / atp.vampire_path or the DCEC_EPROVER /
DCEC_VAMPIRE environment variables to point at an installation.`,
	RunE: showBackends,
}

// translateCmd renders a problem in a solver input format
var translateCmd = &cobra.Command{
	Use:   "translate [problem.yaml]",
	Short: "Render a problem as TPTP or SMT-LIB text",
	Long: `Renders the problem the way the external bridges would see it, without
invoking any solver. Useful for debugging translations and for feeding the
problem to a prover by hand.

Examples:
  dcec translate examples/billing.yaml
  dcec translate --format smt examples/billing.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

// versionCmd prints the version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the dcec version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dcec %s\n", version)
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "dcec.yaml", "Configuration file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Operation timeout")
	rootCmd.PersistentFlags().StringVarP(&outputMode, "output", "o", "text", "Output format: text, json")

	proveCmd.Flags().StringVarP(&strategyFlag, "strategy", "s", "", "Proof strategy: auto, best, sequential, parallel")
	proveCmd.Flags().StringVar(&backendFlag, "backend", "", "Restrict to a single backend")
	satCmd.Flags().StringVar(&backendFlag, "backend", "", "Restrict to a single backend")
	translateCmd.Flags().StringVar(&translateForm, "format", "tptp", "Target format: tptp, smt")

	rootCmd.AddCommand(proveCmd)
	rootCmd.AddCommand(satCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(backendsCmd)
	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadCompiled reads and compiles the problem file named by the argument.
func loadCompiled(path string) (*problem.Problem, *problem.Compiled, error) {
	p, err := problem.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	c, err := p.Compile()
	if err != nil {
		return nil, nil, fmt.Errorf("compile problem %s: %w", path, err)
	}
	return p, c, nil
}

// newManager builds the prover manager from the configuration, honoring a
// --backend restriction.
func newManager() *prover.Manager {
	backends := cfg.Prover.Backends
	if backendFlag != "" {
		backends = []string{backendFlag}
	}
	return prover.NewManager(prover.Config{
		Backends:             backends,
		Timeout:              cfg.GetProofTimeout(),
		MaxParallel:          cfg.Prover.MaxParallel,
		MaxSteps:             cfg.Prover.MaxSteps,
		EProverPath:          cfg.ATP.EProverPath,
		VampirePath:          cfg.ATP.VampirePath,
		DisableSMTPreference: cfg.Prover.DisableSMTPreference,
		Logger:               logger,
	})
}

// commandContext bounds the call and cancels it on SIGINT/SIGTERM.
func commandContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal")
		cancel()
	}()

	return ctx, cancel
}

func runProve(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	p, c, err := loadCompiled(args[0])
	if err != nil {
		return err
	}

	strategy := strategyFlag
	if strategy == "" {
		strategy = p.Strategy
	}
	if strategy == "" {
		strategy = cfg.Prover.Strategy
	}

	logger.Info("proving goal",
		zap.String("problem", p.Name),
		zap.String("goal", logic.Key(c.Goal)),
		zap.String("strategy", strategy))

	m := newManager()
	res := m.Prove(ctx, c.Goal, logic.Formulas(c.Axioms), prover.Strategy(strategy))

	if outputMode == "json" {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	} else {
		printProveResult(p.Name, res)
	}

	if res.Status == bridge.StatusError && res.Err != nil {
		return res.Err
	}
	return nil
}

func printProveResult(name string, res prover.UnifiedResult) {
	fmt.Printf("Problem:    %s\n", name)
	fmt.Printf("Goal:       %s\n", res.Goal)
	fmt.Printf("Status:     %s\n", res.Status)
	fmt.Printf("Valid:      %v\n", res.IsValid)
	if res.IsValid {
		fmt.Printf("Confidence: %.2f\n", res.Confidence)
	}
	if res.Backend != "" {
		fmt.Printf("Backend:    %s\n", res.Backend)
	}
	fmt.Printf("Strategy:   %s\n", res.Strategy)
	fmt.Printf("Elapsed:    %s\n", res.Elapsed)

	for _, a := range res.Attempts {
		if a.Backend == res.Backend && a.Result.Output != "" {
			fmt.Printf("\n%s\n", strings.TrimRight(a.Result.Output, "\n"))
			break
		}
	}
}

func runSat(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	p, c, err := loadCompiled(args[0])
	if err != nil {
		return err
	}

	fs := append(logic.Formulas(c.Axioms), c.Goal)
	f := fs[0]
	if len(fs) > 1 {
		f = logic.And(fs...)
	}

	m := newManager()
	backend, res, err := m.CheckSat(ctx, f)
	if err != nil {
		return err
	}

	if outputMode == "json" {
		data, err := json.MarshalIndent(struct {
			Problem string        `json:"problem"`
			Formula string        `json:"formula"`
			Backend string        `json:"backend"`
			Result  bridge.Result `json:"result"`
		}{p.Name, logic.Key(f), backend, res}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Problem:    %s\n", p.Name)
	fmt.Printf("Formula:    %s\n", logic.Key(f))
	fmt.Printf("Status:     %s\n", res.Status)
	fmt.Printf("Backend:    %s\n", backend)
	fmt.Printf("Elapsed:    %s\n", res.Elapsed)
	if len(res.Model) > 0 {
		fmt.Printf("Model:      %s\n", formatModel(res.Model))
	}
	if res.Err != nil {
		return res.Err
	}
	return nil
}

func formatModel(model map[string]bool) string {
	names := make([]string, 0, len(model))
	for name := range model {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%v", name, model[name])
	}
	return strings.Join(parts, " ")
}

func listRules(cmd *cobra.Command, args []string) error {
	for _, fam := range rules.Families() {
		fmt.Printf("%s (%d rules)\n", fam.Name, len(fam.Rules))
		for _, r := range fam.Rules {
			fmt.Printf("  %s\n", r.Name())
		}
	}
	return nil
}

func showBackends(cmd *cobra.Command, args []string) error {
	m := newManager()

	available := map[string]bool{}
	for _, name := range m.Backends() {
		available[name] = true
	}

	for _, name := range cfg.Prover.Backends {
		state := "unavailable"
		if available[name] {
			state = "available"
		}
		fmt.Printf("%-10s %s\n", name, state)
	}
	return nil
}

func runTranslate(cmd *cobra.Command, args []string) error {
	p, c, err := loadCompiled(args[0])
	if err != nil {
		return err
	}

	axioms := logic.Formulas(c.Axioms)
	switch translateForm {
	case "tptp":
		fmt.Print(bridge.WriteTPTP(p.Name, c.Goal, axioms))
	case "smt", "smtlib":
		fmt.Print(bridge.WriteSMTLIB(p.Name, c.Goal, axioms))
	default:
		return fmt.Errorf("unknown format %q (valid: tptp, smt)", translateForm)
	}
	return nil
}
