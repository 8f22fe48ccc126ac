package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rgehrsitz/cashplan/internal/aggregator"
	"github.com/rgehrsitz/cashplan/internal/breakeven"
	"github.com/rgehrsitz/cashplan/internal/compare"
	"github.com/rgehrsitz/cashplan/internal/config"
	"github.com/rgehrsitz/cashplan/internal/domain"
	"github.com/rgehrsitz/cashplan/internal/ingest"
	"github.com/rgehrsitz/cashplan/internal/output"
	"github.com/rgehrsitz/cashplan/internal/projection"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements projection.Logger using the standard log package
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

var rootCmd = &cobra.Command{
	Use:   "cashplan",
	Short: "Day-stepped personal cash-flow projection",
	Long:  "Projects checking and credit card balances day by day under a recurring rule set",
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "cashplan %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

// loadRules loads the rule set file and applies the --start and --snapshot
// flag overrides.
func loadRules(cmd *cobra.Command, inputFile string) (*domain.RuleSet, error) {
	parser := config.NewInputParser()
	rules, err := parser.LoadFromFile(inputFile)
	if err != nil {
		return nil, err
	}

	if startFlag, _ := cmd.Flags().GetString("start"); startFlag != "" {
		start, err := time.Parse("2006-01-02", startFlag)
		if err != nil {
			return nil, fmt.Errorf("invalid --start date %q: %w", startFlag, err)
		}
		rules.StartDate = &start
	}

	snapshotFlag, _ := cmd.Flags().GetString("snapshot")
	switch {
	case snapshotFlag == "":
	case strings.HasPrefix(snapshotFlag, "csv:"):
		snap, err := ingest.LoadSnapshotCSV(strings.TrimPrefix(snapshotFlag, "csv:"))
		if err != nil {
			return nil, err
		}
		rules.Seed(snap)
	case snapshotFlag == "plaid":
		cfg, err := aggregator.ConfigFromEnv()
		if err != nil {
			return nil, err
		}
		client := aggregator.NewClient(cfg)
		snap, err := client.FetchSnapshot(context.Background(), time.Now())
		if err != nil {
			return nil, err
		}
		rules.Seed(snap)
	default:
		return nil, fmt.Errorf("unknown snapshot source %q (want csv:FILE or plaid)", snapshotFlag)
	}

	return rules, nil
}

func newEngine(cmd *cobra.Command) *projection.Engine {
	engine := projection.NewEngine()
	engine.Today = time.Now()
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(simpleCLILogger{})
		engine.Debug = true
	}
	return engine
}

var projectCmd = &cobra.Command{
	Use:   "project [rules-file]",
	Short: "Project balances forward under the fixed payment strategy",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rules, err := loadRules(cmd, args[0])
		if err != nil {
			log.Fatal(err)
		}

		months, _ := cmd.Flags().GetInt("months")
		ledger := newEngine(cmd).Project(rules, months)

		outputFormat, _ := cmd.Flags().GetString("format")
		f := output.GetFormatterByName(outputFormat)
		if f == nil {
			log.Fatalf("unsupported format: %s", outputFormat)
		}
		data, err := f.Format(rules, ledger)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(string(data))
	},
}

var sustainCmd = &cobra.Command{
	Use:   "sustain [rules-file]",
	Short: "Project minimum statement payments until cash runs out",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rules, err := loadRules(cmd, args[0])
		if err != nil {
			log.Fatal(err)
		}

		maxMonths, _ := cmd.Flags().GetInt("max-months")
		ledger := newEngine(cmd).ProjectMinimumPayments(rules, maxMonths)

		outputFormat, _ := cmd.Flags().GetString("format")
		f := output.GetFormatterByName(outputFormat)
		if f == nil {
			log.Fatalf("unsupported format: %s", outputFormat)
		}
		data, err := f.Format(rules, ledger)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(string(data))

		if len(ledger) > 0 && ledger[len(ledger)-1].IsCheckingNegative() {
			fmt.Printf("\nMinimum payments run out of cash on %s (day %d)\n",
				ledger[len(ledger)-1].Date.Format("2006-01-02"), len(ledger))
		} else {
			fmt.Printf("\nMinimum payments are sustainable for the full %d month(s)\n", maxMonths)
		}
	},
}

var upcomingCmd = &cobra.Command{
	Use:   "upcoming [rules-file]",
	Short: "List upcoming paychecks, payments and bills",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rules, err := loadRules(cmd, args[0])
		if err != nil {
			log.Fatal(err)
		}

		days, _ := cmd.Flags().GetInt("days")
		months := days/28 + 1
		ledger := newEngine(cmd).Project(rules, months)
		events := output.UpcomingEvents(rules, ledger, days)

		if len(events) == 0 {
			fmt.Printf("Nothing due in the next %d days\n", days)
			return
		}
		fmt.Printf("UPCOMING (next %d days)\n", days)
		fmt.Println(strings.Repeat("-", 44))
		for _, ev := range events {
			fmt.Printf("%-12s %-20s %10s\n", ev.Date.Format("2006-01-02"), ev.Type, output.FormatCurrency(ev.Amount))
		}
	},
}

var chartCmd = &cobra.Command{
	Use:   "chart [rules-file]",
	Short: "Plot projected checking and card debt",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rules, err := loadRules(cmd, args[0])
		if err != nil {
			log.Fatal(err)
		}

		months, _ := cmd.Flags().GetInt("months")
		ledger := newEngine(cmd).Project(rules, months)
		fmt.Println(output.BalanceChart(ledger).Render())
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [rules-file]",
	Short: "Compare payment strategies side by side",
	Long: `Compare the configured payment strategy against built-in alternatives.

Examples:
  cashplan compare rules.yaml --with statement_payoff,conservative
  cashplan compare rules.yaml --with aggressive --months 6
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rules, err := loadRules(cmd, args[0])
		if err != nil {
			log.Fatal(err)
		}

		withFlag, _ := cmd.Flags().GetString("with")
		var strategies []string
		if withFlag != "" {
			strategies = strings.Split(withFlag, ",")
		}

		months, _ := cmd.Flags().GetInt("months")
		set, err := compare.NewCompareEngine(newEngine(cmd)).Compare(rules, months, strategies)
		if err != nil {
			log.Fatal(err)
		}

		tf := &compare.TableFormatter{}
		fmt.Print(tf.Format(set))
	},
}

var breakevenCmd = &cobra.Command{
	Use:   "breakeven [rules-file]",
	Short: "Find the largest sustainable monthly card payment",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rules, err := loadRules(cmd, args[0])
		if err != nil {
			log.Fatal(err)
		}

		months, _ := cmd.Flags().GetInt("months")
		result := breakeven.NewDefaultSolver(newEngine(cmd)).Solve(rules, months)

		fmt.Println("SUSTAINABLE PAYMENT ANALYSIS")
		fmt.Println(strings.Repeat("=", 40))
		if !result.Sustainable {
			fmt.Println("Checking goes negative even with no card payments.")
			return
		}
		fmt.Printf("Max payment per card:  %s/month\n", output.FormatCurrency(result.Payment))
		fmt.Printf("Final checking:        %s\n", output.FormatCurrency(result.FinalChecking))
		fmt.Printf("Final card debt:       %s\n", output.FormatCurrency(result.FinalCardDebt))
		fmt.Printf("Search iterations:     %d\n", result.Iterations)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [rules-file]",
	Short: "Validate a rule set file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parser := config.NewInputParser()
		if _, err := parser.LoadFromFile(args[0]); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Rule set %s is valid\n", args[0])
	},
}

func main() {
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("start", "", "projection start date (YYYY-MM-DD, default today)")
	rootCmd.PersistentFlags().String("snapshot", "", "starting balances source: csv:FILE or plaid")

	projectCmd.Flags().Int("months", 4, "projection horizon in months")
	projectCmd.Flags().String("format", "console", "output format: console, csv, json")
	sustainCmd.Flags().Int("max-months", 12, "maximum horizon in months")
	sustainCmd.Flags().String("format", "console", "output format: console, csv, json")
	upcomingCmd.Flags().Int("days", 14, "window in days")
	chartCmd.Flags().Int("months", 4, "projection horizon in months")
	compareCmd.Flags().Int("months", 4, "projection horizon in months")
	compareCmd.Flags().String("with", "", "comma-separated strategy names")
	breakevenCmd.Flags().Int("months", 6, "projection horizon in months")

	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(sustainCmd)
	rootCmd.AddCommand(upcomingCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(breakevenCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
