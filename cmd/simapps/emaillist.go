package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sim-tools/simapps/internal/directory"
	"github.com/sim-tools/simapps/internal/filters"
	"github.com/sim-tools/simapps/internal/pipelines"

	// directory backends register themselves
	_ "github.com/sim-tools/simapps/internal/directory/gsuite"
	_ "github.com/sim-tools/simapps/internal/directory/sim"
)

var emailListFlags struct {
	service string
	backend string

	projectGroupsOnly        bool
	withAiC                  bool
	withAiHMcml              bool
	withAiCButWithoutAiHMcml bool
	onlyAiC                  bool

	dedup        string
	institution  string
	domainHint   string
	output       string
	csvPath      string
	emitStdout   bool
	dryRun       bool
	minimalRun   bool
	uniqueEmails bool
	debugDir     string
}

var emailListCmd = &cobra.Command{
	Use:   "email-list",
	Short: "Generate email lists for directory groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		strategy, err := filters.ParseDedupStrategy(emailListFlags.dedup)
		if err != nil {
			return err
		}

		backend := emailListFlags.backend
		if len(backend) == 0 {
			backend = cfg.Directory.Backend
		}

		client, err := directory.New(backend, cfg)
		if err != nil {
			return fmt.Errorf("failed to create directory client: %w", err)
		}
		defer client.Close()

		pipeline, err := pipelines.NewEmailListPipeline(client, pipelines.EmailListOptions{
			Service:       emailListFlags.service,
			GroupFilters:  buildGroupFilters(),
			DedupStrategy: strategy,
			Institution:   emailListFlags.institution,
			DomainHint:    emailListFlags.domainHint,
			OutputPath:    emailListFlags.output,
			CSVPath:       emailListFlags.csvPath,
			EmitStdout:    emailListFlags.emitStdout,
			MinimalRun:    emailListFlags.minimalRun,
			UniqueEmails:  emailListFlags.uniqueEmails,
			DryRun:        emailListFlags.dryRun,
			DebugDir:      emailListFlags.debugDir,
		})
		if err != nil {
			return err
		}

		result, err := pipeline.Run(cmd.Context())
		if err != nil {
			return err
		}

		printSummary(result, emailListFlags.dryRun)
		if len(result.StdoutOutput) > 0 {
			fmt.Println(result.StdoutOutput)
		}
		return nil
	},
}

// buildGroupFilters appends the requested filters in a fixed order: project
// narrowing first, companion checks next, suffix selection last.
func buildGroupFilters() []filters.GroupFilter {
	var groupFilters []filters.GroupFilter
	if emailListFlags.projectGroupsOnly {
		groupFilters = append(groupFilters, filters.OnlyProjectGroups())
	}
	if emailListFlags.withAiC {
		groupFilters = append(groupFilters, filters.WithAiCCompanion())
	}
	if emailListFlags.withAiHMcml {
		groupFilters = append(groupFilters, filters.WithAiHMcmlCompanion())
	}
	if emailListFlags.withAiCButWithoutAiHMcml {
		groupFilters = append(groupFilters, filters.WithAiCButWithoutAiHMcml())
	}
	if emailListFlags.onlyAiC {
		groupFilters = append(groupFilters, filters.OnlyAiCGroups())
	}
	return groupFilters
}

func printSummary(result *pipelines.Result, dryRun bool) {
	if dryRun {
		fmt.Println("Dry run preview:")
	} else {
		fmt.Println("Result summary:")
	}
	fmt.Printf("  Groups before filters: %d\n", result.Preview.GroupsBefore)
	fmt.Printf("  Groups processed: %d\n", result.Preview.GroupsProcessed)
	fmt.Printf("  Groups after filters: %d\n", result.Preview.GroupsAfter)
	fmt.Printf("  Unique members: %d\n", result.Preview.UniqueMembers)
	if len(result.Preview.Sample) > 0 {
		fmt.Println("  Sample emails:")
		for _, row := range result.Preview.Sample {
			fmt.Printf("    %s -> %s (%s)\n", row.PersonID, row.ChosenEmail, row.Reason)
		}
	}
}

func init() {
	emailListCmd.Flags().StringVar(&emailListFlags.service, "service", "", "Directory service name")
	emailListCmd.Flags().StringVar(&emailListFlags.backend, "backend", "", "Directory backend (default from config)")
	emailListCmd.Flags().BoolVar(&emailListFlags.projectGroupsOnly, "project-groups-only", false, "Keep only base project groups")
	emailListCmd.Flags().BoolVar(&emailListFlags.withAiC, "with-ai-c", false, "Keep project groups with an -ai-c companion")
	emailListCmd.Flags().BoolVar(&emailListFlags.withAiHMcml, "with-ai-h-mcml", false, "Keep project groups with an -ai-h-mcml companion")
	emailListCmd.Flags().BoolVar(&emailListFlags.withAiCButWithoutAiHMcml, "with-ai-c-but-without-ai-h-mcml", false, "Keep project groups with -ai-c but without -ai-h-mcml")
	emailListCmd.Flags().BoolVar(&emailListFlags.onlyAiC, "only-ai-c", false, "Keep only -ai-c functional groups")
	emailListCmd.Flags().StringVar(&emailListFlags.dedup, "dedup", "by-id", "Deduplication strategy (none, by-id, by-primary-email, by-best-email)")
	emailListCmd.Flags().StringVar(&emailListFlags.institution, "institution", "", "Institution hint for domain affinity")
	emailListCmd.Flags().StringVar(&emailListFlags.domainHint, "domain-hint", "", "Preferred email domain")
	emailListCmd.Flags().StringVar(&emailListFlags.output, "output", "", "Write email list to file")
	emailListCmd.Flags().StringVar(&emailListFlags.csvPath, "csv", "", "Write detailed CSV")
	emailListCmd.Flags().BoolVar(&emailListFlags.emitStdout, "stdout", false, "Print result to stdout")
	emailListCmd.Flags().BoolVar(&emailListFlags.dryRun, "dry-run", false, "Run without writing files")
	emailListCmd.Flags().BoolVar(&emailListFlags.minimalRun, "minimal-run", false, "Process only a small subset for debugging")
	emailListCmd.Flags().BoolVar(&emailListFlags.uniqueEmails, "unique-emails", false, "Ensure the final email list contains unique addresses")
	emailListCmd.Flags().StringVar(&emailListFlags.debugDir, "debug-intermediate", "", "Directory to store intermediate JSON snapshots")
	emailListCmd.MarkFlagRequired("service")

	rootCmd.AddCommand(emailListCmd)
}
