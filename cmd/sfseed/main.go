package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mmrzaf/sfseed/internal/app"
	"github.com/mmrzaf/sfseed/internal/config"
	"github.com/mmrzaf/sfseed/internal/domain"
	"github.com/mmrzaf/sfseed/internal/export"
	"github.com/mmrzaf/sfseed/internal/infra/repos/runs"
	"github.com/mmrzaf/sfseed/internal/logging"
	"github.com/mmrzaf/sfseed/internal/output"
	"github.com/mmrzaf/sfseed/internal/profile"
	"github.com/mmrzaf/sfseed/internal/registry"
	"github.com/mmrzaf/sfseed/internal/schema"
	"github.com/mmrzaf/sfseed/internal/sfcli"
	"github.com/mmrzaf/sfseed/internal/validation"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	profilesDir string
	resultsDir  string
	runsDBPath  string
	logLevel    string
	sfBin       string
	org         string
)

func main() {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "sfseed",
		Short: "Schema-driven Salesforce test data seeder",
	}

	rootCmd.PersistentFlags().StringVar(&profilesDir, "profiles-dir", cfg.ProfilesDir, "Profiles directory")
	rootCmd.PersistentFlags().StringVar(&resultsDir, "results-dir", cfg.ResultsDir, "Results directory")
	rootCmd.PersistentFlags().StringVar(&runsDBPath, "runs-db", cfg.RunsDBPath, "Runs database path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level")
	rootCmd.PersistentFlags().StringVar(&sfBin, "sf-bin", cfg.SFBin, "Salesforce CLI binary")
	rootCmd.PersistentFlags().StringVarP(&org, "org", "o", cfg.DefaultOrg, "Target org alias")

	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(profileCmd())
	rootCmd.AddCommand(runsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadProfileArg(repo *profile.FileRepository, ref string) (*domain.Profile, error) {
	if strings.Contains(ref, "/") || strings.HasSuffix(ref, ".yaml") || strings.HasSuffix(ref, ".yml") || strings.HasSuffix(ref, ".json") {
		return repo.GetByPath(ref)
	}
	return repo.Get(ref)
}

func seedCmd() *cobra.Command {
	var (
		object       string
		profileRef   string
		describePath string
		lineEnding   string
		waitMinutes  int
		skipImport   bool
		sqliteDB     string
		seed         int64
		hasSeed      bool
		rows         int
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Describe an object, generate data, and bulk import it",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewLogger(logLevel).WithComponent("seed")

			profileRepo := profile.NewFileRepository(profilesDir)
			prof, err := loadProfileArg(profileRepo, profileRef)
			if err != nil {
				return err
			}
			if hasSeed {
				prof.Seed = &seed
			}
			if cmd.Flags().Changed("rows") {
				prof.Rows = rows
			}

			runRepo := runs.NewSQLiteRepository(runsDBPath)
			if err := runRepo.Init(); err != nil {
				return err
			}
			defer runRepo.Close()

			client := sfcli.NewClient(sfBin, org)
			layout := output.NewLayout(resultsDir)
			svc := app.NewSeedService(client, registry.DefaultGeneratorRegistry(), runRepo, layout, logger)

			run, err := svc.Seed(context.Background(), &app.SeedRequest{
				Object:       object,
				Profile:      prof,
				DescribePath: describePath,
				LineEnding:   lineEnding,
				WaitMinutes:  waitMinutes,
				SkipImport:   skipImport,
				SQLiteDB:     sqliteDB,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Run completed: %s\n", run.ID)
			fmt.Printf("CSV: %s\n", run.CSVPath)
			if run.JobID != "" {
				fmt.Printf("Bulk job: %s\n", run.JobID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&object, "object", "", "Object API name (defaults to the profile's object)")
	cmd.Flags().StringVarP(&profileRef, "profile", "p", "", "Profile ID or file path")
	cmd.Flags().StringVar(&describePath, "describe", "", "Use a local describe JSON instead of querying the org")
	cmd.Flags().StringVar(&lineEnding, "line-ending", output.LineEndingLF, "CSV line ending (LF|CRLF)")
	cmd.Flags().IntVar(&waitMinutes, "wait", 10, "Minutes to wait for the bulk job")
	cmd.Flags().BoolVar(&skipImport, "skip-import", false, "Generate the CSV without importing")
	cmd.Flags().StringVar(&sqliteDB, "sqlite", "", "Also load rows into this SQLite database")
	cmd.Flags().Int64VarP(&seed, "seed", "s", 0, "Seed for RNG")
	cmd.Flags().IntVar(&rows, "rows", 0, "Override the profile's row count")
	cmd.MarkFlagRequired("profile")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		hasSeed = cmd.Flags().Changed("seed")
	}
	return cmd
}

func generateCmd() *cobra.Command {
	var (
		profileRef string
		outPath    string
		lineEnding string
		seed       int64
		hasSeed    bool
	)

	cmd := &cobra.Command{
		Use:   "generate <describe.json>",
		Short: "Generate a CSV from a saved describe, no org access",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var meta domain.DescribeMetadata
			if err := json.Unmarshal(raw, &meta); err != nil {
				return fmt.Errorf("parse describe %s: %w", args[0], err)
			}

			profileRepo := profile.NewFileRepository(profilesDir)
			prof, err := loadProfileArg(profileRepo, profileRef)
			if err != nil {
				return err
			}
			if err := validation.ValidateProfile(prof); err != nil {
				return err
			}
			if hasSeed {
				prof.Seed = &seed
			}

			rules := schema.DefaultRules()
			rules.Extend(prof.PersonOnlyFields, prof.BusinessOnly)
			sc, err := schema.Parse(&meta, rules)
			if err != nil {
				return err
			}

			var sink *output.CSVSink
			if outPath == "" || outPath == "-" {
				sink, err = output.NewCSVSink(os.Stdout, lineEnding)
			} else {
				sink, err = output.NewCSVFileSink(outPath, lineEnding)
			}
			if err != nil {
				return err
			}

			resolved := app.ResolveSeed(prof)
			n, genErr := app.Generate(sc, prof, resolved, registry.DefaultGeneratorRegistry(), sink)
			if cerr := sink.Close(); genErr == nil {
				genErr = cerr
			}
			if genErr != nil {
				if outPath != "" && outPath != "-" {
					os.Remove(outPath)
				}
				return genErr
			}
			if outPath != "" && outPath != "-" {
				fmt.Printf("Wrote %d rows to %s (seed %d)\n", n, outPath, resolved)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&profileRef, "profile", "p", "", "Profile ID or file path")
	cmd.Flags().StringVar(&outPath, "out", "", "Output CSV path (default stdout)")
	cmd.Flags().StringVar(&lineEnding, "line-ending", output.LineEndingLF, "CSV line ending (LF|CRLF)")
	cmd.Flags().Int64VarP(&seed, "seed", "s", 0, "Seed for RNG")
	cmd.MarkFlagRequired("profile")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		hasSeed = cmd.Flags().Changed("seed")
	}
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export describe metadata into review formats",
	}

	var outPath string

	openOut := func() (*os.File, func(), error) {
		if outPath == "" || outPath == "-" {
			return os.Stdout, func() {}, nil
		}
		f, err := os.Create(outPath)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { f.Close() }, nil
	}

	fieldsCmd := &cobra.Command{
		Use:   "fields <describe.json>",
		Short: "Field list as CSV, one row per field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			out, done, err := openOut()
			if err != nil {
				return err
			}
			defer done()
			return export.WriteFieldsCSV(raw, out)
		},
	}

	var labelsPath string
	propsCmd := &cobra.Command{
		Use:   "properties <describe.json>",
		Short: "Field properties as a transposed CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var labels []byte
			if labelsPath != "" {
				labels, err = os.ReadFile(labelsPath)
				if err != nil {
					return err
				}
			}
			out, done, err := openOut()
			if err != nil {
				return err
			}
			defer done()
			return export.WriteFieldPropertiesCSV(raw, labels, out)
		},
	}
	propsCmd.Flags().StringVar(&labelsPath, "labels", "", "JSON file translating property names")

	recordTypesCmd := &cobra.Command{
		Use:   "recordtypes <describe.json>",
		Short: "Record type infos as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			out, done, err := openOut()
			if err != nil {
				return err
			}
			defer done()
			return export.WriteRecordTypesCSV(raw, out)
		},
	}

	markdownCmd := &cobra.Command{
		Use:   "markdown <describe.json>",
		Short: "Whole describe as readable Markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			out, done, err := openOut()
			if err != nil {
				return err
			}
			defer done()
			return export.WriteMarkdown(raw, out)
		},
	}

	cmd.PersistentFlags().StringVar(&outPath, "out", "", "Output path (default stdout)")
	cmd.AddCommand(fieldsCmd, propsCmd, recordTypesCmd, markdownCmd)
	return cmd
}

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage generation profiles",
	}

	var format string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo := profile.NewFileRepository(profilesDir)
			list, err := repo.List()
			if err != nil {
				return err
			}

			if format == "json" {
				data, _ := json.MarshalIndent(list, "", "  ")
				fmt.Println(string(data))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tOBJECT\tROWS\tPERSON_RT\tSKIPPED")
			for _, p := range list {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\n", p.ID, p.Object, p.Rows, p.PersonRecordType, len(p.SkipFields))
			}
			w.Flush()
			return nil
		},
	}
	listCmd.Flags().StringVar(&format, "format", "table", "Output format (table|json)")

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show profile details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo := profile.NewFileRepository(profilesDir)
			p, err := repo.Get(args[0])
			if err != nil {
				return err
			}

			data, _ := yaml.Marshal(p)
			fmt.Println(string(data))
			return nil
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate <id|path>",
		Short: "Validate a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo := profile.NewFileRepository(profilesDir)
			p, err := loadProfileArg(repo, args[0])
			if err != nil {
				return err
			}

			if err := validation.ValidateProfile(p); err != nil {
				fmt.Printf("Validation failed: %v\n", err)
				return err
			}

			fmt.Printf("Profile '%s' is valid\n", p.ID)
			return nil
		},
	}

	cmd.AddCommand(listCmd, showCmd, validateCmd)
	return cmd
}

func runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect run history",
	}

	var limit int
	var status string
	var format string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			runRepo := runs.NewSQLiteRepository(runsDBPath)
			if err := runRepo.Init(); err != nil {
				return err
			}
			defer runRepo.Close()

			list, err := runRepo.List(limit, status)
			if err != nil {
				return err
			}

			if format == "json" {
				data, _ := json.MarshalIndent(list, "", "  ")
				fmt.Println(string(data))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tOBJECT\tROWS\tSTATUS\tSTARTED")
			for _, r := range list {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
					r.ID[:8], r.Object, r.Rows, r.Status, r.StartedAt.Format("2006-01-02 15:04"))
			}
			w.Flush()
			return nil
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 20, "Limit results")
	listCmd.Flags().StringVar(&status, "status", "", "Filter by status")
	listCmd.Flags().StringVar(&format, "format", "table", "Output format (table|json)")

	showCmd := &cobra.Command{
		Use:   "show <run_id>",
		Short: "Show run details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runRepo := runs.NewSQLiteRepository(runsDBPath)
			if err := runRepo.Init(); err != nil {
				return err
			}
			defer runRepo.Close()

			run, err := runRepo.Get(args[0])
			if err != nil {
				return err
			}

			data, _ := yaml.Marshal(run)
			fmt.Println(string(data))
			return nil
		},
	}

	cmd.AddCommand(listCmd, showCmd)
	return cmd
}
