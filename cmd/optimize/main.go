package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cv-optimizer-backend/internal/optimize"
	"cv-optimizer-backend/internal/shared/config"
	"cv-optimizer-backend/internal/shared/server"
	"cv-optimizer-backend/internal/shared/telemetry"
)

var rootCmd = &cobra.Command{
	Use:   "optimize",
	Short: "optimize tailors a resume to a job posting from the command line",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one optimization pass",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json output and logging")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")

	runCmd.Flags().String("resume-file", "", "path to the resume (.txt, .pdf, .doc, .docx)")
	runCmd.Flags().String("resume-text", "", "resume text inline, alternative to --resume-file")
	runCmd.Flags().String("url", "", "job posting URL (required)")

	for flag, set := range map[string]*cobra.Command{
		"json":        rootCmd,
		"debug":       rootCmd,
		"resume-file": runCmd,
		"resume-text": runCmd,
		"url":         runCmd,
	} {
		lookup := set.PersistentFlags().Lookup(flag)
		if lookup == nil {
			lookup = set.Flags().Lookup(flag)
		}
		if err := viper.BindPFlag(flag, lookup); err != nil {
			log.Fatalf("binding flag %s: %v", flag, err)
		}
	}

	rootCmd.AddCommand(runCmd)
}

func run(ctx context.Context) error {
	if err := telemetry.Init(viper.GetBool("json"), viper.GetBool("debug")); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	svc, err := server.BuildService(ctx, cfg)
	if err != nil {
		return fmt.Errorf("building pipeline: %w", err)
	}

	req := optimize.Request{
		ResumeText: viper.GetString("resume-text"),
		VacancyURL: viper.GetString("url"),
	}
	if path := viper.GetString("resume-file"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening resume: %w", err)
		}
		defer f.Close()
		req.File = f
		req.FileName = filepath.Base(path)
	}

	result, err := svc.Submit(ctx, req)
	if err != nil {
		return err
	}

	if viper.GetBool("json") {
		out, err := json.MarshalIndent(result.Persisted, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	}

	fmt.Printf("Spanish resume: %s\n", filepath.Join(cfg.DataDir, result.FilenameES))
	fmt.Printf("English resume: %s\n", filepath.Join(cfg.DataDir, result.FilenameEN))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
