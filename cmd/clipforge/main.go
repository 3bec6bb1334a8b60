package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"clipforge/internal/app"
	"clipforge/internal/transcript"
)

const version = "1.0"

// main is the CLI entry point
func main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "clipforge",
		Short:         "Generate highlight clip plans from video transcripts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)

	root.AddCommand(newGenerateCommand())
	root.AddCommand(newVersionCommand())

	return root
}

func newGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <transcript.json>",
		Short: "Generate a highlight plan from a transcription JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			duration, _ := cmd.Flags().GetFloat64("duration")
			outPath, _ := cmd.Flags().GetString("out")
			return runGenerate(args[0], duration, outPath)
		},
	}

	cmd.Flags().Float64("duration", 0, "Source video duration in seconds (fallback default used when omitted)")
	cmd.Flags().String("out", "", "Output path for the highlight plan (stdout when omitted)")

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("clipforge %s\n", version)
		},
	}
}

// runGenerate contains the core command logic: build the application, set
// up graceful shutdown and run one generation job
func runGenerate(transcriptPath string, videoDuration float64, outPath string) error {
	application, err := app.NewApplication()
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	defer func() {
		_ = application.Shutdown()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output file %s: %w", outPath, err)
		}
		defer f.Close()
		out = f
	}

	source := transcript.NewFileSource(transcriptPath, zap.NewNop())
	return application.Run(ctx, source, videoDuration, out)
}
