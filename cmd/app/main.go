package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/glosa/internal"
	"github.com/starford/glosa/internal/extract"
	pkgconfig "github.com/starford/glosa/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadIfExists(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func mcp(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.RunMCP(ctx, internal.WithConfig(cfg), internal.WithLogOutput(os.Stderr))
}

func lookup(ctx context.Context, cmd *cli.Command) error {
	word := cmd.Args().First()
	if word == "" {
		return fmt.Errorf("usage: glosa lookup <word>")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.Lookup(ctx, word, os.Stdout, internal.WithConfig(cfg), internal.WithLogOutput(os.Stderr))
}

func analyze(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Args().First()
	if id == "" {
		return fmt.Errorf("usage: glosa analyze <note-id>")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	var words []string
	if w := cmd.String("words"); w != "" {
		words = strings.Split(w, ",")
	}
	return internal.Analyze(ctx, id, words, os.Stdout, internal.WithConfig(cfg), internal.WithLogOutput(os.Stderr))
}

func extractWords(_ context.Context, cmd *cli.Command) error {
	text := strings.Join(cmd.Args().Slice(), " ")
	if text == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}
	for _, w := range extract.Words(text) {
		fmt.Println(w)
	}
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:   "glosa",
		Usage:  "Spanish notes annotated with RAE dictionary definitions",
		Action: serve,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API (default)",
				Action: serve,
			},
			{
				Name:      "lookup",
				Usage:     "Resolve one word and print its entry as JSON",
				ArgsUsage: "<word>",
				Action:    lookup,
			},
			{
				Name:      "extract",
				Usage:     "Print the candidate words of text from arguments or stdin",
				ArgsUsage: "[text...]",
				Action:    extractWords,
			},
			{
				Name:      "analyze",
				Usage:     "Analyze a stored note",
				ArgsUsage: "<note-id>",
				Action:    analyze,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "words",
						Usage: "Comma-separated words to analyze instead of the note content",
					},
				},
			},
			{
				Name:   "mcp",
				Usage:  "Serve MCP tools over stdio",
				Action: mcp,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
