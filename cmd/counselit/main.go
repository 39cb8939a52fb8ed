// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	counselit "github.com/poiesic/counselit"
	"github.com/poiesic/counselit/ai"
	"github.com/poiesic/counselit/core"
	"github.com/poiesic/counselit/evaluate"
	"github.com/poiesic/counselit/verify"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "counselit",
		Usage: "Government college recommendation pipeline",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "index",
				Usage:  "Build the document index from the college catalog",
				Action: indexCommand,
				Flags:  append(systemFlags(), aiFlags()...),
			},
			{
				Name:   "recommend",
				Usage:  "Generate recommendations for a student request",
				Action: recommendCommand,
				Flags: append(append(systemFlags(), aiFlags()...),
					&cli.StringFlag{
						Name:    "request",
						Aliases: []string{"r"},
						Usage:   "Path to a recommendation request JSON file (- for stdin)",
						Value:   "-",
					},
					&cli.Float64Flag{
						Name:    "cache-hours",
						Usage:   "Verification cache TTL in hours",
						EnvVars: []string{"VERIFICATION_CACHE_HOURS"},
						Value:   24,
					},
				),
			},
			{
				Name:   "search",
				Usage:  "Search indexed colleges by criteria",
				Action: searchCommand,
				Flags: append(append(systemFlags(), aiFlags()...),
					&cli.StringFlag{Name: "stream", Usage: "Academic stream filter"},
					&cli.StringFlag{Name: "location", Usage: "Location query term"},
					&cli.StringFlag{Name: "state", Usage: "State filter"},
					&cli.StringFlag{Name: "type", Usage: "College type filter (government, private, deemed, autonomous)"},
					&cli.IntFlag{Name: "budget-max", Usage: "Maximum annual fee query term"},
					&cli.Float64Flag{Name: "min-rating", Usage: "Minimum mentor rating query term"},
					&cli.IntFlag{Name: "limit", Usage: "Maximum results", Value: counselit.DefaultSearchLimit},
				),
			},
			{
				Name:   "verify",
				Usage:  "Verify a single claim against the reference sources",
				Action: verifyCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "claim",
						Usage:    "Claim text to verify",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "subject",
						Usage:    "College the claim is about",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "type",
						Usage: "Claim type (placement, accreditation, program, general)",
						Value: string(verify.ClaimGeneral),
					},
					&cli.StringFlag{
						Name:  "sources",
						Usage: "Path to a YAML reference table loaded as an extra source",
					},
					&cli.Float64Flag{
						Name:    "cache-hours",
						Usage:   "Verification cache TTL in hours",
						EnvVars: []string{"VERIFICATION_CACHE_HOURS"},
						Value:   24,
					},
				},
			},
			{
				Name:   "evaluate",
				Usage:  "Score recommendation quality against synthetic student cases",
				Action: evaluateCommand,
				Flags: append(append(systemFlags(), aiFlags()...),
					&cli.IntFlag{
						Name:  "cases",
						Usage: "Number of synthetic cases to generate",
						Value: 20,
					},
					&cli.Int64Flag{
						Name:  "seed",
						Usage: "Random seed for case generation",
						Value: 42,
					},
					&cli.StringFlag{
						Name:  "cases-file",
						Usage: "Load cases from this JSON file instead of generating them",
					},
					&cli.IntFlag{
						Name:  "max-per-case",
						Usage: "Recommendations requested per case",
						Value: 5,
					},
					&cli.BoolFlag{
						Name:  "with-verification",
						Usage: "Verify claims for every case",
					},
					&cli.StringFlag{
						Name:  "report",
						Usage: "Write the full report to this JSON file",
					},
				),
			},
			{
				Name:   "stats",
				Usage:  "Report catalog and index sizes",
				Action: statsCommand,
				Flags:  append(systemFlags(), aiFlags()...),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func systemFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "catalog",
			Aliases:  []string{"c"},
			Usage:    "Path to the college catalog JSON file",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "index",
			Aliases:  []string{"d"},
			Usage:    "Path to the BadgerDB index directory",
			Required: true,
		},
	}
}

func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "backend",
			Usage:   "AI backend (openai, mock)",
			EnvVars: []string{"AI_BACKEND"},
			Value:   string(ai.BackendOpenAI),
		},
		&cli.StringFlag{
			Name:    "host",
			Usage:   "OpenAI-compatible service host URL",
			EnvVars: []string{"AI_HOST"},
			Value:   "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model name",
			EnvVars: []string{"EMBEDDING_MODEL"},
			Value:   "embeddinggemma",
		},
		&cli.StringFlag{
			Name:    "generation-model",
			Usage:   "Generation model name",
			EnvVars: []string{"GENERATION_MODEL"},
			Value:   "qwen2.5:3b",
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "API key for the AI backend",
			EnvVars: []string{"OPENAI_API_KEY"},
			Value:   "none",
		},
		&cli.Float64Flag{
			Name:  "temperature",
			Usage: "Generation sampling temperature",
			Value: 0.3,
		},
	}
}

func buildSystem(c *cli.Context, extra ...counselit.SystemOption) (*counselit.System, error) {
	backend, err := ai.ParseBackend(c.String("backend"))
	if err != nil {
		return nil, err
	}

	config := ai.NewConfig(
		ai.WithBackend(backend),
		ai.WithHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithGenerationModel(c.String("generation-model")),
		ai.WithAPIKey(c.String("api-key")),
		ai.WithTemperature(c.Float64("temperature")),
	)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	opts := append([]counselit.SystemOption{counselit.WithAIConfig(config)}, extra...)
	return counselit.NewSystem(c.String("catalog"), c.String("index"), opts...)
}

func indexCommand(c *cli.Context) error {
	ctx := context.Background()

	system, err := buildSystem(c)
	if err != nil {
		return err
	}
	defer system.Close()

	started := time.Now()
	if err := system.BuildIndex(ctx); err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}

	stats, err := system.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Indexed %d colleges in %s\n",
		stats.IndexedColleges, time.Since(started).Round(time.Millisecond))
	return nil
}

func recommendCommand(c *cli.Context) error {
	ctx := context.Background()

	request, err := readRequest(c.String("request"))
	if err != nil {
		return err
	}

	ttl := time.Duration(c.Float64("cache-hours") * float64(time.Hour))
	system, err := buildSystem(c,
		counselit.WithVerifyOptions(verify.WithCacheTTL(ttl)))
	if err != nil {
		return err
	}
	defer system.Close()

	recommendations, err := system.GetRecommendations(ctx, request)
	if err != nil {
		return err
	}
	return printJSON(recommendations)
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	system, err := buildSystem(c)
	if err != nil {
		return err
	}
	defer system.Close()

	results, err := system.SearchByCriteria(ctx, &counselit.SearchCriteria{
		Stream:      c.String("stream"),
		Location:    c.String("location"),
		State:       c.String("state"),
		CollegeType: c.String("type"),
		BudgetMax:   c.Int("budget-max"),
		MinRating:   c.Float64("min-rating"),
		Limit:       c.Int("limit"),
	})
	if err != nil {
		return err
	}

	type match struct {
		CollegeID  string   `json:"college_id"`
		Name       string   `json:"name"`
		State      string   `json:"state"`
		Streams    []string `json:"streams"`
		Similarity float32  `json:"similarity"`
	}
	matches := make([]match, 0, len(results))
	for _, result := range results {
		meta := &result.Document.Metadata
		matches = append(matches, match{
			CollegeID:  meta.CollegeID,
			Name:       meta.Name,
			State:      meta.State,
			Streams:    meta.Streams,
			Similarity: result.Similarity,
		})
	}
	return printJSON(matches)
}

func verifyCommand(c *cli.Context) error {
	ctx := context.Background()

	claimType, err := parseClaimType(c.String("type"))
	if err != nil {
		return err
	}

	ttl := time.Duration(c.Float64("cache-hours") * float64(time.Hour))
	opts := []verify.Option{verify.WithCacheTTL(ttl)}

	if path := c.String("sources"); path != "" {
		source, err := verify.LoadYAMLSource("custom", 0.7, path)
		if err != nil {
			return fmt.Errorf("loading reference source: %w", err)
		}
		opts = append(opts, verify.WithSources(
			verify.NewNIRFSource(),
			verify.NewUGCSource(),
			verify.NewAICTESource(),
			source,
		))
	}

	engine, err := verify.NewEngine(opts...)
	if err != nil {
		return err
	}

	result := engine.VerifyClaim(ctx, c.String("claim"), c.String("subject"), claimType)
	return printJSON(result)
}

func evaluateCommand(c *cli.Context) error {
	ctx := context.Background()

	var cases []*evaluate.Case
	var err error
	if path := c.String("cases-file"); path != "" {
		cases, err = evaluate.LoadCases(path)
	} else {
		cases, err = evaluate.GenerateCases(c.Int("cases"), c.Int64("seed"))
	}
	if err != nil {
		return err
	}

	system, err := buildSystem(c)
	if err != nil {
		return err
	}
	defer system.Close()

	evaluator, err := evaluate.NewEvaluator(system,
		evaluate.WithMaxPerCase(c.Int("max-per-case")),
		evaluate.WithVerification(c.Bool("with-verification")))
	if err != nil {
		return err
	}

	report, err := evaluator.Run(ctx, cases...)
	if err != nil {
		return err
	}

	if path := c.String("report"); path != "" {
		if err := evaluate.SaveReport(path, report); err != nil {
			return err
		}
	}
	return printJSON(report)
}

func statsCommand(c *cli.Context) error {
	ctx := context.Background()

	system, err := buildSystem(c)
	if err != nil {
		return err
	}
	defer system.Close()

	stats, err := system.Stats(ctx)
	if err != nil {
		return err
	}
	return printJSON(stats)
}

func readRequest(path string) (*core.RecommendationRequest, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading request: %w", err)
	}

	var request core.RecommendationRequest
	if err := json.Unmarshal(data, &request); err != nil {
		return nil, fmt.Errorf("parsing request: %w", err)
	}
	return &request, nil
}

func parseClaimType(name string) (verify.ClaimType, error) {
	switch verify.ClaimType(strings.ToLower(strings.TrimSpace(name))) {
	case verify.ClaimPlacement:
		return verify.ClaimPlacement, nil
	case verify.ClaimAccreditation:
		return verify.ClaimAccreditation, nil
	case verify.ClaimProgram:
		return verify.ClaimProgram, nil
	case verify.ClaimGeneral:
		return verify.ClaimGeneral, nil
	default:
		return "", fmt.Errorf("unknown claim type %q", name)
	}
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func setup(c *cli.Context) error {
	// Optional .env alongside the binary; absence is not an error.
	_ = godotenv.Load()

	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
