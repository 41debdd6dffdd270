package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mberezhnyi/resume-screener/internal/ai"
	"github.com/mberezhnyi/resume-screener/internal/logger"
	"github.com/mberezhnyi/resume-screener/internal/reports"
	"github.com/mberezhnyi/resume-screener/internal/research"
	"github.com/mberezhnyi/resume-screener/internal/resume"
	"github.com/mberezhnyi/resume-screener/internal/screening"
	"github.com/mberezhnyi/resume-screener/internal/secrets"
	"github.com/mberezhnyi/resume-screener/internal/trace"
)

const (
	PromptApprove = "Approve"
	PromptRevise  = "Request changes"
	PromptReject  = "Reject"
)

var reviewPrompt = promptui.Select{
	Label: "Review the report",
	Items: []string{PromptApprove, PromptRevise, PromptReject},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Screen a resume against a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("resume", "r", "", "path to the resume file (pdf, docx, html or txt)")
	runCmd.Flags().StringP("job", "J", "", "path to the job description text file")
	runCmd.Flags().StringP("output", "o", "", "also write the final markdown report to this file")
	runCmd.Flags().String("provider", "", "override the default llm provider (openai, ollama or gemini)")
	runCmd.Flags().Bool("skip-research", false, "skip the candidate web research step")
	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for report review")

	if err := runCmd.MarkFlagRequired("resume"); err != nil {
		log.Fatal(err)
	}
	if err := runCmd.MarkFlagRequired("job"); err != nil {
		log.Fatal(err)
	}
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-screener", zap.String("version", version))

	if config == nil || config.LLM == nil {
		logger.Fatal("llm configuration is required")
	}

	if provider, _ := cmd.Flags().GetString("provider"); provider != "" {
		config.LLM.Provider = provider
	}

	resumePath, _ := cmd.Flags().GetString("resume")
	profile, err := resume.Parse(resumePath)
	if err != nil {
		logger.Fatal("parsing resume", zap.Error(err))
	}

	logger.Info("resume parsed",
		zap.String("candidate", profile.Name),
		zap.Int("skills", len(profile.Skills)),
		zap.Int("positions", len(profile.Experience)),
	)

	jobPath, _ := cmd.Flags().GetString("job")
	jobDescription, err := os.ReadFile(jobPath)
	if err != nil {
		logger.Fatal("reading job description", zap.Error(err))
	}

	traced := false
	if config.Tracing != nil && config.Tracing.Enabled {
		shutdown, err := setupTracing(ctx, config.Tracing, logger)
		if err != nil {
			logger.Fatal("initializing tracing", zap.Error(err))
		}
		defer func() {
			if err := shutdown(ctx); err != nil {
				logger.Warn("shutting down tracing", zap.Error(err))
			}
		}()
		traced = true
	}

	router, err := buildRouter(config.LLM, logger, traced)
	if err != nil {
		logger.Fatal("configuring llm providers", zap.Error(err))
	}

	steps := screening.DefaultSteps()
	deps := screening.Deps{Invoker: router, Logger: logger}

	skipResearch, _ := cmd.Flags().GetBool("skip-research")
	switch {
	case skipResearch:
		screening.DisableByName(steps, screening.StepResearch, "disabled by --skip-research")
	case config.Research == nil || !config.Research.Enabled:
		screening.DisableByName(steps, screening.StepResearch, "disabled in config")
	default:
		braveKey, err := secrets.Load(secrets.Source{
			Name: "brave api key",
			File: config.Research.BraveAPIKeyFile,
			Env:  "BRAVE_API_KEY",
		})
		if err != nil {
			logger.Warn("skipping research",
				zap.Error(err),
				zap.String("hint", "set research.brave-api-key-file or BRAVE_API_KEY"),
			)
			screening.DisableByName(steps, screening.StepResearch, "no brave api key")
			break
		}

		researcher, err := research.NewClient(research.Config{
			APIKey:     braveKey,
			MaxResults: config.Research.MaxResults,
		}, logger)
		if err != nil {
			logger.Fatal("configuring research", zap.Error(err))
		}
		deps.Researcher = researcher
	}

	autoApprove, _ := cmd.Flags().GetBool("auto-approve")
	if !autoApprove {
		deps.Feedback = collectFeedback
	}

	c := &screening.Case{
		Profile:        profile,
		JobDescription: string(jobDescription),
	}

	if err := screening.Run(ctx, deps, steps, c); err != nil {
		logger.Fatal("screening failed", zap.Error(err))
	}

	store, err := reports.Open(reportsDir(config), logger)
	if err != nil {
		logger.Fatal("opening report store", zap.Error(err))
	}
	defer store.Close()

	name, err := store.Save(ctx, reports.FromCase(c))
	if err != nil {
		logger.Fatal("saving report", zap.Error(err))
	}

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		if err := os.WriteFile(output, []byte(c.Report+"\n"), 0o644); err != nil {
			logger.Fatal("writing report copy", zap.Error(err))
		}
		logger.Info("report copy written", zap.String("file", output))
	}

	logger.Info("screening finished",
		zap.Int("score", c.Score),
		zap.Bool("approved", c.Approved),
		zap.String("report", name),
	)

	if autoApprove {
		// Interactive review already displayed the report.
		fmt.Println(c.Report)
	}
}

func reportsDir(config *Config) string {
	if config != nil && config.Reports != nil && config.Reports.Dir != "" {
		return config.Reports.Dir
	}
	return "./reports"
}

// collectFeedback shows the drafted report and asks the reviewer what to do
// with it. "Request changes" collects free-form notes for a revision.
func collectFeedback(report string) (string, bool, error) {
	fmt.Printf("\n%s\n\n", report)

	_, action, err := reviewPrompt.Run()
	if err != nil {
		return "", false, err
	}

	switch action {
	case PromptApprove:
		return "", true, nil
	case PromptReject:
		return "", false, nil
	default:
		notesPrompt := promptui.Prompt{Label: "What should change"}
		notes, err := notesPrompt.Run()
		if err != nil {
			return "", false, err
		}
		return notes, false, nil
	}
}

func setupTracing(ctx context.Context, cfg *TracingConfig, logger *zap.Logger) (func(context.Context) error, error) {
	apiKey := ""
	if cfg.APIKeyFile != "" {
		key, err := secrets.Load(secrets.Source{
			Name: "tracing api key",
			File: cfg.APIKeyFile,
		})
		if err != nil {
			return nil, err
		}
		apiKey = key
	}

	return trace.Init(ctx, trace.Config{
		Endpoint: cfg.Endpoint,
		URLPath:  cfg.URLPath,
		APIKey:   apiKey,
	}, logger)
}

// buildRouter turns the llm configuration into a step-aware router with
// resolved credentials.
func buildRouter(cfg *LLMConfig, logger *zap.Logger, traced bool) (*ai.Router, error) {
	defaults := ai.ProviderConfig{
		Provider:    strings.ToLower(strings.TrimSpace(cfg.Provider)),
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		MaxRetries:  cfg.MaxRetries,
	}
	if defaults.Provider == "" {
		defaults.Provider = ai.ProviderOpenAI
	}

	defaults, err := fillCredentials(cfg, defaults)
	if err != nil {
		return nil, err
	}

	var fallback *ai.ProviderConfig
	if cfg.Fallback != nil {
		pc, err := fillCredentials(cfg, stepProviderConfig(cfg.Fallback))
		if err != nil {
			return nil, fmt.Errorf("fallback: %w", err)
		}
		fallback = &pc
	}

	steps := make(map[string]ai.ProviderConfig, len(cfg.Steps))
	for name, sc := range cfg.Steps {
		if sc == nil {
			continue
		}
		pc, err := fillCredentials(cfg, stepProviderConfig(sc))
		if err != nil {
			return nil, fmt.Errorf("step %s: %w", name, err)
		}
		steps[name] = pc
	}

	return ai.NewRouter(defaults, fallback, steps, ai.DefaultFactory(traced), logger), nil
}

func stepProviderConfig(sc *StepLLMConfig) ai.ProviderConfig {
	return ai.ProviderConfig{
		Provider:    strings.ToLower(strings.TrimSpace(sc.Provider)),
		Model:       sc.Model,
		Temperature: sc.Temperature,
		MaxTokens:   sc.MaxTokens,
		MaxRetries:  sc.MaxRetries,
	}
}

// fillCredentials resolves the api key or base url for the provider named in
// the config. An empty provider inherits everything from the defaults.
func fillCredentials(cfg *LLMConfig, pc ai.ProviderConfig) (ai.ProviderConfig, error) {
	switch pc.Provider {
	case "":
	case ai.ProviderOpenAI:
		keyFile := ""
		if cfg.OpenAI != nil {
			keyFile = cfg.OpenAI.APIKeyFile
		}
		key, err := secrets.Load(secrets.Source{
			Name: "openai api key",
			File: keyFile,
			Env:  "OPENAI_API_KEY",
		})
		if err != nil {
			return pc, fmt.Errorf("%w (set llm.openai.api-key-file or OPENAI_API_KEY)", err)
		}
		pc.APIKey = key
	case ai.ProviderGemini:
		keyFile := ""
		if cfg.Gemini != nil {
			keyFile = cfg.Gemini.APIKeyFile
		}
		key, err := secrets.Load(secrets.Source{
			Name: "gemini api key",
			File: keyFile,
			Env:  "GEMINI_API_KEY",
		})
		if err != nil {
			return pc, fmt.Errorf("%w (set llm.gemini.api-key-file or GEMINI_API_KEY)", err)
		}
		pc.APIKey = key
	case ai.ProviderOllama:
		if cfg.Ollama != nil {
			pc.BaseURL = cfg.Ollama.BaseURL
		}
	default:
		return pc, fmt.Errorf("unsupported llm provider: %s", pc.Provider)
	}

	return pc, nil
}
