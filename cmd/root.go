package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "resume-screener"
)

type Config struct {
	Reports  *ReportsConfig  `mapstructure:"reports"`
	LLM      *LLMConfig      `mapstructure:"llm"`
	Research *ResearchConfig `mapstructure:"research"`
	Tracing  *TracingConfig  `mapstructure:"tracing"`
}

type ReportsConfig struct {
	Dir string `mapstructure:"dir"`
}

type LLMConfig struct {
	Provider    string  `mapstructure:"provider"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max-tokens"`
	MaxRetries  int     `mapstructure:"max-retries"`

	OpenAI *OpenAIConfig `mapstructure:"openai"`
	Ollama *OllamaConfig `mapstructure:"ollama"`
	Gemini *GeminiConfig `mapstructure:"gemini"`

	// Fallback is tried for a step when its primary provider fails.
	Fallback *StepLLMConfig `mapstructure:"fallback"`

	// Steps overrides provider settings for individual screening steps,
	// keyed by step name (extract, requirements, skills, match, report,
	// feedback).
	Steps map[string]*StepLLMConfig `mapstructure:"steps"`
}

type OpenAIConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
}

type OllamaConfig struct {
	BaseURL string `mapstructure:"base-url"`
}

type GeminiConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
}

type StepLLMConfig struct {
	Provider    string  `mapstructure:"provider"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max-tokens"`
	MaxRetries  int     `mapstructure:"max-retries"`
}

type ResearchConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	BraveAPIKeyFile string `mapstructure:"brave-api-key-file"`
	MaxResults      int    `mapstructure:"max-results"`
}

type TracingConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Endpoint   string `mapstructure:"endpoint"`
	URLPath    string `mapstructure:"url-path"`
	APIKeyFile string `mapstructure:"api-key-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-screener evaluates a candidate resume against a job description with AI assistance",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	for env, key := range map[string]string{
		"OPENAI_API_KEY_FILE": "llm.openai.api-key-file",
		"GEMINI_API_KEY_FILE": "llm.gemini.api-key-file",
		"BRAVE_API_KEY_FILE":  "research.brave-api-key-file",
	} {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-screener.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	viper.SetDefault("reports.dir", "./reports")
}

func initConfig() {
	// Config is needed only for the run and reports commands.
	if runCmd.CalledAs() == "" && reportsListCmd.CalledAs() == "" && reportsCompareCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// The reports commands work on defaults without a config file.
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && runCmd.CalledAs() == "" {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
