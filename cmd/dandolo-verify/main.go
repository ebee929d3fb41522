package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Alhambren/Dandolo-Prod/internal/config"
	"github.com/Alhambren/Dandolo-Prod/internal/verify"
	"github.com/Alhambren/Dandolo-Prod/pkg/dandolo"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagAPIKey   string
	flagBaseURL  string
	flagConfig   string
	flagAdvanced bool
)

var rootCmd = &cobra.Command{
	Use:   "dandolo-verify",
	Short: "Verify a Dandolo API integration end to end",
	Long: `dandolo-verify runs the integration checks an agent developer needs
before going live: connectivity, key balance, model listing, chat completion,
and error surfacing. Advanced mode adds image, embedding, and latency probes.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}
		defer client.Close()

		results := verify.NewTester(client, os.Stdout).RunSuite(cmd.Context(), flagAdvanced)
		if results.PassCount() != len(results) {
			return fmt.Errorf("%d of %d checks failed", len(results)-results.PassCount(), len(results))
		}
		return nil
	},
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models available to this key",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}
		defer client.Close()

		models, err := client.Models.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(models) == 0 {
			fmt.Println("No models available")
			return nil
		}
		for _, m := range models {
			line := m.ID
			if m.Type != "" {
				line += "\t" + m.Type
			}
			if m.ContextLength > 0 {
				line += fmt.Sprintf("\t%d ctx", m.ContextLength)
			}
			fmt.Println(line)
		}
		return nil
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Send a one-shot chat message",
	RunE: func(cmd *cobra.Command, args []string) error {
		message, _ := cmd.Flags().GetString("message")
		model, _ := cmd.Flags().GetString("model")
		if message == "" {
			return fmt.Errorf("a message is required (-m)")
		}

		client, err := buildClient()
		if err != nil {
			return err
		}
		defer client.Close()

		completion, err := client.Chat.Create(cmd.Context(), dandolo.CompletionRequest{
			Model:    model,
			Messages: []dandolo.ChatMessage{{Role: dandolo.RoleUser, Content: message}},
		})
		if err != nil {
			return err
		}
		if len(completion.Choices) == 0 {
			return fmt.Errorf("no choices in response")
		}
		fmt.Println(completion.Choices[0].Message.Content)
		return nil
	},
}

// buildClient resolves configuration (flag > config file > environment) and
// constructs the SDK client.
func buildClient() (*dandolo.Client, error) {
	apiKey := flagAPIKey
	baseURL := flagBaseURL

	var fileCfg *config.FileConfig
	if flagConfig != "" {
		var err error
		fileCfg, err = config.LoadFile(flagConfig)
		if err != nil {
			return nil, err
		}
	}

	if apiKey == "" && fileCfg != nil {
		apiKey = fileCfg.APIKey
	}
	if apiKey == "" {
		apiKey = config.GetDandoloAPIKey()
	}
	if baseURL == "" && fileCfg != nil {
		baseURL = fileCfg.BaseURL
	}
	if baseURL == "" {
		baseURL = config.GetDandoloBaseURL()
	}

	if !verify.ValidateKeyFormat(apiKey) {
		return nil, fmt.Errorf("invalid API key format: expected dk_xxx or ak_xxx, minimum 20 characters (set --api-key or DANDOLO_API_KEY)")
	}

	client, err := dandolo.New(apiKey)
	if err != nil {
		return nil, err
	}
	client.SetBaseURL(baseURL)

	if fileCfg != nil {
		if fileCfg.TimeoutSecs > 0 {
			client.SetTimeout(time.Duration(fileCfg.TimeoutSecs) * time.Second)
		}
		if fileCfg.MaxRetries != nil {
			client.SetMaxRetries(*fileCfg.MaxRetries)
		}
		if fileCfg.RetryDelay > 0 {
			client.SetRetryDelay(time.Duration(fileCfg.RetryDelay * float64(time.Second)))
		}
	}

	return client, nil
}

func main() {
	zerolog.SetGlobalLevel(config.GetLogLevel())

	rootCmd.PersistentFlags().StringVarP(&flagAPIKey, "api-key", "k", "", "Dandolo API key (dk_ or ak_)")
	rootCmd.PersistentFlags().StringVarP(&flagBaseURL, "base-url", "u", "", "Custom base URL")
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "YAML config file")
	rootCmd.Flags().BoolVarP(&flagAdvanced, "advanced", "a", false, "Run advanced tests (images, embeddings, performance)")

	chatCmd.Flags().StringP("message", "m", "", "Message to send")
	chatCmd.Flags().String("model", "", "Model id (defaults to auto-select)")

	rootCmd.AddCommand(modelsCmd, chatCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
