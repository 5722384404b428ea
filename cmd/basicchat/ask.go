package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mamoruimade/basicChatFeature/internal/auth"
	"github.com/mamoruimade/basicChatFeature/internal/completion"
	"github.com/mamoruimade/basicChatFeature/internal/contextsource"
	"github.com/mamoruimade/basicChatFeature/internal/sink"
)

var askPrompt string

var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Send one message with a system prompt and print the reply",
	Long: `Send a single message to the model using a system prompt file from the
prompt folder, print the reply and exit.

Example:
  basicchat ask "Explain atomic layer deposition in 50 words." --prompt systemPrompt.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askPrompt, "prompt", "p", "systemPrompt.txt", "System prompt file in the prompt folder")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	src := contextsource.New(cfg.PromptDir, cfg.PaperDir, contextsource.WithLogger(logger))
	prompt, err := src.LoadPrompt(askPrompt)
	if err != nil {
		return fmt.Errorf("loading system prompt: %w", err)
	}

	ctx := cmd.Context()
	token, err := auth.FetchToken(ctx, *cfg, nil)
	if err != nil {
		return err
	}

	reply, err := completion.New(*cfg, token, logger).Send(ctx, prompt.Content, args[0])
	if err != nil {
		var rawBody string
		var f *completion.Failure
		if errors.As(err, &f) {
			rawBody = f.RawBody
		}
		color.Red("Request failed: %v", err)
		fmt.Println(sink.NewErrorLog(cfg.ErrorLogDir, logger).Record(err.Error(), rawBody))
		return err
	}

	fmt.Println(reply)
	return nil
}
