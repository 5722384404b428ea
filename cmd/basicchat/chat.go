package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamoruimade/basicChatFeature/internal/auth"
	"github.com/mamoruimade/basicChatFeature/internal/completion"
	"github.com/mamoruimade/basicChatFeature/internal/session"
	"github.com/mamoruimade/basicChatFeature/internal/shell"
	"github.com/mamoruimade/basicChatFeature/internal/sink"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive session. Choose a system prompt and chat, or choose
paper_summarizer.txt to summarize a PDF from the paper folder and then chat
with its text.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	src, closeSrc := openSource(cfg, logger)
	defer closeSrc()

	if err := src.CheckPromptDir(); err != nil {
		return fmt.Errorf("system prompt folder unavailable: %w", err)
	}

	ctx := cmd.Context()
	token, err := auth.FetchToken(ctx, *cfg, nil)
	if err != nil {
		logger.Error("token acquisition failed", zap.Error(err))
		return err
	}

	ctrl := session.NewController(
		src,
		completion.New(*cfg, token, logger),
		sink.NewErrorLog(cfg.ErrorLogDir, logger),
		sink.NewSummaries(cfg.OutputDir),
		shell.New(os.Stdin, os.Stdout),
		logger,
	)

	err = ctrl.Run(ctx)
	if errors.Is(err, session.ErrInvalidSelection) {
		return nil
	}
	return err
}
