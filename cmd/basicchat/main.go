// basicchat - terminal chat against an Azure-hosted chat-completion deployment.
//
// Pick a system prompt, talk to the model, or summarize a PDF from the paper
// folder and then chat with its text.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "basicchat",
	Short: "basicchat - chat with a hosted completion model",
	Long: `basicchat is a terminal chat client for an Azure OpenAI deployment.
Configuration is read from the environment and an optional .env file.

  basicchat chat                                 Start an interactive session
  basicchat ask "question" --prompt sys.txt      One-shot exchange
  basicchat list                                 List prompts and papers
  basicchat logs --chars 500                     Show recorded errors
  basicchat cache list|purge                     Manage the extraction cache`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
