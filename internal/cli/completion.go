package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for reframe.

To load completions:

Bash:
  $ source <(reframe completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ reframe completion bash > /etc/bash_completion.d/reframe
  # macOS:
  $ reframe completion bash > $(brew --prefix)/etc/bash_completion.d/reframe

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ reframe completion zsh > "${fpath[1]}/_reframe"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ reframe completion fish | source

  # To load completions for each session, execute once:
  $ reframe completion fish > ~/.config/fish/completions/reframe.fish

PowerShell:
  PS> reframe completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> reframe completion powershell > reframe.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}
