package cli

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/guiyumin/linkparse/internal/config"
	"github.com/guiyumin/linkparse/internal/webdav"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for linkparse.

Bash:
  source <(linkparse completion bash)

Zsh:
  linkparse completion zsh > "${fpath[1]}/_linkparse"

Fish:
  linkparse completion fish > ~/.config/fish/completions/linkparse.fish

PowerShell:
  linkparse completion powershell >> $PROFILE
`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(out, true)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		default:
			return cmd.Help()
		}
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(completionCmd)
}

// completeSource completes scan inputs: local files, remote names and remote paths
func completeSource(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if !strings.Contains(toComplete, ":") {
		return completeRemotes(toComplete)
	}
	return completeRemoteFiles(toComplete)
}

// completeRemotes returns configured remote names, or falls back to files
func completeRemotes(prefix string) ([]string, cobra.ShellCompDirective) {
	c := config.LoadOrDefault()
	lowerPrefix := strings.ToLower(prefix)
	var completions []string
	for name := range c.WebDAVServers {
		remote := name + ":"
		if strings.HasPrefix(remote, lowerPrefix) {
			completions = append(completions, remote)
		}
	}

	if len(completions) == 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	return completions, cobra.ShellCompDirectiveNoSpace
}

// completeRemoteFiles lists the remote directory being typed
func completeRemoteFiles(toComplete string) ([]string, cobra.ShellCompDirective) {
	if !webdav.IsRemotePath(toComplete) {
		return nil, cobra.ShellCompDirectiveDefault
	}

	serverName, remotePath, err := webdav.ParseRemotePath(toComplete)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	server := config.LoadOrDefault().GetWebDAVServer(serverName)
	if server == nil {
		return nil, cobra.ShellCompDirectiveError
	}

	client, err := webdav.NewClientFromConfig(server)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	dirPath, baseName := path.Split(remotePath)
	if dirPath == "" {
		dirPath = "/"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	files, err := client.List(ctx, dirPath)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	// Keep the name as typed so the shell does not filter the candidates out
	typedName := toComplete[:strings.Index(toComplete, ":")]
	return remoteCompletions(typedName, dirPath, baseName, files), cobra.ShellCompDirectiveNoSpace
}

// remoteCompletions formats directory entries matching baseName as remote paths
func remoteCompletions(serverName, dirPath, baseName string, files []webdav.FileInfo) []string {
	prefix := serverName + ":" + dirPath
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	var completions []string
	for _, f := range files {
		if !strings.HasPrefix(f.Name, baseName) {
			continue
		}
		completion := prefix + f.Name
		if f.IsDir {
			completion += "/"
		}
		completions = append(completions, completion)
	}
	return completions
}
