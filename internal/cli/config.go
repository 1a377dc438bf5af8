package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/guiyumin/linkparse/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage linkparse configuration",
	Long:  "View and modify linkparse settings, including WebDAV remotes",
}

// linkparse config show
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Current configuration:")
		fmt.Fprintf(out, "  Format:    %s\n", cfg.Format)
		fmt.Fprintf(out, "  Workers:   %d\n", cfg.Workers)
		fmt.Fprintf(out, "  LogLevel:  %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "  LogFormat: %s\n", cfg.LogFormat)
		fmt.Fprintf(out, "  Config:    %s\n", configPath())

		if len(cfg.WebDAVServers) > 0 {
			fmt.Fprintln(out, "\nWebDAV servers:")
			for _, name := range serverNames() {
				fmt.Fprintf(out, "  %s: %s\n", name, cfg.WebDAVServers[name].URL)
			}
		}
	},
}

// linkparse config path
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show config file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), configPath())
	},
}

// linkparse config init
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or edit the config file interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		edited, err := config.RunInitWizard(cfg)
		if err != nil {
			return err
		}
		if err := saveConfig(edited); err != nil {
			return err
		}
		cfg = edited
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", configPath())
		return nil
	},
}

// --- WebDAV remote management ---

var (
	webdavURL      string
	webdavUsername string
)

var configWebdavCmd = &cobra.Command{
	Use:     "webdav",
	Short:   "Manage WebDAV remotes",
	Aliases: []string{"remote"},
}

var configWebdavListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List configured WebDAV servers",
	Aliases: []string{"ls"},
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if len(cfg.WebDAVServers) == 0 {
			fmt.Fprintln(out, "No WebDAV servers configured.")
			fmt.Fprintln(out, "Add one with: linkparse config webdav add <name>")
			return
		}

		fmt.Fprintln(out, "WebDAV servers:")
		for _, name := range serverNames() {
			server := cfg.WebDAVServers[name]
			if server.Username != "" {
				fmt.Fprintf(out, "  %s: %s (user: %s)\n", name, server.URL, server.Username)
			} else {
				fmt.Fprintf(out, "  %s: %s\n", name, server.URL)
			}
		}
	},
}

var configWebdavAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new WebDAV server",
	Long: `Add a new WebDAV server configuration.

Examples:
  linkparse config webdav add nas
  linkparse config webdav add nas --url https://nas.local/dav --user me

After adding, scan files like:
  linkparse scan nas:/lists/links.txt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.ToLower(args[0])
		if len(name) < 2 {
			return fmt.Errorf("WebDAV server name '%s' is too short; one-letter names are read as drive letters", name)
		}
		if cfg.GetWebDAVServer(name) != nil {
			return fmt.Errorf("WebDAV server '%s' already exists; delete it first: linkparse config webdav delete %s", name, name)
		}

		out := cmd.OutOrStdout()
		in := cmd.InOrStdin()
		reader := bufio.NewReader(in)

		interactive := webdavURL == ""
		urlStr := webdavURL
		if interactive {
			fmt.Fprint(out, "WebDAV URL: ")
			urlStr = readLine(reader)
		}
		if urlStr == "" {
			return fmt.Errorf("URL is required")
		}

		username := webdavUsername
		if username == "" && interactive {
			fmt.Fprint(out, "Username (enter to skip): ")
			username = readLine(reader)
		}

		var password string
		if username != "" {
			fmt.Fprint(out, "Password: ")
			var err error
			password, err = readPassword(in, reader)
			fmt.Fprintln(out)
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
		}

		cfg.SetWebDAVServer(name, config.WebDAVServer{
			URL:      urlStr,
			Username: username,
			Password: password,
		})

		if err := saveConfig(cfg); err != nil {
			cfg.DeleteWebDAVServer(name)
			return err
		}

		fmt.Fprintf(out, "WebDAV server '%s' added.\n", name)
		fmt.Fprintf(out, "Usage: linkparse scan %s:/path/to/links.txt\n", name)
		return nil
	},
}

var configWebdavDeleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Short:   "Delete a WebDAV server",
	Aliases: []string{"rm", "remove"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.ToLower(args[0])
		server := cfg.GetWebDAVServer(name)
		if server == nil {
			return fmt.Errorf("WebDAV server '%s' not found", name)
		}

		cfg.DeleteWebDAVServer(name)
		if err := saveConfig(cfg); err != nil {
			cfg.SetWebDAVServer(name, *server)
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "WebDAV server '%s' deleted.\n", name)
		return nil
	},
}

var configWebdavShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show details of a WebDAV server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.ToLower(args[0])
		server := cfg.GetWebDAVServer(name)
		if server == nil {
			return fmt.Errorf("WebDAV server '%s' not found", name)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Name:     %s\n", name)
		fmt.Fprintf(out, "URL:      %s\n", server.URL)
		if server.Username != "" {
			fmt.Fprintf(out, "Username: %s\n", server.Username)
			fmt.Fprintf(out, "Password: %s\n", strings.Repeat("*", len(server.Password)))
		}
		return nil
	},
}

// configPath returns the file commands read from and write to
func configPath() string {
	if configFile != "" {
		return configFile
	}
	return config.SavePath()
}

func saveConfig(c *config.Config) error {
	if err := config.SaveTo(configPath(), c); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	return nil
}

func serverNames() []string {
	names := make([]string, 0, len(cfg.WebDAVServers))
	for name := range cfg.WebDAVServers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func readLine(r *bufio.Reader) string {
	line, _ := r.ReadString('\n')
	return strings.TrimSpace(line)
}

// readPassword reads without echo from a terminal, or a plain line otherwise
func readPassword(in io.Reader, r *bufio.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		return string(b), err
	}
	return readLine(r), nil
}

func init() {
	configWebdavAddCmd.Flags().StringVar(&webdavURL, "url", "", "server URL")
	configWebdavAddCmd.Flags().StringVar(&webdavUsername, "user", "", "username")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)

	configWebdavCmd.AddCommand(configWebdavListCmd)
	configWebdavCmd.AddCommand(configWebdavAddCmd)
	configWebdavCmd.AddCommand(configWebdavDeleteCmd)
	configWebdavCmd.AddCommand(configWebdavShowCmd)
	configCmd.AddCommand(configWebdavCmd)

	rootCmd.AddCommand(configCmd)
}
