package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/compass/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the service address, query defaults, the admin
token and local history.

Use subcommands to change a single setting or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a single setting",
	Long: `Change a single setting by key.

Run "compass settings keys" for the list of keys. When setting admin.token
without a value, the token is read from the terminal without echo.

Examples:
  compass settings set backend.url http://localhost:8000
  compass settings set ask.free_only true
  compass settings set admin.token`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List settable keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure the most common settings step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Backend]")
	cmd.Printf("  URL: %s\n", settings.Backend.URL)
	cmd.Printf("  Timeout: %s\n", settings.Backend.Timeout)
	cmd.Printf("  Rate limit: %g req/s\n", settings.Backend.RatePerSecond)
	cmd.Println()

	cmd.Println("[Ask]")
	cmd.Printf("  Top K: %d\n", settings.Ask.TopK)
	cmd.Printf("  Top results: %d\n", settings.Ask.TopResults)
	if settings.Ask.Language != "" {
		cmd.Printf("  Language: %s\n", settings.Ask.Language)
	} else {
		cmd.Printf("  Language: (any)\n")
	}
	cmd.Printf("  Free only: %t\n", settings.Ask.FreeOnly)
	cmd.Println()

	cmd.Println("[Admin]")
	if settings.Admin.HasToken() {
		cmd.Printf("  Token: %s\n", maskToken(settings.Admin.Token))
	} else {
		cmd.Printf("  Token: (not set)\n")
	}
	cmd.Println()

	cmd.Println("[History]")
	cmd.Printf("  Enabled: %t\n", settings.History.Enabled)
	cmd.Printf("  Limit: %d\n", settings.History.Limit)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key := args[0]
	var value string
	switch {
	case len(args) == 2:
		value = args[1]
	case key == "admin.token":
		cmd.Print("Admin token: ")
		value = readSecret(bufio.NewReader(cmd.InOrStdin()))
		cmd.Println()
	default:
		return fmt.Errorf("%w: missing value for %s", domain.ErrInvalidInput, key)
	}

	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	if key == "admin.token" {
		cmd.Println("Admin token updated.")
		return nil
	}
	cmd.Printf("%s set to %s\n", key, value)
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Compass Setup Wizard")
	cmd.Println("====================")
	cmd.Println()

	cmd.Printf("Service URL [%s]: ", settings.Backend.URL)
	if url := readLine(reader); url != "" {
		settings.Backend.URL = url
	}

	cmd.Printf("Resources per theme [%d]: ", settings.Ask.TopResults)
	if n, err := strconv.Atoi(readLine(reader)); err == nil && n > 0 {
		settings.Ask.TopResults = n
	}

	defaultScope := 1
	if settings.Ask.FreeOnly {
		defaultScope = 2
	}
	cmd.Println()
	cmd.Println("Which resources should queries include?")
	cmd.Println("  1. All resources")
	cmd.Println("  2. Free resources only")
	cmd.Printf("Choice [%d]: ", defaultScope)
	settings.Ask.FreeOnly = parseChoice(readLine(reader), 2, defaultScope) == 2

	cmd.Println()
	cmd.Print("Admin token (leave blank to keep current): ")
	if token := readSecret(reader); token != "" {
		settings.Admin.Token = token
	}
	cmd.Println()

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println()
	cmd.Println("Settings saved.")
	return nil
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readSecret reads a line without echo when stdin is a terminal,
// falling back to reader otherwise.
func readSecret(reader *bufio.Reader) string {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	return readLine(reader)
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
