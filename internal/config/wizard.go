package config

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
)

// RunInitWizard runs an interactive form seeded from base and returns the edited copy
func RunInitWizard(base *Config) (*Config, error) {
	cfg := *base
	if cfg.WebDAVServers == nil {
		cfg.WebDAVServers = map[string]WebDAVServer{}
	}
	workers := strconv.Itoa(cfg.Workers)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Output Format").
				Description("How classified links are printed").
				Options(
					huh.NewOption("Text (recommended)", FormatText),
					huh.NewOption("Table", FormatTable),
					huh.NewOption("JSON", FormatJSON),
					huh.NewOption("Identifiers only", FormatID),
				).
				Value(&cfg.Format),

			huh.NewInput().
				Title("Workers").
				Description(fmt.Sprintf("Parallel workers for scan (1-%d)", MaxWorkers)).
				Placeholder(strconv.Itoa(DefaultWorkers)).
				Validate(validateWorkers).
				Value(&workers),
		),

		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Log Level").
				Options(
					huh.NewOption("Warnings and errors", "warn"),
					huh.NewOption("Info", "info"),
					huh.NewOption("Debug", "debug"),
					huh.NewOption("Errors only", "error"),
				).
				Value(&cfg.LogLevel),

			huh.NewSelect[string]().
				Title("Log Format").
				Options(
					huh.NewOption("Pretty", "pretty"),
					huh.NewOption("JSON", "json"),
				).
				Value(&cfg.LogFormat),
		),
	)

	if err := form.Run(); err != nil {
		return nil, err
	}

	cfg.Workers = DefaultWorkers
	if workers != "" {
		cfg.Workers, _ = strconv.Atoi(workers)
	}

	return &cfg, nil
}

func validateWorkers(s string) error {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if n < 1 || n > MaxWorkers {
		return fmt.Errorf("must be between 1 and %d", MaxWorkers)
	}
	return nil
}
