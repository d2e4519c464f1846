package commands

import (
	"fmt"
	"strings"

	"github.com/benvon/wifi-api/internal/config"
	"github.com/spf13/cobra"
)

// NewCorsCmd creates the cors command group
func NewCorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cors",
		Short: "Inspect CORS configuration",
		Long:  "Show the CORS policy the server would apply with the current environment and config file.",
	}
	cmd.AddCommand(newCorsShowCmd())
	return cmd
}

func newCorsShowCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective CORS policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			p := cfg.CORSPolicy()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "CORS policy:")
			fmt.Fprintf(out, "  Allowed origins: %s\n", strings.Join(p.AllowedOrigins, ", "))
			fmt.Fprintf(out, "  Allow credentials: %v\n", p.AllowCredentials)
			fmt.Fprintf(out, "  Allowed methods: %s\n", strings.Join(p.Methods(), ", "))
			fmt.Fprintf(out, "  Allowed headers: %s\n", strings.Join(p.Headers(), ", "))
			fmt.Fprintf(out, "  Max-Age: %d\n", p.MaxAge)
			return nil
		},
	}
	addConfigFlag(cmd, &configPath)
	return cmd
}

func addConfigFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "config", "", "Path to a YAML config file (default $"+config.ConfigPathEnv+")")
}

func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
