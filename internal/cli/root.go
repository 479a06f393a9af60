package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"showroom/internal/config"
)

// NewRootCmd assembles the showroom command tree around v. Flags are bound
// to v so they take precedence over the environment.
func NewRootCmd(v *viper.Viper) *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:   "showroom",
		Short: "Luxury car showroom backend",
		Long: "showroom serves the dealership API (inventory, financing, test drives,\n" +
			"the virtual receptionist and visitor accounts) and forwards sales leads\n" +
			"to the lead worker.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			LoadEnvFile(envFile)
			return bindFlags(v, cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	if err := v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level")); err != nil {
		panic(err)
	}

	root.AddCommand(newServeCmd(v), newWorkerCmd(v), newCalcCmd(), newSheetsAuthCmd(v))
	return root
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd(config.NewViper()).Execute(); err != nil {
		os.Exit(1)
	}
}

const flagKeyPrefix = "viper:"

// configFlags records which flags of cmd override which config keys.
func configFlags(cmd *cobra.Command, keys map[string]string) {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	for key, name := range keys {
		cmd.Annotations[flagKeyPrefix+key] = name
	}
}

// bindFlags ties the running command's flags to their config keys. It runs
// per invocation because several commands share keys. A flag left unset
// falls back to the environment and then the defaults.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for ann, name := range cmd.Annotations {
		key, ok := strings.CutPrefix(ann, flagKeyPrefix)
		if !ok {
			continue
		}
		if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}
