package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"alfredoptarigan/rfp-evaluator/internal/app"
	"alfredoptarigan/rfp-evaluator/internal/config"
	"alfredoptarigan/rfp-evaluator/internal/logger"
)

const appName = "rfpctl"

// cli carries the global flags shared by every subcommand.
type cli struct {
	cfgFile string
	flags   *viper.Viper
}

func newRootCmd() *cobra.Command {
	c := &cli{flags: viper.New()}

	root := &cobra.Command{
		Use:          appName,
		Short:        "rfpctl scores RFP documents against the company capability profile",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return c.loadSettings()
		},
	}

	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "settings file (yaml, json, toml) using the environment variable names as keys")
	root.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	root.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	_ = c.flags.BindPFlag("debug", root.PersistentFlags().Lookup("debug"))
	_ = c.flags.BindPFlag("json", root.PersistentFlags().Lookup("json"))

	root.AddCommand(
		newScoreCmd(),
		newCapabilityCmd(c),
		newEvaluateCmd(c),
		newVersionCmd(),
	)

	return root
}

// loadSettings exports the keys of the --config file as environment variables
// so config.Load picks them up. Variables already set in the environment win.
func (c *cli) loadSettings() error {
	if c.cfgFile == "" {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(c.cfgFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading settings file %q: %w", c.cfgFile, err)
	}

	for _, key := range v.AllKeys() {
		env := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if _, set := os.LookupEnv(env); set {
			continue
		}
		if err := os.Setenv(env, v.GetString(key)); err != nil {
			return fmt.Errorf("exporting %s: %w", env, err)
		}
	}

	return nil
}

func (c *cli) logger() (*zap.Logger, error) {
	log, err := logger.New(c.flags.GetBool("json"), c.flags.GetBool("debug"))
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}
	return log, nil
}

// core connects to the database. Callers must Close the returned Core.
func (c *cli) core() (*app.Core, *zap.Logger, error) {
	log, err := c.logger()
	if err != nil {
		return nil, nil, err
	}

	core, err := app.NewCore(config.Load(), log)
	if err != nil {
		return nil, nil, err
	}
	return core, log, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
