package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jbaldus/shorten/config"
	"github.com/jbaldus/shorten/logger"
	"github.com/jbaldus/shorten/utils"
)

var (
	configArg    string
	configGenArg string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "shorten configuration",
	RunE: func(_ *cobra.Command, _ []string) error {
		if configGenArg != "" {
			return writeDiskConfig()
		}
		return nil
	},
}

func writeDiskConfig() error {
	file, err := utils.ExpandPath(configGenArg)
	if err != nil {
		return err
	}
	if _, err = os.Stat(file); errors.Is(err, os.ErrNotExist) {
		if err = os.MkdirAll(filepath.Dir(file), os.ModePerm); err != nil {
			return err
		}
		bytes, err := yaml.Marshal(config.DefaultConfig())
		if err != nil {
			return err
		}
		return os.WriteFile(file, bytes, 0o600)
	}
	return errors.New("configuration file already exists")
}

func init() {
	configCmd.Flags().StringVarP(&configGenArg, "gen", "g", "", "generate default configuration file")
	rootCmd.PersistentFlags().StringVar(&configArg, "config", config.DefaultPath, "config file path")
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	cfg, err := config.ReadConfig(configArg)
	if err != nil {
		logger.Error("error reading config file", "error", err)
		cfg = config.DefaultConfig()
	}
	rootCmd.SetContext(config.NewContext(context.Background(), cfg))
}
