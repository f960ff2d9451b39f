package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quillmd/quill/internal/constants"
	"github.com/quillmd/quill/internal/state"
	"github.com/quillmd/quill/pkg/cmd/root"
)

func Execute() {
	home, err := os.UserHomeDir()
	cobra.CheckErr(err)

	viper.AddConfigPath(home + constants.ConfigDir)
	viper.SetConfigName(constants.ConfigFile)
	viper.SetConfigType(constants.ConfigFileType)
	viper.ReadInConfig()

	s, err := state.NewState()
	if err != nil {
		fmt.Fprintf(os.Stderr, "quill: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	rootCmd := root.NewCmdRoot(s)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
