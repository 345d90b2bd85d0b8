package main

import (
	"os"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/sshwire/lib/config"
	"github.com/spf13/cobra"
)

var log = logger.GetGoI2PLogger()

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "sshwire",
		Short:         "SSH transport framing toolkit",
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.InitConfig()
		},
	}
	root.PersistentFlags().StringVar(&config.CfgFile, "config", "", "config file (default $HOME/.sshwire/config.yaml)")
	root.AddCommand(newProbeCommand())
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.WithError(err).Error("sshwire failed")
		os.Exit(1)
	}
}
