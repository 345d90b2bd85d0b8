package config

import (
	"errors"
	"path/filepath"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/sshwire/lib/util"
	"github.com/samber/oops"
	"github.com/spf13/viper"
)

var (
	CfgFile string
	log     = logger.GetGoI2PLogger()
)

const SSHWIRE_BASE_DIR = ".sshwire"

// InitConfig registers defaults and merges the configuration file over them.
func InitConfig() error {
	if CfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(CfgFile)
	} else {
		viper.AddConfigPath(BuildDirPath())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	setDefaults()

	return handleConfigFile()
}

func setDefaults() {
	d := Defaults()

	viper.SetDefault("ssh.software_version", d.SSH.SoftwareVersion)
	viper.SetDefault("ssh.comments", d.SSH.Comments)
	viper.SetDefault("ssh.max_preamble_lines", d.SSH.MaxPreambleLines)
	viper.SetDefault("ssh.max_line_length", d.SSH.MaxLineLength)

	viper.SetDefault("wire.read_chunk_size", d.Wire.ReadChunkSize)
	viper.SetDefault("wire.max_packet_length", d.Wire.MaxPacketLength)
	viper.SetDefault("wire.padding_block_size", d.Wire.PaddingBlockSize)
	viper.SetDefault("wire.max_extra_padding_blocks", d.Wire.MaxExtraPaddingBlocks)
	viper.SetDefault("wire.strict_booleans", d.Wire.StrictBooleans)
	viper.SetDefault("wire.mac", d.Wire.MAC)

	viper.SetDefault("network.dial_timeout", d.Network.DialTimeout)
	viper.SetDefault("network.io_timeout", d.Network.IOTimeout)
}

// CurrentConfig reads the effective configuration from viper.
func CurrentConfig() Config {
	return Config{
		SSH: SSHConfig{
			SoftwareVersion:  viper.GetString("ssh.software_version"),
			Comments:         viper.GetString("ssh.comments"),
			MaxPreambleLines: viper.GetInt("ssh.max_preamble_lines"),
			MaxLineLength:    viper.GetInt("ssh.max_line_length"),
		},
		Wire: WireConfig{
			ReadChunkSize:         viper.GetInt("wire.read_chunk_size"),
			MaxPacketLength:       viper.GetInt("wire.max_packet_length"),
			PaddingBlockSize:      viper.GetInt("wire.padding_block_size"),
			MaxExtraPaddingBlocks: viper.GetInt("wire.max_extra_padding_blocks"),
			StrictBooleans:        viper.GetBool("wire.strict_booleans"),
			MAC:                   viper.GetString("wire.mac"),
		},
		Network: NetworkConfig{
			DialTimeout: viper.GetDuration("network.dial_timeout"),
			IOTimeout:   viper.GetDuration("network.io_timeout"),
		},
	}
}

func handleConfigFile() error {
	err := viper.ReadInConfig()
	if err == nil {
		log.WithField("file", viper.ConfigFileUsed()).Debug("using config file")
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if CfgFile == "" && errors.As(err, &notFound) {
		log.WithField("dir", BuildDirPath()).Debug("no config file, using defaults")
		return nil
	}
	return oops.Wrapf(err, "reading config file")
}

// BuildDirPath returns $HOME/.sshwire.
func BuildDirPath() string {
	return filepath.Join(util.UserHome(), SSHWIRE_BASE_DIR)
}
