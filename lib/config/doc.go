// Package config provides configuration management for sshwire.
//
// # Sources
//
// Values come from viper. Defaults are registered first, then a YAML file is merged over
// them: the file named by CfgFile if set, otherwise $HOME/.sshwire/config.yaml when it
// exists. A missing default file is not an error; the built-in defaults are used.
//
// # Keys
//
//	ssh.software_version          identification software version, no spaces or '-'
//	ssh.comments                  optional identification comments
//	ssh.max_preamble_lines        lines tolerated before the peer identification
//	ssh.max_line_length           longest line tolerated during the version exchange
//	wire.read_chunk_size          bytes requested from the connection per read
//	wire.max_packet_length        largest packet_length accepted from the peer
//	wire.padding_block_size       block size outgoing packets are aligned to
//	wire.max_extra_padding_blocks random extra padding blocks added per packet
//	wire.strict_booleans          reject boolean fields other than 0 and 1
//	wire.mac                      MAC algorithm name; only "none" is available
//	network.dial_timeout          TCP connect timeout
//	network.io_timeout            per-operation deadline when the caller sets none
//
// Use CurrentConfig to read the effective values after InitConfig.
package config
