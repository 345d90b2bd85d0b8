package main

import (
	"context"
	"io"
	"net"
	"time"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/sshwire/lib/common/sshio"
	"github.com/go-i2p/sshwire/lib/config"
	"github.com/go-i2p/sshwire/lib/transport/messages"
	"github.com/go-i2p/sshwire/lib/transport/session"
	"github.com/go-i2p/sshwire/lib/util"
	"github.com/go-i2p/sshwire/lib/util/signals"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

const defaultSSHPort = "22"

// maxSkippedMessages bounds the SSH_MSG_IGNORE and SSH_MSG_DEBUG messages tolerated
// before the server KEXINIT.
const maxSkippedMessages = 16

type probeOptions struct {
	parallel    int
	rate        float64
	sendKexInit bool
}

// ProbeReport is the YAML record printed for each probed host.
type ProbeReport struct {
	Host           string           `yaml:"host"`
	Identification string           `yaml:"identification,omitempty"`
	ProtoVersion   string           `yaml:"proto_version,omitempty"`
	Software       string           `yaml:"software,omitempty"`
	Comments       string           `yaml:"comments,omitempty"`
	Algorithms     *AlgorithmReport `yaml:"algorithms,omitempty"`
	SentKexInit    bool             `yaml:"sent_kexinit,omitempty"`
	Elapsed        time.Duration    `yaml:"elapsed"`
	Error          string           `yaml:"error,omitempty"`
	ErrorKind      string           `yaml:"error_kind,omitempty"`
}

// AlgorithmReport lists what the server announced in its KEXINIT.
type AlgorithmReport struct {
	Kex                   []string `yaml:"kex"`
	HostKey               []string `yaml:"host_key"`
	CiphersClientToServer []string `yaml:"ciphers_client_to_server"`
	CiphersServerToClient []string `yaml:"ciphers_server_to_client"`
	MACsClientToServer    []string `yaml:"macs_client_to_server"`
	MACsServerToClient    []string `yaml:"macs_server_to_client"`
	Compression           []string `yaml:"compression"`
	FirstKexPacketFollows bool     `yaml:"first_kex_packet_follows"`
}

func newAlgorithmReport(k *messages.KexInit) *AlgorithmReport {
	return &AlgorithmReport{
		Kex:                   k.KexAlgorithms,
		HostKey:               k.ServerHostKeyAlgorithms,
		CiphersClientToServer: k.EncryptionAlgorithmsClientToServer,
		CiphersServerToClient: k.EncryptionAlgorithmsServerToClient,
		MACsClientToServer:    k.MACAlgorithmsClientToServer,
		MACsServerToClient:    k.MACAlgorithmsServerToClient,
		Compression:           k.CompressionAlgorithmsServerToClient,
		FirstKexPacketFollows: bool(k.FirstKexPacketFollows),
	}
}

func newProbeCommand() *cobra.Command {
	opts := probeOptions{}
	cmd := &cobra.Command{
		Use:   "probe host[:port]...",
		Short: "Exchange identification and KEXINIT with SSH servers and report what they announce",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.CurrentConfig()
			if err := config.Validate(cfg); err != nil {
				return err
			}

			go signals.Handle()
			defer signals.StopHandle()
			closeID := signals.RegisterInterruptHandler(util.CloseAll)
			defer signals.DeregisterInterruptHandler(closeID)
			ctx, cancel := signals.NotifyContext(cmd.Context())
			defer cancel()

			reports, err := probeAll(ctx, args, cfg, opts)
			if encErr := writeReports(cmd.OutOrStdout(), reports); encErr != nil {
				return encErr
			}
			return err
		},
	}
	cmd.Flags().IntVar(&opts.parallel, "parallel", 4, "hosts probed at the same time")
	cmd.Flags().Float64Var(&opts.rate, "rate", 0, "connection attempts per second, 0 for no limit")
	cmd.Flags().BoolVar(&opts.sendKexInit, "send-kexinit", false, "answer with our own KEXINIT before disconnecting")
	return cmd
}

// probeAll probes every host and returns the reports in argument order. The error is
// non-nil when at least one probe failed; the failures are described in the reports.
func probeAll(ctx context.Context, hosts []string, cfg config.Config, opts probeOptions) ([]ProbeReport, error) {
	limit := rate.Inf
	if opts.rate > 0 {
		limit = rate.Limit(opts.rate)
	}
	limiter := rate.NewLimiter(limit, 1)

	reports := make([]ProbeReport, len(hosts))
	g, gctx := errgroup.WithContext(ctx)
	if opts.parallel > 0 {
		g.SetLimit(opts.parallel)
	}
	failed := 0
	for i, host := range hosts {
		g.Go(func() error {
			reports[i] = probeHost(gctx, limiter, host, cfg, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return reports, err
	}
	for _, r := range reports {
		if r.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return reports, oops.Errorf("%d of %d probes failed", failed, len(hosts))
	}
	return reports, nil
}

// probeHost runs one probe and never returns an error; failures are recorded in the report.
func probeHost(ctx context.Context, limiter *rate.Limiter, host string, cfg config.Config, opts probeOptions) ProbeReport {
	addr := withDefaultPort(host)
	report := ProbeReport{Host: addr}
	start := time.Now()
	err := runProbe(ctx, limiter, addr, cfg, opts, &report)
	report.Elapsed = time.Since(start).Round(time.Millisecond)
	if err != nil {
		report.Error = err.Error()
		report.ErrorKind = sshio.KindOf(err).String()
		log.WithFields(logger.Fields{
			"at":   "probeHost",
			"addr": addr,
			"kind": report.ErrorKind,
		}).WithError(err).Warn("probe_failed")
	}
	return report
}

func runProbe(ctx context.Context, limiter *rate.Limiter, addr string, cfg config.Config, opts probeOptions, report *ProbeReport) error {
	if err := limiter.Wait(ctx); err != nil {
		return sshio.ContextError(ctx, err)
	}
	s, err := session.Dial(ctx, addr, cfg)
	if err != nil {
		return err
	}
	unregister := util.RegisterCloser(s)
	defer unregister()
	defer s.Close()

	if err := s.Handshake(ctx); err != nil {
		return err
	}
	peer := s.PeerIdentification()
	report.Identification = peer.Raw
	report.ProtoVersion = peer.ProtoVersion
	report.Software = peer.SoftwareVersion
	report.Comments = peer.Comments

	kex, err := readServerKexInit(ctx, s)
	if err != nil {
		return err
	}
	report.Algorithms = newAlgorithmReport(kex)

	if opts.sendKexInit {
		ours, err := messages.NewKexInit(messages.DefaultPreferences())
		if err != nil {
			return err
		}
		if err := s.WriteMessage(ctx, ours); err != nil {
			return err
		}
		report.SentKexInit = true
	}
	return s.Disconnect(ctx, messages.DisconnectByApplication, "probe complete")
}

// readServerKexInit returns the first KEXINIT, skipping SSH_MSG_IGNORE and SSH_MSG_DEBUG.
func readServerKexInit(ctx context.Context, s *session.Session) (*messages.KexInit, error) {
	for i := 0; i < maxSkippedMessages; i++ {
		msg, err := s.ReadMessage(ctx)
		if err != nil {
			return nil, err
		}
		switch m := msg.(type) {
		case *messages.KexInit:
			return m, nil
		case *messages.Ignore, *messages.Debug:
			continue
		case *messages.Disconnect:
			return nil, oops.Errorf("server disconnected: %s: %s",
				messages.DisconnectReasonString(uint32(m.ReasonCode)), string(m.Description))
		default:
			return nil, sshio.Violationf("expected %s, got %s",
				messages.MessageTypeName(messages.MsgKexInit), messages.MessageTypeName(msg.MessageType()))
		}
	}
	return nil, sshio.Violationf("no %s within %d messages", messages.MessageTypeName(messages.MsgKexInit), maxSkippedMessages)
}

func withDefaultPort(host string) string {
	if _, _, err := net.SplitHostPort(host); err == nil {
		return host
	}
	return net.JoinHostPort(host, defaultSSHPort)
}

func writeReports(w io.Writer, reports []ProbeReport) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(reports); err != nil {
		return oops.Wrapf(err, "encoding probe report")
	}
	return enc.Close()
}
