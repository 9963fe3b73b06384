// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kushview/eltool/internal/issue"
	"github.com/kushview/eltool/pkg/osc"
	"github.com/kushview/eltool/pkg/types"
)

// newOSCCommand creates the `eltool osc` command tree.
func newOSCCommand(app *App) *cobra.Command {
	oscCmd := &cobra.Command{
		Use:   "osc",
		Short: "Send and receive OSC messages",
		Long: `Send and receive Open Sound Control messages over UDP.

Element OSC addresses:
  /element/command       application commands (one string argument)
  /element/engine        engine parameters ("samplerate" <int>)

UDP is connectionless: a successful send does not mean the engine received
the message. Make sure Element is running with OSC enabled.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	oscCmd.AddCommand(newOSCSendCommand(app), newOSCRawCommand(app), newOSCListenCommand(app))
	return oscCmd
}

func newOSCSendCommand(app *App) *cobra.Command {
	var (
		sampleRate int32
		command    string
	)

	cmd := &cobra.Command{
		Use:   "send [host] [port]",
		Short: "Send engine and command messages to Element",
		Example: `  eltool osc send --samplerate 48000
  eltool osc send 127.0.0.1 9000 --command quit
  eltool osc send myhost.local 8000 --samplerate 44100 --command save`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.oscClient(args)
			if err != nil {
				return app.fail(types.ExitFailure, err, nil)
			}

			var msgs []*osc.Message
			var labels []string
			if cmd.Flags().Changed("samplerate") {
				msgs = append(msgs, osc.SampleRateMessage(sampleRate))
				labels = append(labels, fmt.Sprintf("samplerate=%d", sampleRate))
			}
			if cmd.Flags().Changed("command") {
				msgs = append(msgs, osc.CommandMessage(command))
				labels = append(labels, "command="+command)
			}
			return runOSCSend(cmd.Context(), app, client, msgs, labels)
		},
	}

	cmd.Flags().Int32Var(&sampleRate, "samplerate", 0, "set the engine sample rate (e.g. 48000)")
	cmd.Flags().StringVar(&command, "command", "", "send an application command (e.g. quit, save)")
	return cmd
}

func runOSCSend(ctx context.Context, app *App, client *osc.Client, msgs []*osc.Message, labels []string) error {
	fmt.Fprintln(app.stdout, TitleStyle.Render("Element OSC Sender"))
	fmt.Fprintf(app.stdout, "Target: %s\n\n", client.Target())

	if len(msgs) == 0 {
		fmt.Fprintln(app.stdout, WarningStyle.Render("No message sent. Use --samplerate or --command to send OSC messages."))
		fmt.Fprintln(app.stdout, "Run with --help for usage information.")
		return nil
	}

	failed := false
	for i, msg := range msgs {
		if err := client.Send(ctx, msg); err != nil {
			failed = true
			fmt.Fprintln(app.stdout, ErrorStyle.Render(crossMark), describeSendError(err))
			continue
		}
		fmt.Fprintln(app.stdout, SuccessStyle.Render(checkMark), "Sent", labels[i])
	}
	fmt.Fprintln(app.stdout)

	if failed {
		if app.Verbose() {
			app.renderIssue(issue.Get(issue.HostUnreachableId))
		}
		return &ExitError{Code: types.ExitFailure}
	}
	return nil
}

func describeSendError(err error) string {
	var resolveErr *osc.ResolveError
	if errors.As(err, &resolveErr) {
		return "Hostname resolution failed: " + resolveErr.Host
	}
	return "Send failed: " + err.Error()
}

func newOSCRawCommand(app *App) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "raw <address> [tag:value...]",
		Short: "Send one OSC message with typed arguments",
		Long: `Send one OSC message. Arguments are typed with a tag prefix:

  i:42   int32        h:42   int64
  f:0.5  float32      d:0.5  float64
  s:text string       T F N  true, false, nil

Untagged arguments are sent as strings.`,
		Example: `  eltool osc raw /element/engine s:samplerate i:48000
  eltool osc raw /element/command quit --host 10.0.0.2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			oscArgs, err := osc.ParseArguments(args[1:])
			if err != nil {
				return app.fail(types.ExitFailure, err, nil)
			}
			msg := osc.NewMessage(args[0], oscArgs...)
			if err := msg.Validate(); err != nil {
				return app.fail(types.ExitFailure, err, nil)
			}

			hostPort := []string{}
			if cmd.Flags().Changed("host") {
				hostPort = append(hostPort, host)
				if cmd.Flags().Changed("port") {
					hostPort = append(hostPort, strconv.Itoa(port))
				}
			} else if cmd.Flags().Changed("port") {
				hostPort = append(hostPort, app.Cfg().OSC.Host, strconv.Itoa(port))
			}
			client, err := app.oscClient(hostPort)
			if err != nil {
				return app.fail(types.ExitFailure, err, nil)
			}

			if err := client.Send(cmd.Context(), msg); err != nil {
				fmt.Fprintln(app.stdout, ErrorStyle.Render(crossMark), describeSendError(err))
				return &ExitError{Code: types.ExitFailure}
			}
			fmt.Fprintln(app.stdout, SuccessStyle.Render(checkMark), "Sent", msg.String(), "to", client.Target())
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "destination host (default from osc.host)")
	cmd.Flags().IntVar(&port, "port", 0, "destination port (default from osc.port)")
	return cmd
}

func newOSCListenCommand(app *App) *cobra.Command {
	var (
		addr    string
		pattern string
		count   int
	)

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Print OSC messages received on a UDP port",
		Example: `  eltool osc listen --addr :9000
  eltool osc listen --pattern '/element/*'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = ":" + app.Cfg().OSC.Port.String()
			}
			if pattern != "" && !strings.HasPrefix(pattern, "/") {
				return app.fail(types.ExitFailure, fmt.Errorf("%w: pattern %q", osc.ErrInvalidAddress, pattern), nil)
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			received := 0
			srv := &osc.Server{Addr: addr, Pattern: pattern, Logger: app.Logger}
			handler := osc.HandlerFunc(func(msg *osc.Message, from net.Addr) {
				fmt.Fprintf(app.stdout, "%s %s\n", SubtitleStyle.Render(from.String()), msg.String())
				received++
				if count > 0 && received >= count {
					cancel()
				}
			})

			app.Logger.Info("listening for OSC messages", "addr", addr)
			if err := srv.ListenAndServe(ctx, handler); err != nil {
				return app.fail(types.ExitFailure, issue.WrapWithOperation(err, "listen on "+addr), nil)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "UDP address to listen on (default :<osc.port>)")
	cmd.Flags().StringVar(&pattern, "pattern", "", "only print messages matching this OSC address pattern")
	cmd.Flags().IntVar(&count, "count", 0, "exit after this many messages (0 means run until interrupted)")
	return cmd
}

// oscClient builds a client from optional [host] [port] arguments with the
// configured target as fallback.
func (a *App) oscClient(args []string) (*osc.Client, error) {
	cfg := a.Cfg()
	host, port := cfg.OSC.Host, cfg.OSC.Port

	if len(args) > 0 {
		host = args[0]
	}
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %q", types.ErrInvalidPort, args[1])
		}
		port = types.Port(n)
	}
	if err := port.ValidateDestination(); err != nil {
		return nil, err
	}

	opts := []osc.ClientOption{osc.WithLogger(a.Logger)}
	if a.Resolver != nil {
		opts = append(opts, osc.WithResolver(a.Resolver))
	}
	return osc.NewClient(host, port, opts...), nil
}
