// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

// Package cli builds the tangoctl and tangoktl command trees. Both
// binaries share every device-facing command; tangoktl adds the
// Kubernetes commands and the namespace flag on top.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ska-telescope/ska-tangoctl-sub000/internal/clierr"
	"github.com/ska-telescope/ska-tangoctl-sub000/internal/config"
)

// Options configures the binary-specific surface of the command tree.
type Options struct {
	Name       string
	Kubernetes bool
	BuildTag   string
	BuildDate  string
}

var (
	flagHost    string
	flagPort    int
	flagCfgFile string
	flagDemo    bool
	flagInfo    bool
	flagDebug   bool
	flagQuiet   bool
	flagSilent  bool
	flagK8sNS   string

	appOpts Options
	appCfg  config.Config
	appLog  zerolog.Logger
)

// NewRoot builds the full command tree for one binary.
func NewRoot(opts Options) *cobra.Command {
	appOpts = opts

	short := "Inspect and administer Tango device servers"
	long := opts.Name + ` - inspect and administer Tango device servers

Reads devices, their attributes, commands and properties from a Tango
database and renders them as text, JSON, YAML, Markdown or HTML.
Commands are only ever invoked when they are on the configured safe
lists.

Environment Variables:
  TANGO_HOST              Tango database host:port (overridden by -H)
`
	if opts.Kubernetes {
		long += `  KUBECONFIG              Path to kubeconfig file (default: ~/.kube/config)
`
	}

	root := &cobra.Command{
		Use:           opts.Name,
		Short:         short,
		Long:          long,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			appLog = newLogger()
			var err error
			appCfg, err = config.Read(appLog, flagCfgFile)
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flagHost, "host", "H", "", "Tango database host (host or host:port)")
	pf.IntVarP(&flagPort, "port", "p", 0, "Tango database port (default from configuration)")
	pf.StringVarP(&flagCfgFile, "cfg", "X", "", "Configuration file overriding built-in defaults")
	pf.BoolVar(&flagDemo, "demo", false, "Use the built-in demo devices instead of a live system")
	pf.BoolVarP(&flagInfo, "info", "v", false, "Info-level logging")
	pf.BoolVarP(&flagDebug, "debug", "V", false, "Debug-level logging")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	pf.BoolVarP(&flagSilent, "silent", "Q", false, "Errors only")
	if opts.Kubernetes {
		pf.StringVarP(&flagK8sNS, "k8s-ns", "K", "",
			"Kubernetes namespace(s): comma-separated names or a regular expression")
	}

	root.AddCommand(infoCmd, readCmd, writeCmd, ctlCmd, scriptCmd, checkCmd, tuiCmd)
	root.AddCommand(newVersionCmd(opts), newCompletionCmd(opts))
	if opts.Kubernetes {
		root.AddCommand(nsCmd, podsCmd, svcsCmd, serveCmd)
	}
	return root
}

// Execute runs the command tree and exits non-zero on failure.
func Execute(opts Options) {
	if err := NewRoot(opts).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, clierr.Pretty(err))
		os.Exit(1)
	}
}

func newVersionCmd(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (built %s)\n", opts.Name, opts.BuildTag, opts.BuildDate)
		},
	}
}

func newCompletionCmd(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion script",
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.ExactArgs(1),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
}
