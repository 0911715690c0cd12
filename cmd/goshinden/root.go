package main

import (
	"fmt"

	"github.com/alvarorichard/Goshinden/internal/config"
	"github.com/alvarorichard/Goshinden/internal/util"
	"github.com/alvarorichard/Goshinden/pkg/goshinden"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries what every subcommand needs once the root pre-run has loaded
// the configuration.
type app struct {
	configFile string
	v          *viper.Viper
	client     *goshinden.Client
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "goshinden",
		Short: "Browse shinden.pl from the terminal",
		Long: "goshinden searches shinden.pl, shows series details and episode lists, " +
			"lists the players of an episode and resolves their embed URLs.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if util.PerfEnabled {
				fmt.Fprintln(cmd.ErrOrStderr(), util.GetPerfTracker().Report())
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "path to goshinden.toml")
	flags.Bool("debug", false, "enable debug logging and stack traces")
	flags.BoolVar(&util.PerfEnabled, "perf", false, "print request timings and counters after the command")
	flags.String("base-url", "", "site origin")
	flags.String("cookie", "", "cookie sent with every request")
	flags.Int("max-retries", 0, "attempts per page until it verifies")
	flags.Bool("bypass-cloudflare", false, "use a Cloudflare-friendly transport")

	root.AddCommand(
		newSearchCmd(a),
		newInfoCmd(a),
		newEpisodesCmd(a),
		newPlayersCmd(a),
		newResolveCmd(a),
		newVersionCmd(),
	)
	return root
}

var flagKeys = map[string]string{
	"debug":             config.KeyDebug,
	"base-url":          config.KeyBaseURL,
	"cookie":            config.KeyCookie,
	"max-retries":       config.KeyMaxRetries,
	"bypass-cloudflare": config.KeyBypassCloudflare,
}

func (a *app) setup(cmd *cobra.Command) error {
	v, err := config.Load(a.configFile)
	if err != nil {
		return err
	}

	// only flags the user actually set override file and env values
	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag != nil && flag.Changed {
			if err := v.BindPFlag(key, flag); err != nil {
				return err
			}
		}
	}

	util.SetDebugMode(config.Debug(v))
	util.InitLogger()
	util.Debug("Configuration loaded", "file", v.ConfigFileUsed(), "base_url", v.GetString(config.KeyBaseURL))

	client, err := goshinden.NewClientWithOptions(config.Options(v))
	if err != nil {
		return err
	}

	a.v = v
	a.client = client
	return nil
}
