package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbeckwith/rust-latest/internal/config"
	"github.com/dbeckwith/rust-latest/internal/manifest"
	"github.com/dbeckwith/rust-latest/internal/platform"
	"github.com/dbeckwith/rust-latest/internal/resolver"
)

var (
	cfgFile string
	Cfg     *config.Config
	Version string

	channelFlag   string
	profileFlag   string
	maxAgeFlag    int
	targetsFlag   string
	forceDateFlag bool
)

var RootCmd = &cobra.Command{
	Use:   "rust-latest",
	Short: "Determines the last known complete build of a Rust toolchain",
	Long: `Determines the last known complete build of a Rust toolchain.

Walks a release channel's manifests backward from the latest published date
and prints the newest toolchain whose packages are all available for the
selected profile and targets.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := Cfg.Resolve
		if cmd.Flags().Changed("channel") {
			opts.Channel = channelFlag
		}
		if cmd.Flags().Changed("profile") {
			opts.Profile = profileFlag
		}
		if cmd.Flags().Changed("max-age") {
			opts.MaxAge = maxAgeFlag
		}
		if cmd.Flags().Changed("targets") {
			opts.Targets = targetsFlag
		}
		if cmd.Flags().Changed("force-date") {
			opts.ForceDate = forceDateFlag
		}

		if err := validateOptions(opts); err != nil {
			return err
		}

		targets, ignored, err := selectTargets(opts.Targets)
		if err != nil {
			return err
		}

		r := resolver.New(Cfg.Dist.BaseURL, manifest.NewFetcher())
		m, err := r.Resolve(cmd.Context(), resolver.Options{
			Channel:         opts.Channel,
			Profile:         opts.Profile,
			MaxAge:          opts.MaxAge,
			IgnoredPackages: ignored,
			Targets:         targets,
		})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), resolver.ToolchainName(m, opts.Channel, opts.ForceDate))
		return nil
	},
}

func validateOptions(opts config.ResolveConfig) error {
	switch opts.Profile {
	case "complete", "default", "minimal":
	default:
		return fmt.Errorf("invalid profile %q: must be one of complete, default, minimal", opts.Profile)
	}

	switch opts.Targets {
	case "all", "current":
	default:
		return fmt.Errorf("invalid targets %q: must be one of all, current", opts.Targets)
	}

	if opts.MaxAge <= 0 {
		return fmt.Errorf("invalid max-age %d: must be positive", opts.MaxAge)
	}

	return nil
}

// selectTargets resolves the target selection mode into the concrete target
// list and the matching ignored-package set.
func selectTargets(mode string) (targets, ignored []string, err error) {
	if mode == "current" {
		current, err := platform.CurrentTarget()
		if err != nil {
			return nil, nil, err
		}
		return []string{current}, platform.IgnoredPackages(current), nil
	}
	return platform.Tier1Targets, platform.BaseIgnoredPackages(), nil
}

func Execute(version string) error {
	Version = version
	return RootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./rust-latest.yaml)")
	RootCmd.Flags().StringVarP(&channelFlag, "channel", "c", "stable", "release channel to use")
	RootCmd.Flags().StringVarP(&profileFlag, "profile", "p", "default", "package profile to use (complete|default|minimal)")
	RootCmd.Flags().IntVarP(&maxAgeFlag, "max-age", "a", 90, "number of days back to search for viable builds, relative to the latest release of the channel")
	RootCmd.Flags().StringVarP(&targetsFlag, "targets", "t", "all", "set of targets to filter by, either all Tier-1 targets or only the current one (all|current)")
	RootCmd.Flags().BoolVarP(&forceDateFlag, "force-date", "d", false, "use date-stamped toolchain names like stable-2019-04-25 instead of version numbers for stable releases")
}

func initConfig() {
	var err error

	Cfg, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: configuration could not be loaded: %v\n", err)
		os.Exit(1)
	}
}
