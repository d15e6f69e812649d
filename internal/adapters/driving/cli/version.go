package cli

import (
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print the version number",
	Long:        `Print the rulebook version. With --verbose, also print the Go version and the VCS revision the binary was built from.`,
	Annotations: noServices,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("rulebook version %s\n", version)
		if !opts.Verbose {
			return
		}
		cmd.Printf("go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		if rev := buildRevision(); rev != "" {
			cmd.Printf("revision: %s\n", rev)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// buildRevision returns the vcs.revision stamped by the Go toolchain, if any.
func buildRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}
