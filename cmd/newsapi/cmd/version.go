package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/tbourn/go-news-api/internal/sysutil"
)

// Set with -ldflags "-X github.com/tbourn/go-news-api/cmd/newsapi/cmd.Version=...".
var (
	Version   = ""
	GitCommit = "development"
	BuildDate = "unknown"
)

// version prefers the linker value, then APP_VERSION, then "dev".
func version() string {
	return sysutil.FirstNonEmpty(Version, os.Getenv("APP_VERSION"), "dev")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "newsapi %s\n", version())
		fmt.Fprintf(out, "  Git Commit: %s\n", GitCommit)
		fmt.Fprintf(out, "  Build Date: %s\n", BuildDate)
		fmt.Fprintf(out, "  Go Version: %s\n", runtime.Version())
		fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
