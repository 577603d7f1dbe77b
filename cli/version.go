package cli

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X github.com/pablor21/gondoc/cli.Version=...".
var Version = ""

// GetVersion returns Version, or the module version or VCS revision
// recorded in the binary.
func GetVersion() string {
	if Version != "" {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}

		var revision, modified string
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				revision = setting.Value
			case "vcs.modified":
				modified = setting.Value
			}
		}

		if revision != "" {
			if len(revision) > 7 {
				revision = revision[:7]
			}
			if modified == "true" {
				return revision + "-dirty"
			}
			return revision
		}
	}

	return "dev"
}

type versionPayload struct {
	Tool    string `json:"tool"`
	Version string `json:"version"`
	Go      string `json:"go"`
}

func newVersionCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the gondoc version",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := versionPayload{Tool: "gondoc", Version: GetVersion(), Go: runtime.Version()}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(payload)
			}
			bold := color.New(color.Bold)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", bold.Sprint(payload.Tool), payload.Version, payload.Go)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
