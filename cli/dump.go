package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/pablor21/gondoc"
	"github.com/pablor21/gondoc/types"
)

// DumpFormats lists the formats accepted by the dump command.
var DumpFormats = []string{"json", "yaml", "toml", "msgpack"}

func newDumpCommand(opts *rootOptions) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "dump [packages...]",
		Short: "Print the resolved documentation tables",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if !slices.Contains(DumpFormats, normalizeFormat(format)) {
				return unsupportedFormat(format)
			}
			cfg, err := opts.loadConfig(cmd, args)
			if err != nil {
				return err
			}
			res, err := gondoc.ProcessWithContext(cmd.Context(), newContext(cmd, cfg))
			if err != nil {
				return err
			}
			if err := printDiagnostics(cmd, cfg, res, false); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, createErr := os.Create(out)
				if createErr != nil {
					return fmt.Errorf("failed to create %s: %w", out, createErr)
				}
				defer func() {
					if cerr := f.Close(); cerr != nil && err == nil {
						err = fmt.Errorf("failed to write %s: %w", out, cerr)
					}
				}()
				w = f
			}
			return Encode(w, format, types.Export(res.Packages...))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format ("+strings.Join(DumpFormats, "|")+")")
	cmd.Flags().StringVar(&out, "out", "", "write to a file instead of stdout")
	return cmd
}

// Encode writes docs to w in the given format.
func Encode(w io.Writer, format string, docs types.ExportedDocs) error {
	switch normalizeFormat(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(docs); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(w).Encode(docs)
	case "msgpack":
		return msgpack.NewEncoder(w).Encode(docs)
	}
	return unsupportedFormat(format)
}

func normalizeFormat(format string) string {
	format = strings.ToLower(format)
	if format == "yml" {
		return "yaml"
	}
	return format
}

func unsupportedFormat(format string) error {
	return fmt.Errorf("unsupported format %q (must be one of %s)", format, strings.Join(DumpFormats, ", "))
}
