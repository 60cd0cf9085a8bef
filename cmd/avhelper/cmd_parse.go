package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dhamidi/avhelper/format"
	"github.com/dhamidi/avhelper/java"
	"github.com/dhamidi/avhelper/java/parser"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var includePositions bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a .java file and dump its declarations or syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return errors.Wrap(err, "read java file")
			}
			out := cmd.OutOrStdout()

			switch outputFormat {
			case "ast", "tree":
				opts := []parser.Option{parser.WithFile(filename), parser.WithComments()}
				if includePositions {
					opts = append(opts, parser.WithPositions())
				}
				p := parser.ParseCompilationUnit(bytes.NewReader(data), opts...)
				node := p.Finish()
				if node == nil {
					return errors.Wrapf(java.ErrIncomplete, "parse %s", filename)
				}
				if outputFormat == "tree" {
					if p.IncludesPositions() {
						fmt.Fprintln(out, node.StringWithPositions())
					} else {
						fmt.Fprintln(out, node.String())
					}
					return nil
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return errors.Wrap(enc.Encode(node), "encode json")
			}

			encoder, err := format.NewEncoder(outputFormat, out)
			if err != nil {
				return err
			}
			f, err := java.ParseFile(filename, data)
			if err != nil {
				return err
			}
			if f.HasErrors() {
				log.Warningf("%s contains syntax errors", filename)
			}
			for _, class := range f.Classes {
				if err := encoder.Encode(class); err != nil {
					return errors.Wrap(err, "encode")
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "line", "output format (line, json, java, ast, tree)")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "include token positions in tree output")

	return cmd
}
