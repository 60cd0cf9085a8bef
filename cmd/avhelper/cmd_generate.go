package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/avhelper/autovalue"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var generateShort = map[autovalue.Mode]string{
	autovalue.ModeBuilder: "Generate or update the builder of an @AutoValue class",
	autovalue.ModeCreate:  "Generate or update the create() factory of an @AutoValue class",
}

func newGenerateCmd(mode autovalue.Mode) *cobra.Command {
	var opts targetOptions
	var write bool

	cmd := &cobra.Command{
		Use:   mode.String() + " <file>",
		Short: generateShort[mode],
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			cfg := opts.config()

			target, err := opts.load(path, cfg)
			if errors.Is(err, autovalue.ErrNotApplicable) {
				log.Noticef("%s", err)
				warningColor.Fprint(cmd.ErrOrStderr(), "skipped: ")
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return nil
			}
			if err != nil {
				return err
			}

			result, err := target.Generate(mode, cfg)
			if err != nil {
				return err
			}

			if !write {
				_, err := cmd.OutOrStdout().Write(result.Source)
				return err
			}
			if !result.Changed() {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s is up to date\n", path)
				return nil
			}

			info, err := os.Stat(path)
			if err != nil {
				return errors.Wrapf(err, "stat %s", path)
			}
			if err := os.WriteFile(path, result.Source, info.Mode().Perm()); err != nil {
				return errors.Wrapf(err, "write %s", path)
			}
			okColor.Fprint(cmd.ErrOrStderr(), "updated ")
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s for %s (%d edits)\n", path, mode, target.Class.Name, len(result.Edits))
			return nil
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to the file instead of printing it")

	return cmd
}
