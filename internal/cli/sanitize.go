package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/njchilds90/simplehtml"
)

// Opener opens named inputs for the sanitize command.
type Opener interface {
	Open(name string) (io.ReadCloser, error)
}

// NewSanitizeCmd creates the sanitize subcommand. Each argument names a
// file to sanitize; with no arguments, or "-", stdin is read.
func NewSanitizeCmd(opener Opener) *cobra.Command {
	var newline bool

	cmd := &cobra.Command{
		Use:   "sanitize [file...]",
		Short: "Sanitize files or stdin and write safe HTML to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"-"}
			}
			for _, name := range args {
				if err := sanitizeOne(cmd, opener, name, newline); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&newline, "newline", "n", false, "Write a newline after each sanitized input")

	return cmd
}

func sanitizeOne(cmd *cobra.Command, opener Opener, name string, newline bool) error {
	var r io.Reader
	if name == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := opener.Open(name)
		if err != nil {
			return fmt.Errorf("opening %s: %w", name, err)
		}
		defer f.Close()
		r = f
	}

	out, err := simplehtml.SanitizeReader(r)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}

	w := cmd.OutOrStdout()
	if _, err := io.WriteString(w, out.String()); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if newline {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return nil
}

// fileOpener implements Opener using OS file I/O.
type fileOpener struct{}

func newFileOpener() *fileOpener {
	return &fileOpener{}
}

func (fileOpener) Open(name string) (io.ReadCloser, error) {
	return os.Open(name)
}
