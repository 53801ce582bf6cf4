package repl

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/calc/log"
)

const defaultEditor = "vi"

// editLineCommand implements [tea.ExecCommand]. It writes the pending
// expression to a temp file, opens the user's editor on it, and keeps the
// first non-blank line of the result.
type editLineCommand struct {
	ctxFunc func() context.Context
	logger  log.Logger
	text    string
	edited  string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editLineCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editLineCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editLineCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run opens the editor and records the edited line.
func (c *editLineCommand) Run() error {
	ctx := c.ctxFunc()

	f, err := os.CreateTemp(os.TempDir(), "calc-edit-*.txt")
	if err != nil {
		return ErrEditor.Wrap(err)
	}

	path := f.Name()

	defer os.Remove(path)

	_, err = f.WriteString(c.text + "\n")
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return ErrEditor.Wrap(err)
	}

	if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, path); err != nil {
		return ErrEditor.Wrap(err).With(slog.String("file", path))
	}

	c.edited, err = firstLine(path)
	if err != nil {
		return ErrEditor.Wrap(err).With(slog.String("file", path))
	}

	c.logger.TraceContext(ctx, "editor closed",
		slog.Int("length", len(c.edited)),
	)

	return nil
}

// firstLine returns the first non-blank line of the file at path.
func firstLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			return line, nil
		}
	}

	return "", scanner.Err()
}

// runEditor launches the user's editor on the given file path.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	args := strings.Fields(os.Getenv("VISUAL"))
	if len(args) == 0 {
		args = strings.Fields(os.Getenv("EDITOR"))
	}

	if len(args) == 0 {
		args = []string{defaultEditor}
	}

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
