package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"stegano/application/stego_codec"
	"stegano/domain/mode"
	"stegano/domain/stego"
	"strings"
)

var ErrMissingFlag = errors.New("missing required flag")

const fallbackFileName = "revealed.bin"

// Runner executes one subcommand against a codec.
type Runner struct {
	codec    *stego_codec.Codec
	strategy stego.Strategy
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
}

func NewRunner(
	codec *stego_codec.Codec,
	strategy stego.Strategy,
	stdin io.Reader,
	stdout, stderr io.Writer,
) *Runner {
	return &Runner{
		codec:    codec,
		strategy: strategy,
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
	}
}

func (r *Runner) Run(ctx context.Context, m mode.Mode, args []string) error {
	switch m {
	case mode.HideText:
		return r.hideText(ctx, args)
	case mode.RevealText:
		return r.revealText(ctx, args)
	case mode.HideFile:
		return r.hideFile(ctx, args)
	case mode.RevealFile:
		return r.revealFile(ctx, args)
	case mode.Capacity:
		return r.capacity(args)
	default:
		return mode.NewInvalidModeProvided(m.String())
	}
}

type commandFlags struct {
	set      *flag.FlagSet
	in       string
	out      string
	strategy stego.Strategy
}

func (r *Runner) newFlags(m mode.Mode, withOut bool) *commandFlags {
	f := &commandFlags{
		set: flag.NewFlagSet(m.String(), flag.ContinueOnError),
	}
	f.set.SetOutput(r.stderr)
	f.set.StringVar(&f.in, "in", "", "carrier file (png, bmp or wav)")
	if withOut {
		f.set.StringVar(&f.out, "out", "", "output carrier file")
	}
	f.set.TextVar(&f.strategy, "strategy", r.strategy, "index strategy: full-period, rejection, permutation, sequential")
	return f
}

func (f *commandFlags) parse(args []string, withOut bool) ([]byte, error) {
	if parseErr := f.set.Parse(args); parseErr != nil {
		return nil, parseErr
	}
	if f.in == "" {
		return nil, fmt.Errorf("%w: -in", ErrMissingFlag)
	}
	if withOut && f.out == "" {
		return nil, fmt.Errorf("%w: -out", ErrMissingFlag)
	}
	carrier, readErr := os.ReadFile(f.in)
	if readErr != nil {
		return nil, fmt.Errorf("could not read carrier: %w", readErr)
	}
	return carrier, nil
}

func (r *Runner) hideText(ctx context.Context, args []string) error {
	f := r.newFlags(mode.HideText, true)
	text := f.set.String("text", "", "message to hide; read from stdin when empty")
	carrier, parseErr := f.parse(args, true)
	if parseErr != nil {
		return parseErr
	}

	message := *text
	if message == "" {
		stdinBytes, stdinErr := io.ReadAll(r.stdin)
		if stdinErr != nil {
			return fmt.Errorf("could not read message: %w", stdinErr)
		}
		message = strings.TrimRight(string(stdinBytes), "\r\n")
	}

	out, encodeErr := r.codec.EncodeText(ctx, carrier, message, f.strategy)
	if encodeErr != nil {
		return encodeErr
	}
	return writeOutput(f.out, out)
}

func (r *Runner) revealText(ctx context.Context, args []string) error {
	f := r.newFlags(mode.RevealText, false)
	carrier, parseErr := f.parse(args, false)
	if parseErr != nil {
		return parseErr
	}

	text, decodeErr := r.codec.DecodeText(ctx, carrier, f.strategy)
	if decodeErr != nil {
		return decodeErr
	}
	_, printErr := fmt.Fprintln(r.stdout, text)
	return printErr
}

func (r *Runner) hideFile(ctx context.Context, args []string) error {
	f := r.newFlags(mode.HideFile, true)
	path := f.set.String("file", "", "file to hide")
	name := f.set.String("name", "", "name stored with the file; defaults to the file's base name")
	carrier, parseErr := f.parse(args, true)
	if parseErr != nil {
		return parseErr
	}
	if *path == "" {
		return fmt.Errorf("%w: -file", ErrMissingFlag)
	}

	content, readErr := os.ReadFile(*path)
	if readErr != nil {
		return fmt.Errorf("could not read file to hide: %w", readErr)
	}
	storedName := *name
	if storedName == "" {
		storedName = filepath.Base(*path)
	}

	out, encodeErr := r.codec.EncodeFile(ctx, carrier, content, storedName, f.strategy)
	if encodeErr != nil {
		return encodeErr
	}
	return writeOutput(f.out, out)
}

func (r *Runner) revealFile(ctx context.Context, args []string) error {
	f := r.newFlags(mode.RevealFile, false)
	dir := f.set.String("dir", ".", "directory the recovered file is written to")
	carrier, parseErr := f.parse(args, false)
	if parseErr != nil {
		return parseErr
	}

	hidden, decodeErr := r.codec.DecodeFile(ctx, carrier, f.strategy)
	if decodeErr != nil {
		return decodeErr
	}

	target := filepath.Join(*dir, safeFileName(hidden.Name))
	if writeErr := writeOutput(target, hidden.Content); writeErr != nil {
		return writeErr
	}
	_, printErr := fmt.Fprintf(r.stdout, "%s (%s)\n", target, stego_codec.HumanSize(int64(hidden.Size())))
	return printErr
}

func (r *Runner) capacity(args []string) error {
	f := r.newFlags(mode.Capacity, false)
	carrier, parseErr := f.parse(args, false)
	if parseErr != nil {
		return parseErr
	}

	report, reportErr := r.codec.Capacity(carrier)
	if reportErr != nil {
		return reportErr
	}
	_, printErr := fmt.Fprintf(r.stdout,
		"units: %d\nbits per unit: %d\ncapacity: %s\nmax ciphertext: %d bytes\n",
		report.Units,
		report.BitsPerUnit,
		stego_codec.HumanSize(int64(report.CapacityBytes)),
		report.MaxTextBytes,
	)
	return printErr
}

// safeFileName keeps recovered files inside the target directory.
func safeFileName(name string) string {
	base := filepath.ToSlash(filepath.Base(filepath.Clean("/" + strings.ReplaceAll(name, "\\", "/"))))
	switch base {
	case "", ".", "..", "/":
		return fallbackFileName
	}
	return base
}

func writeOutput(path string, data []byte) error {
	if writeErr := os.WriteFile(path, data, 0o644); writeErr != nil {
		return fmt.Errorf("could not write %s: %w", path, writeErr)
	}
	return nil
}
