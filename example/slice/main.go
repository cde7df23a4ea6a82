package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"strloin"
)

type options struct {
	file     string
	ranges   string
	reject   bool
	intern   bool
	logLevel string
}

func main() {
	var opts options
	flag.StringVar(&opts.file, "file", "-", "file to slice, - for stdin")
	flag.StringVar(&opts.ranges, "ranges", "", "ranges to take, e.g. 0:5,6:11")
	flag.BoolVar(&opts.reject, "reject-invalid", false, "fail instead of skipping invalid ranges")
	flag.BoolVar(&opts.intern, "intern", false, "canonicalise owned results")
	flag.StringVar(&opts.logLevel, "log-level", "warn", "logrus level")
	flag.Parse()

	if err := run(opts, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "slice: %v\n", err)
		os.Exit(1)
	}
}

// run writes the sliced text to stdout and a borrowed/owned report to stderr.
func run(opts options, stdin io.Reader, stdout, stderr io.Writer) error {
	if err := strloin.SetLogLevel(opts.logLevel); err != nil {
		return err
	}
	ranges, err := strloin.ParseRanges(opts.ranges)
	if err != nil {
		return err
	}
	text, err := readSource(opts.file, stdin)
	if err != nil {
		return err
	}

	var sliceOpts []strloin.Option
	if opts.reject {
		sliceOpts = append(sliceOpts, strloin.WithPolicy(strloin.RejectInvalid))
	}
	if opts.intern {
		sliceOpts = append(sliceOpts, strloin.WithJoiner(strloin.InternJoiner{}))
	}
	s := strloin.New(text, sliceOpts...)

	out, err := s.FromRanges(ranges)
	if err != nil {
		return err
	}
	if bounds, ok := out.Bounds(); ok {
		fmt.Fprintf(stderr, "borrowed %s of %d bytes\n", bounds, s.Len())
	} else {
		fmt.Fprintf(stderr, "owned %d bytes\n", out.Len())
	}
	_, err = out.WriteTo(stdout)
	return err
}

func readSource(file string, stdin io.Reader) (string, error) {
	if file == "-" {
		b, err := io.ReadAll(stdin)
		return string(b), err
	}
	b, err := os.ReadFile(file)
	return string(b), err
}
