// Command imagemeta-dump prints header metadata for image files.
//
// Usage:
//
//	imagemeta-dump [-json] [-raw] [-metrics] [-j N] [-rate N] [-v] <image>...
package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/simonhull/imagemeta"
)

// rawLen covers the BMP file and info headers.
const rawLen = 54

func main() {
	var (
		asJSON      = flag.Bool("json", false, "print metadata as JSON objects")
		raw         = flag.Bool("raw", false, "hex dump the leading header bytes after the fields")
		concurrency = flag.Int("j", 0, "files decoded in parallel (default NumCPU)")
		perSecond   = flag.Float64("rate", 0, "maximum files per second (0 = unlimited)")
		verbose     = flag.Bool("v", false, "log decode details to stderr")
		showMetrics = flag.Bool("metrics", false, "print decode metrics to stderr on exit")
		version     = flag.Bool("version", false, "print version and exit")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: imagemeta-dump [flags] <image>...")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *version {
		fmt.Println(imagemeta.GetVersionInfo())
		return
	}
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	reg := prometheus.NewRegistry()
	opts := []imagemeta.Option{
		imagemeta.WithLogger(logger),
		imagemeta.WithConcurrency(*concurrency),
		imagemeta.WithRateLimit(*perSecond, max(1, *concurrency)),
	}
	if *showMetrics {
		opts = append(opts, imagemeta.WithMetrics(reg))
	}
	dec := imagemeta.New(opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, dec, flag.Args(), *asJSON, *raw)
	stop()

	if *showMetrics {
		if merr := writeMetrics(os.Stderr, reg); merr != nil {
			logger.Warn("metrics output failed", slog.Any("error", merr))
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, dec *imagemeta.Decoder, paths []string, asJSON, raw bool) error {
	results, err := dec.DecodeMany(ctx, paths...)
	if err != nil {
		return err
	}

	for i, md := range results {
		if err := dump(os.Stdout, paths[i], md, asJSON); err != nil {
			return err
		}
		if raw {
			if err := dumpRaw(os.Stdout, paths[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeMetrics prints every gathered family in the text exposition format.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func dump(w io.Writer, path string, md *imagemeta.Metadata, asJSON bool) error {
	if asJSON {
		return json.NewEncoder(w).Encode(struct {
			Path     string              `json:"path"`
			Format   string              `json:"format"`
			Metadata *imagemeta.Metadata `json:"metadata"`
		}{path, md.Format().String(), md})
	}

	fmt.Fprintf(w, "%s (%s)\n", path, md.Format())
	if _, err := md.WriteTo(w); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}

// dumpRaw hex dumps up to rawLen bytes from the start of path, useful for
// checking decoded fields against their offsets.
func dumpRaw(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := make([]byte, rawLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return err
	}

	_, err = io.WriteString(w, hex.Dump(buf[:n]))
	if err == nil {
		_, err = fmt.Fprintln(w)
	}
	return err
}
