// sdifls lists the frames and matrices of an SDIF file, or checks its
// structure end to end with -validate.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/danmuck/sdif"
	"github.com/danmuck/sdif/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "optional sdifls TOML config")
	validate := flag.Bool("validate", false, "walk the whole file and report structure errors only")
	flag.Parse()

	logging.ConfigureRuntime()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: sdifls [-config file] [-validate] <file.sdif>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	cfg := defaultToolConfig()
	if *configPath != "" {
		loaded, err := loadToolConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "sdifls: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	sessionCfg, err := cfg.sessionConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sdifls: %v\n", err)
		os.Exit(1)
	}

	if err := run(os.Stdout, path, cfg, sessionCfg, *validate); err != nil {
		fmt.Fprintf(os.Stderr, "sdifls: %v\n", err)
		os.Exit(1)
	}
}

func run(out io.Writer, path string, cfg toolConfig, sessionCfg sdif.Config, validate bool) error {
	s, err := sdif.OpenReadConfig(path, sessionCfg)
	if err != nil {
		return err
	}
	defer s.Close()

	var frames, matrices, opaque int
	for {
		f, err := s.NextFrame()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("frame %d: %w", frames, err)
		}
		frames++
		matrices += len(f.Matrices)
		if f.Opaque() {
			opaque++
		}
		if !validate {
			printFrame(out, s.Registry(), f, cfg.ShowMatrices)
		}
	}

	if validate {
		fmt.Fprintf(out, "%s: ok (%d frames, %d matrices, %d opaque)\n",
			path, frames, matrices, opaque)
	} else {
		fmt.Fprintf(out, "%d frames, %d matrices\n", frames, matrices)
	}
	return nil
}

func printFrame(out io.Writer, reg *sdif.Registry, f sdif.Frame, showMatrices bool) {
	desc := "unregistered"
	if ft, ok := reg.FrameType(f.Signature); ok {
		desc = ft.Description
	}
	if f.Opaque() {
		fmt.Fprintf(out, "%s  t=%.6f  stream=%d  (opaque, %d bytes)\n",
			f.Signature, f.Time, f.StreamID, len(f.Raw))
		return
	}
	fmt.Fprintf(out, "%s  t=%.6f  stream=%d  matrices=%d  %s\n",
		f.Signature, f.Time, f.StreamID, len(f.Matrices), desc)
	if !showMatrices {
		return
	}
	for _, m := range f.Matrices {
		fmt.Fprintf(out, "  %s  %dx%d  %s\n", m.Signature, m.Rows, m.Cols, m.Type)
	}
}
