// Command xixihost is the host-side CLI: it authors configurations,
// drives the proving shim, and inspects archived artifacts (spec.md
// §4.10, C10). Each subcommand gets its own flag.FlagSet, mirroring
// dungeongen's single-flag-set style scaled to four subcommands.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dshills/xixizk/pkg/codec"
	"github.com/dshills/xixizk/pkg/graphviz"
	"github.com/dshills/xixizk/pkg/model"
	"github.com/dshills/xixizk/pkg/proving"
	"github.com/dshills/xixizk/pkg/route"
)

const version = "0.1.0"

const (
	maxConfigSize     = 10 << 20 // 10 MiB
	maxCredentialSize = 1 << 20  // 1 MiB
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "convert":
		err = runConvert(os.Args[2:])
	case "prove":
		err = runProve(os.Args[2:])
	case "verify":
		err = runVerify(os.Args[2:])
	case "inspect":
		err = runInspect(os.Args[2:])
	case "-version", "--version", "version":
		fmt.Printf("xixihost version %s\n", version)
		return
	case "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown subcommand %q\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: xixihost <convert|prove|verify|inspect> [options]")
	fmt.Fprintln(os.Stderr, "\n  convert <input.(yaml|json)> <output.bin> [-graph out.svg]")
	fmt.Fprintln(os.Stderr, "  prove <config.bin> <credential-file> <route-file> <output.receipt>")
	fmt.Fprintln(os.Stderr, "  verify <input.receipt>")
	fmt.Fprintln(os.Stderr, "  inspect <config.bin> [-graph out.svg]")
}

func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	graphOut := fs.String("graph", "", "optional path to write an SVG rendering of the major node graph")
	verbose := fs.Bool("verbose", false, "enable verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) != 2 {
		return fmt.Errorf("convert requires <input> <output.bin>")
	}
	inPath, outPath := rest[0], rest[1]

	info, err := os.Stat(inPath)
	if err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	if info.Size() > maxConfigSize {
		return fmt.Errorf("input config %d bytes exceeds %d byte cap", info.Size(), maxConfigSize)
	}

	if *verbose {
		fmt.Printf("Loading configuration from %s\n", inPath)
	}
	cfg, err := model.LoadGameConfig(inPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	encoded, err := codec.Encode(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(outPath, encoded, 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if *verbose {
		fmt.Printf("Wrote %d bytes to %s\n", len(encoded), outPath)
	}

	if *graphOut != "" {
		if err := graphviz.SaveSVG(cfg, nil, *graphOut); err != nil {
			return fmt.Errorf("render graph: %w", err)
		}
		if *verbose {
			fmt.Printf("Wrote graph to %s\n", *graphOut)
		}
	}

	fmt.Printf("Converted %s -> %s (%d major nodes)\n", inPath, outPath, len(cfg.MajorDesc))
	return nil
}

func runProve(args []string) error {
	fs := flag.NewFlagSet("prove", flag.ExitOnError)
	verbose := fs.Bool("verbose", false, "enable verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) != 4 {
		return fmt.Errorf("prove requires <config.bin> <credential-file> <route-file> <output.receipt>")
	}
	configPath, credPath, routePath, outPath := rest[0], rest[1], rest[2], rest[3]

	configBytes, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if len(configBytes) > maxConfigSize {
		return fmt.Errorf("config %d bytes exceeds %d byte cap", len(configBytes), maxConfigSize)
	}

	credInfo, err := os.Stat(credPath)
	if err != nil {
		return fmt.Errorf("stat credential: %w", err)
	}
	if credInfo.Size() > maxCredentialSize {
		return fmt.Errorf("credential %d bytes exceeds %d byte cap", credInfo.Size(), maxCredentialSize)
	}
	credBytes, err := os.ReadFile(credPath)
	if err != nil {
		return fmt.Errorf("read credential: %w", err)
	}

	ids, err := loadRouteIDs(routePath)
	if err != nil {
		return fmt.Errorf("load route: %w", err)
	}
	routeBytes := route.Encode(ids)

	if *verbose {
		fmt.Printf("Proving route of %d nodes against %s\n", len(ids), configPath)
	}

	env := proving.NewEnv().WriteConfig(configBytes).WriteRoute(routeBytes).WriteCredential(credBytes)
	receipt, err := proving.Prove(env)
	if err != nil {
		return fmt.Errorf("prove: %w", err)
	}

	data, err := json.MarshalIndent(receipt, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal receipt: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("write receipt: %w", err)
	}

	fmt.Printf("Wrote receipt to %s (scores=%v)\n", outPath, receipt.Journal.Scores)
	return nil
}

func runVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) != 1 {
		return fmt.Errorf("verify requires <input.receipt>")
	}

	data, err := os.ReadFile(rest[0])
	if err != nil {
		return fmt.Errorf("read receipt: %w", err)
	}
	var receipt proving.Receipt
	if err := json.Unmarshal(data, &receipt); err != nil {
		return fmt.Errorf("parse receipt: %w", err)
	}

	if err := proving.Verify(&receipt); err != nil {
		return fmt.Errorf("receipt failed verification: %w", err)
	}

	journalJSON, err := json.MarshalIndent(receipt.Journal, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal journal: %w", err)
	}
	fmt.Println(string(journalJSON))
	return nil
}

func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	graphOut := fs.String("graph", "", "optional path to write an SVG rendering of the major node graph")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) != 1 {
		return fmt.Errorf("inspect requires <config.bin>")
	}

	data, err := os.ReadFile(rest[0])
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	view, err := codec.NewViewUnchecked(data)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}

	fmt.Printf("major nodes: %d\n", view.MajorDescLen())
	fmt.Printf("minor nodes: %d\n", view.MinorDescLen())
	fmt.Printf("enemy definitions: %d\n", view.EnemyDataLen())
	fmt.Printf("levelup entries: %d\n", view.LevelupDescLen())
	init := view.InitStat()
	fmt.Printf("init stat: hp=%d atk=%d def=%d mdef=%d exp=%d lv=%d salt=%d big_salt=%d\n",
		init.Hp, init.Atk, init.Def, init.Mdef, init.Exp, init.Lv, init.Salt, init.BigSalt)

	if *graphOut != "" {
		return fmt.Errorf("inspect cannot render a graph from an archived config; use convert -graph on the source file")
	}
	return nil
}

// loadRouteIDs accepts a route file in any of three forms: a JSON array
// of integers, whitespace-separated decimal integers, or a raw packed
// little-endian route buffer (with or without the terminator already
// appended).
func loadRouteIDs(path string) ([]uint32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(data)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var ids []uint32
		if err := json.Unmarshal(trimmed, &ids); err != nil {
			return nil, fmt.Errorf("parsing JSON route: %w", err)
		}
		return ids, nil
	}

	if fields := strings.Fields(string(trimmed)); len(fields) > 0 {
		ids := make([]uint32, 0, len(fields))
		allDecimal := true
		for _, f := range fields {
			n, err := strconv.ParseUint(f, 10, 32)
			if err != nil {
				allDecimal = false
				break
			}
			ids = append(ids, uint32(n))
		}
		if allDecimal {
			return ids, nil
		}
	}

	// A raw buffer already carries its own terminator word; route.Encode
	// below re-appends one, so strip it here to keep all three input
	// forms returning the same "ids before the implicit final step"
	// convention.
	ids, err := route.Parse(data)
	if err != nil {
		return nil, err
	}
	return ids[:len(ids)-1], nil
}
