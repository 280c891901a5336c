package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"path"
	"strings"

	"github.com/freakmaxi/kertish-serve/basics/common"
)

type flagContainer struct {
	serveAddress string
	prefix       string
	command      string
	params       []string

	chunks    int
	overwrite bool
	version   bool
}

func (f *flagContainer) Validate() error {
	if f.chunks <= 0 {
		return fmt.Errorf("chunks should be bigger than 0")
	}

	switch f.command {
	case "size":
		if len(f.params) != 1 {
			return fmt.Errorf("%s command needs source parameter", f.command)
		}
		if f.overwrite {
			return fmt.Errorf("overwrite option is not allowed to use with %s command", f.command)
		}
	case "get":
		if len(f.params) == 0 || len(f.params) > 2 {
			return fmt.Errorf("%s command needs source and optional target parameters", f.command)
		}
		if len(f.params) == 1 {
			_, filename := common.Split(f.params[0])
			f.params = append(f.params, filename)
		}
	default:
		return fmt.Errorf("%s command is not supported", f.command)
	}

	if !common.ValidateName(f.params[0]) {
		return fmt.Errorf("%s is not a valid file name", f.params[0])
	}
	return nil
}

func printSupportedActions(set *flag.FlagSet, filename string) {
	fmt.Println("Kertish Serve fetch-tool usage: ")
	fmt.Println()
	fmt.Printf("   %s [options] command parameters\n", filename)
	fmt.Println()
	fmt.Println("options:")
	set.PrintDefaults()
	fmt.Println()
	fmt.Println("commands:")
	fmt.Println("  size  Prints the size of the file.")
	fmt.Println("           Ex: size [SOURCE]")
	fmt.Println("  get   Downloads the file in chunks.")
	fmt.Println("           Ex: get [SOURCE] or get [SOURCE] [TARGET]")
	fmt.Println()
}

func defineFlags(args []string) (*flagContainer, error) {
	_, filename := path.Split(args[0])

	set := flag.NewFlagSet("fetch", flag.ContinueOnError)
	set.SetOutput(ioutil.Discard)
	set.Usage = func() {
		printSupportedActions(set, filename)
	}

	fc := &flagContainer{}
	set.StringVar(&fc.serveAddress, `serve-address`, "localhost:4000", `Points the end point of serve node to work with.`)
	set.StringVar(&fc.prefix, `prefix`, "/filedownload", `Route prefix of the serve node.`)
	set.IntVar(&fc.chunks, `chunks`, 4, `Number of chunks downloaded concurrently.`)
	set.BoolVar(&fc.overwrite, `overwrite`, false, `Replaces the existing target file.`)
	set.BoolVar(&fc.version, `version`, false, `Prints release version.`)

	if err := set.Parse(args[1:]); err != nil {
		return nil, err
	}

	if fc.version {
		return fc, nil
	}

	remaining := set.Args()
	if len(remaining) == 0 {
		set.SetOutput(nil)
		set.Usage()
		return nil, flag.ErrHelp
	}

	fc.command = strings.ToLower(remaining[0])
	fc.params = remaining[1:]

	if err := fc.Validate(); err != nil {
		return nil, err
	}
	return fc, nil
}
