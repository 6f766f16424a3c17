package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/peterh/liner"

	"github.com/jice-nospam/uscan"
	"github.com/jice-nospam/uscan/profiles"
)

const (
	appName     = "uscan"
	historyFile = ".uscan_history"
	promptMain  = "==> "
)

var banner = fmt.Sprintf("uscan %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", uscan.Version)

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	switch cmd {
	case "scan":
		os.Exit(cmdScan(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "profiles":
		for _, name := range profiles.Names() {
			fmt.Println(name)
		}
		return
	case "version":
		fmt.Println(uscan.Version)
		return
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`uscan %s

Usage:
  %s scan <file> [-profile <name>] [-config <file.cue>] [-debug] [-no-color]
                                          Scan a file and dump its tokens.
  %s repl [-profile <name>] [-config <file.cue>]
                                          Scan lines interactively.
  %s profiles                             List the built-in profiles.
  %s version                              Print the library version.

`, uscan.Version, appName, appName, appName, appName)
}

// profileFlags adds the profile selection flags shared by scan and repl.
func profileFlags(fs *flag.FlagSet) (profileName, configPath *string) {
	profileName = fs.String("profile", "lua", "built-in profile name")
	configPath = fs.String("config", "", "CUE profile file (overrides -profile)")
	return
}

func resolveConfig(profileName, configPath string) (*uscan.Config, error) {
	if configPath != "" {
		return profiles.LoadFile(configPath)
	}
	return profiles.Lookup(profileName)
}

// -----------------------------------------------------------------------------
// scan
// -----------------------------------------------------------------------------

func cmdScan(args []string) int {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	profileName, configPath := profileFlags(fs)
	debug := fs.Bool("debug", false, "also dump the raw scanner data")
	noColor := fs.Bool("no-color", false, "disable ANSI colors")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s scan <file> [flags]\n", appName)
		return 2
	}
	file := fs.Arg(0)

	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}
	cfg, err := resolveConfig(*profileName, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}

	uscan.EnableColor = !*noColor

	var data uscan.ScannerData
	if scanErr := uscan.Scan(string(src), cfg, &data); scanErr != nil {
		fmt.Fprintln(os.Stderr, uscan.FormatErrorWithName(scanErr, file, string(src)))
		return 1
	}
	data.Dump(os.Stdout)
	if *debug {
		fmt.Fprint(os.Stderr, spew.Sdump(&data))
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(args []string) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	profileName, configPath := profileFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	cfg, err := resolveConfig(*profileName, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}

	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	uscan.EnableColor = true

	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			break
		}
		if err != nil {
			// Ctrl+C aborts the current line only.
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return 0
			default:
				fmt.Printf("unknown command. Type :quit to exit.\n")
			}
			continue
		}

		var data uscan.ScannerData
		if scanErr := uscan.Scan(line, cfg, &data); scanErr != nil {
			fmt.Fprintln(os.Stderr, red(uscan.FormatErrorWithSource(scanErr, line).Error()))
			continue
		}
		data.Dump(os.Stdout)
		ln.AppendHistory(line)
	}

	return 0
}
