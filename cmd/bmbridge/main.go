package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/nikbrunner/bmbridge/internal/bridge"
	"github.com/nikbrunner/bmbridge/internal/ingest"
	"github.com/nikbrunner/bmbridge/internal/server"
	"github.com/nikbrunner/bmbridge/internal/store"
	"github.com/nikbrunner/bmbridge/internal/tui"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "serve":
			runServe(os.Args[2:])
			return
		case "import":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: bmbridge import <Bookmarks file>\n")
				os.Exit(1)
			}
			runImport(os.Args[2])
			return
		case "delete":
			runTUI(os.Args[2:])
			return
		default:
			fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
			printHelp()
			os.Exit(1)
		}
	}

	// No args - open the manual delete UI
	runTUI(nil)
}

func printHelp() {
	help := `bmbridge - bookmark mutation bridge

Usage:
  bmbridge                      Open the manual delete UI
  bmbridge delete [flags] [ids.txt]
                                Open the manual delete UI, optionally
                                pre-loading an identifier file
  bmbridge serve [flags]        Serve the message router
  bmbridge import <Bookmarks>   Seed the SQLite store from a Chromium
                                Bookmarks file
  bmbridge help                 Show this help

Serve flags:
  -port <port>      listen port (default 8765)
  -db <path>        sqlite database path
  -chrome <path>    operate directly on a Chromium Bookmarks file
  -logfile <path>   log to the given file
  -debug            verbose log

Delete UI keybindings:
  ctrl+o      Load identifier file
  ctrl+v      Paste from clipboard
  ctrl+x      Clear input
  ctrl+d      Delete listed bookmarks
  ctrl+c      Quit

Identifier lists are newline-delimited; blank lines and lines starting
with # are ignored. Files may also be a JSON array of ids or of objects
with an "id" field.
`
	fmt.Print(help)
}

// runServe runs the message router over both transports.
func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	listenPort := fs.String("port", "8765", "the port to listen")
	dbPath := fs.String("db", "", "the full sqlite db path")
	chromeFile := fs.String("chrome", "", "a Chromium Bookmarks file to operate on directly")
	logfile := fs.String("logfile", "", "log to the given file")
	debug := fs.Bool("debug", false, "debug (verbose log), default is error")
	fs.Parse(args)

	// Logging to file if logfile parameter specified.
	if *logfile != "" {
		logf, err := os.OpenFile(*logfile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0755)
		if err != nil {
			log.Panic(err)
		}
		log.SetOutput(logf)
	}
	if *debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.ErrorLevel)
	}
	log.WithFields(log.Fields{
		"listenPort": *listenPort,
		"dbPath":     *dbPath,
		"chromeFile": *chromeFile,
		"logfile":    *logfile,
		"debug":      *debug,
	}).Debug("serve:flags")

	s, err := store.Open(*dbPath, *chromeFile)
	if err != nil {
		log.Fatal(err)
	}

	srv := server.New(bridge.NewRouter(s))
	if err := srv.ListenAndServe(":" + *listenPort); err != nil {
		log.Fatal(err)
	}
}

// runTUI opens the manual delete UI.
func runTUI(args []string) {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	dbPath := fs.String("db", "", "the full sqlite db path")
	chromeFile := fs.String("chrome", "", "a Chromium Bookmarks file to operate on directly")
	fs.Parse(args)

	s, err := store.Open(*dbPath, *chromeFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}

	var initialText string
	if fs.NArg() >= 1 {
		data, err := os.ReadFile(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
			os.Exit(1)
		}
		initialText = ingest.Decode(data)
	}

	app := tui.NewApp(tui.AppParams{Store: s, InitialText: initialText})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// runImport handles the import subcommand.
func runImport(srcPath string) {
	dbPath, err := store.DefaultSQLitePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting db path: %v\n", err)
		os.Exit(1)
	}

	dst, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening db: %v\n", err)
		os.Exit(1)
	}
	defer dst.Close()

	n, err := store.ImportChromeFile(context.Background(), dst, srcPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d bookmarks into %s\n", n, dbPath)
}
