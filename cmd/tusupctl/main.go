package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/auriora/tusup/pkg/logging"
	"github.com/auriora/tusup/pkg/tusclient"
	flag "github.com/spf13/pflag"
)

func usage() {
	fmt.Printf(`tusupctl - a command-line client for resumable tus uploads.

Usage: tusupctl [options] <command> [args]

Commands:
  add <file>       Register a file for upload, printing its upload id.
  start <id>       Start or resume an upload.
  pause <id>       Pause a running upload.
  cancel <id>      Cancel an upload.
  status <id>      Print the status of one upload.
  list             Print the status of every tracked upload.

Options:
`)
	flag.PrintDefaults()
}

func main() {
	endpoint := flag.StringP("endpoint", "e", "", "tus upload creation endpoint URL.")
	stateDir := flag.StringP("state-dir", "s", "", "directory holding the persisted upload state snapshot.")
	metadata := flag.StringP("metadata", "m", "", "comma-separated key=value pairs attached to a new upload.")
	maxConcurrent := flag.IntP("max-concurrent", "c", 0, "maximum concurrently running uploads (default 3).")
	chunkSize := flag.Int64P("chunk-size", "", 0, "bytes transferred per PATCH request (default 4MiB).")
	logLevel := flag.StringP("log-level", "l", "", "minimum log severity (default info).")
	help := flag.BoolP("help", "h", false, "Displays this help message.")
	flag.Usage = usage
	flag.Parse()

	if *help {
		flag.Usage()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	if *endpoint == "" || *stateDir == "" {
		fmt.Fprintln(os.Stderr, "--endpoint and --state-dir are required")
		os.Exit(1)
	}

	config := tusclient.NewTusConfig(*endpoint, *stateDir)
	if *maxConcurrent > 0 {
		config = config.WithMaxConcurrent(*maxConcurrent)
	}
	if *chunkSize > 0 {
		config = config.WithChunkSize(*chunkSize)
	}
	if *logLevel != "" {
		config = config.WithLogLevel(*logLevel)
	}

	manager, err := tusclient.NewManager(config)
	if err != nil {
		logging.Error().Err(err).Msg("failed to initialize upload manager")
		os.Exit(1)
	}
	defer manager.Shutdown()

	if err := dispatch(manager, args[0], args[1:], *metadata); err != nil {
		logging.Error().Err(err).Str("command", args[0]).Msg("command failed")
		os.Exit(1)
	}
}

func dispatch(manager *tusclient.UploadManager, cmd string, args []string, rawMetadata string) error {
	switch cmd {
	case "add":
		if len(args) != 1 {
			return fmt.Errorf("usage: tusupctl add <file>")
		}
		id, err := manager.AddUpload(args[0], parseMetadata(rawMetadata))
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil

	case "start":
		if len(args) != 1 {
			return fmt.Errorf("usage: tusupctl start <id>")
		}
		return manager.StartUpload(args[0])

	case "pause":
		if len(args) != 1 {
			return fmt.Errorf("usage: tusupctl pause <id>")
		}
		return manager.PauseUpload(args[0])

	case "cancel":
		if len(args) != 1 {
			return fmt.Errorf("usage: tusupctl cancel <id>")
		}
		return manager.CancelUpload(args[0])

	case "status":
		if len(args) != 1 {
			return fmt.Errorf("usage: tusupctl status <id>")
		}
		view, err := manager.GetUploadStatus(args[0])
		if err != nil {
			return err
		}
		printView(view)
		return nil

	case "list":
		for _, view := range manager.ListUploads() {
			printView(view)
		}
		return nil

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func printView(v tusclient.UploadView) {
	fmt.Printf("%s\t%-10s\t%6.2f%%\t%s\t%d/%d bytes\n",
		v.ID, v.State, v.Progress*100, v.Filename, v.BytesTransferred, v.TotalBytes)
}

func parseMetadata(raw string) map[string]string {
	if raw == "" {
		return nil
	}
	out := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			continue
		}
		out[kv[0]] = kv[1]
	}
	return out
}
