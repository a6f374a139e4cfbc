// ABOUTME: Entry point for the classwatch daemon and CLI
// ABOUTME: Routes auth, run, and check subcommands
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/harperreed/classwatch/cli"
	"github.com/harperreed/classwatch/config"
)

const version = "0.1.0"

func main() {
	showVersion := flag.Bool("version", false, "Show version and exit")
	configPath := flag.String("config", "", "Config path (default: ~/.local/share/classwatch/config.json)")

	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("classwatch version %s\n", version)
		os.Exit(0)
	}

	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: failed to load .env: %v", err)
		}
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	switch args[0] {
	case "auth":
		if err := cli.AuthCommand(cfg); err != nil {
			log.Fatalf("Error: %v", err)
		}
	case "run":
		if err := cli.RunCommand(cfg); err != nil {
			log.Fatalf("Error: %v", err)
		}
	case "check":
		if err := cli.CheckCommand(cfg); err != nil {
			log.Fatalf("Error: %v", err)
		}
	case "version":
		fmt.Printf("classwatch version %s\n", version)
	default:
		fmt.Printf("Unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`classwatch - Google Classroom to Slack notifier

Usage:
  classwatch auth     Authorize with Google (one-time interactive setup)
  classwatch run      Start the polling daemon
  classwatch check    Run a single poll cycle and exit
  classwatch version  Show version

Flags:
  -config PATH   Config file path
  -version       Show version and exit

Configuration lives at ` + config.Path() + `
Secrets can come from the environment: GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET,
CLASSWATCH_SLACK_TOKEN, CLASSWATCH_SLACK_CHANNEL. A .env file is honored.

While the daemon runs, SIGUSR1 triggers one immediate check cycle.`)
}
