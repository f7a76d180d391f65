// Command blecat scans for nearby BLE devices and prints a catalog of what they
// advertise: manufacturer, decoded Apple Continuity state, services.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"tinygo.org/x/bluetooth"
)

const usage = `blecat - BLE device catalog

Usage:
  blecat <command> [flags]

Commands:
  scan     Scan for devices and print the catalog
  replay   Print the catalog of a snapshot written by scan -capture
  decode   Decode Apple Continuity payloads given as hex
  help     Show this help

Use "blecat <command> -help" for the flags of a command.
`

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	if len(os.Args) < 2 {
		log.Error("😕 expect subcommand")
		os.Stderr.WriteString(usage)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch cmd := os.Args[1]; cmd {
	case "scan", "replay":
		var cfg Config
		cfg, err = parseFlags(cmd, os.Args[2:])
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		if err != nil {
			break
		}
		level, _ := logrus.ParseLevel(cfg.LogLevel)
		log.SetLevel(level)

		if cmd == "scan" {
			err = runScan(ctx, cfg, bluetooth.DefaultAdapter, os.Stdout, log)
		} else {
			err = runReplay(cfg, os.Stdout, log)
		}
	case "decode":
		err = runDecode(os.Args[2:], os.Stdout)
	case "help", "-h", "-help", "--help":
		os.Stdout.WriteString(usage)
	default:
		log.Errorf("😕 Command %s is invalid - valid commands are 'scan', 'replay' or 'decode'", cmd)
		os.Exit(1)
	}

	if err != nil {
		log.WithError(err).Error("😭 Failed")
		os.Exit(1)
	}
}
