package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/duckfullstop/blecat/pkg/capture"
	"github.com/duckfullstop/blecat/pkg/catalog"
	"github.com/duckfullstop/blecat/pkg/continuity"
	"github.com/duckfullstop/blecat/pkg/scanner"
)

var rule = strings.Repeat("-", 60)

func runScan(ctx context.Context, cfg Config, adapter scanner.Adapter, out io.Writer, log logrus.FieldLogger) error {
	opts, err := cfg.options()
	if err != nil {
		return err
	}

	scanOpts := []scanner.Option{scanner.WithLogger(log)}
	if cfg.Live {
		scanOpts = append(scanOpts, scanner.WithOnDiscover(func(d catalog.Device) {
			fmt.Fprintln(out, catalog.Sighting(d))
		}))
	}

	fmt.Fprintf(out, "Scanning for BLE devices (%v seconds)...\n%s\n", cfg.Timeout, rule)
	timeout := time.Duration(cfg.Timeout * float64(time.Second))
	devices, err := scanner.New(adapter, scanOpts...).Scan(ctx, timeout)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, rule)

	if cfg.Capture != "" {
		if err := capture.WriteFile(cfg.Capture, devices, time.Now()); err != nil {
			return err
		}
		log.WithField("path", cfg.Capture).Info("💾 Snapshot written")
	}

	return catalog.WriteReport(out, catalog.Build(devices, opts), cfg.Verbose)
}

func runReplay(cfg Config, out io.Writer, log logrus.FieldLogger) error {
	opts, err := cfg.options()
	if err != nil {
		return err
	}

	snap, err := capture.ReadFile(cfg.File)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"path":     cfg.File,
		"captured": snap.Time().Format(time.RFC3339),
		"devices":  len(snap.Devices),
	}).Info("📼 Replaying snapshot")

	return catalog.WriteReport(out, catalog.Build(snap.Devices, opts), cfg.Verbose)
}

// runDecode decodes Continuity payloads given as hex strings, one per line of
// output.
func runDecode(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("decode needs at least one hex payload")
	}
	for _, arg := range args {
		payload, err := hex.DecodeString(strings.TrimPrefix(strings.ReplaceAll(arg, ":", ""), "0x"))
		if err != nil {
			return errors.Wrapf(err, "payload %q", arg)
		}
		desc, ok := continuity.Decode(payload)
		if !ok {
			desc = "no decoding available"
		}
		fmt.Fprintf(out, "%s: %s\n", hex.EncodeToString(payload), desc)
	}
	return nil
}
