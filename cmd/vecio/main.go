// Package main is the vecio command line tool.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const (
	flagDebug       = "debug"
	flagNoVerify    = "no-verify"
	flagLimit       = "limit"
	flagCompression = "compression"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "vecio:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	logger := zap.NewNop()

	return &cli.App{
		Name:  "vecio",
		Usage: "inspect and convert VECIO array files",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if !c.Bool(flagDebug) {
				return nil
			}

			l, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			logger = l

			return nil
		},
		After: func(c *cli.Context) error {
			_ = logger.Sync()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "inspect",
				Usage:     "print the header, metadata, and dimensions of records",
				ArgsUsage: "FILE...",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: flagNoVerify, Usage: "skip checksum verification"},
				},
				Action: func(c *cli.Context) error {
					return inspectAction(c, logger)
				},
			},
			{
				Name:      "dump",
				Usage:     "print the values of a record",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: flagNoVerify, Usage: "skip checksum verification"},
					&cli.IntFlag{Name: flagLimit, Value: 0, Usage: "print at most `N` values (0 prints all)"},
				},
				Action: func(c *cli.Context) error {
					return dumpAction(c, logger)
				},
			},
			{
				Name:      "demo",
				Usage:     "write the sample testdim record",
				ArgsUsage: "OUT",
				Action: func(c *cli.Context) error {
					return demoAction(c, logger)
				},
			},
			{
				Name:      "pack",
				Usage:     "re-encode a record, compressing by the output extension",
				ArgsUsage: "IN OUT",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  flagCompression,
						Usage: "override the codec: none, zstd, s2, or lz4",
					},
				},
				Action: func(c *cli.Context) error {
					return packAction(c, logger)
				},
			},
		},
	}
}
