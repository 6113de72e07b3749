package main

import (
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"rsistrat/tools/config"
	logutil "rsistrat/utils/log"
)

var logger = logrus.StandardLogger()

func main() {
	inputFlags := []cli.Flag{
		&cli.StringFlag{
			Name:     "file",
			Aliases:  []string{"f"},
			Usage:    "candles csv, eg. ./testdata/BTCUSDT-1h.csv",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "pair",
			Aliases:  []string{"p"},
			Usage:    "eg. BTCUSDT",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "timeframe",
			Aliases: []string{"t"},
			Usage:   "eg. 1h",
			Value:   "1h",
		},
		&cli.StringFlag{
			Name:  "last",
			Usage: "only keep the trailing window of candles, eg. 30d",
		},
		&cli.BoolFlag{
			Name:  "heikin-ashi",
			Usage: "convert the candles to heikin ashi",
		},
		&cli.IntFlag{
			Name:    "index",
			Aliases: []string{"i"},
			Usage:   "settings index",
			Value:   0,
		},
	}

	app := &cli.App{
		Name:     "rsistrat",
		HelpName: "rsistrat",
		Usage:    "RSI rising/falling entry signals",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "config directory",
				Value: config.DefaultConfigPath,
			},
			&cli.StringFlag{
				Name:  "env",
				Usage: "env file",
				Value: config.DefaultEnvPath,
			},
		},
		Before: func(c *cli.Context) error {
			if err := config.LoadConf(c.String("config"), c.String("env")); err != nil {
				return err
			}
			l, err := logutil.InitLogger()
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:     "settings",
				HelpName: "settings",
				Usage:    "List the filtered indicator settings",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "rows to print, 0 for all",
						Value: 20,
					},
				},
				Action: settingsAction,
			},
			{
				Name:     "signals",
				HelpName: "signals",
				Usage:    "Compute the entry signals of a candle file",
				Flags: append([]cli.Flag{
					&cli.BoolFlag{
						Name:  "all",
						Usage: "evaluate every settings index",
					},
					&cli.StringFlag{
						Name:  "chart",
						Usage: "write an html chart of the selected settings, eg. ./signals.html",
					},
					&cli.BoolFlag{
						Name:  "store",
						Usage: "save the entries in the signal journal",
					},
				}, inputFlags...),
				Action: signalsAction,
			},
			{
				Name:     "replay",
				HelpName: "replay",
				Usage:    "Replay a candle file bar by bar",
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:  "window",
						Usage: "candles handed to each evaluation, 0 for all since the first bar",
						Value: 0,
					},
				}, inputFlags...),
				Action: replayAction,
			},
			{
				Name:     "evaluate",
				HelpName: "evaluate",
				Usage:    "Evaluate the last candle of a file",
				Flags: append([]cli.Flag{
					&cli.BoolFlag{
						Name:  "watch",
						Usage: "evaluate again whenever a config file changes",
					},
					&cli.IntFlag{
						Name:  "window",
						Usage: "trailing candles handed to the evaluation, 0 for all",
						Value: 0,
					},
				}, inputFlags...),
				Action: evaluateAction,
			},
			{
				Name:     "journal",
				HelpName: "journal",
				Usage:    "List the stored entry signals",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "pair",
						Aliases: []string{"p"},
						Usage:   "eg. BTCUSDT",
					},
					&cli.StringFlag{
						Name:  "side",
						Usage: "long or short",
					},
					&cli.BoolFlag{
						Name:  "reset",
						Usage: "drop every stored signal",
					},
				},
				Action: journalAction,
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
