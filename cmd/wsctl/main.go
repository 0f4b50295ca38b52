package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/RMahshie/whitespace/pkg/models"
	"github.com/RMahshie/whitespace/pkg/occupancy"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("wsctl failed")
	}
}

func thresholdFlag() *cli.Float64Flag {
	return &cli.Float64Flag{
		Name:    "threshold",
		Aliases: []string{"t"},
		Value:   occupancy.DefaultThreshold,
		Usage:   "occupancy threshold in dBm",
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "wsctl",
		Usage: "inspect TV white space occupancy from the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-url",
				Value:   "https://rf-explorer-api.onrender.com",
				Usage:   "scan service base URL",
				EnvVars: []string{"UPSTREAM_API_URL"},
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 30 * time.Second,
				Usage: "scan service request timeout",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print JSON instead of tables",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "locations",
				Usage:  "list monitoring sites",
				Action: LocationsAction,
			},
			{
				Name:  "summary",
				Usage: "channel occupancy summary over recent scans",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "location", Aliases: []string{"l"}, Value: models.AllLocations, Usage: "location id or 'all'"},
					thresholdFlag(),
					&cli.StringFlag{Name: "range", Aliases: []string{"r"}, Value: models.TimeRangeWeek, Usage: "day, week or month"},
				},
				Action: SummaryAction,
			},
			{
				Name:  "channels",
				Usage: "per-channel occupancy and recommended channels",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "location", Aliases: []string{"l"}, Value: models.AllLocations, Usage: "location id or 'all'"},
					thresholdFlag(),
					&cli.StringFlag{Name: "range", Aliases: []string{"r"}, Value: models.TimeRangeWeek, Usage: "day, week or month"},
				},
				Action: ChannelsAction,
			},
			{
				Name:  "classify",
				Usage: "classify a local JSON array of readings",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Required: true, Usage: "path to readings JSON"},
					thresholdFlag(),
				},
				Action: ClassifyAction,
			},
		},
	}
}
