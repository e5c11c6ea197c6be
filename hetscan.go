package main

import (
	"os"

	"github.com/joho/godotenv"
	cli "github.com/urfave/cli/v2"
	"go.uber.org/zap/zapcore"

	"github.com/karyolab/hetscan/hetscan_api"
	"github.com/karyolab/hetscan/logger"
)

func main() {
	if err := logger.InitLogger(zapcore.InfoLevel); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env found, using local environment")
	}

	app := &cli.App{
		Name:            "hetscan",
		Usage:           "A tool to filter cohort gVCF files on heterozygous genotype quality and merge the counts with cohort metadata",
		HideHelpCommand: true,
		Version:         "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "Configuration file (YAML) to use instead of the built-in defaults",
				Category: "Optional",
			},
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "The root directory containing one Cohort_* directory per cohort",
				Category: "Optional",
			},
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "The root directory for all pipeline artifacts",
				Category: "Optional",
			},
			&cli.IntFlag{
				Name:     "depth",
				Aliases:  []string{"d"},
				Usage:    "Minimum exclusive read depth (DP) for a record to pass",
				Value:    20,
				Category: "Optional",
			},
			&cli.IntFlag{
				Name:     "quality",
				Aliases:  []string{"q"},
				Usage:    "Minimum inclusive genotype quality (GQ) for a record to pass",
				Value:    30,
				Category: "Optional",
			},
			&cli.IntFlag{
				Name:     "workers",
				Aliases:  []string{"w"},
				Usage:    "Number of input files filtered concurrently, defaults to the number of CPUs",
				Category: "Optional",
			},
			&cli.BoolFlag{
				Name:     "resume",
				Aliases:  []string{"r"},
				Usage:    "Skip sample files already recorded in the tally store",
				Category: "Optional",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "verify",
				Usage:  "Match metadata SampleIDs to input files and write the verification table",
				Action: stageAction((*hetscan_api.Pipeline).Verify),
			},
			{
				Name:   "filter",
				Usage:  "Filter every sample file on heterozygous GT, DP and GQ",
				Action: stageAction((*hetscan_api.Pipeline).Filter),
			},
			{
				Name:   "merge",
				Usage:  "Join the filter counts with the cohort metadata tables",
				Action: stageAction((*hetscan_api.Pipeline).Merge),
			},
			{
				Name:   "export",
				Usage:  "Convert the merged cohort tables to parquet",
				Action: stageAction((*hetscan_api.Pipeline).Export),
			},
			{
				Name:   "report",
				Usage:  "Write the combined cohort summary report",
				Action: stageAction((*hetscan_api.Pipeline).Report),
			},
			{
				Name:   "run",
				Usage:  "Run all stages in order, halting on the first failure",
				Action: stageAction((*hetscan_api.Pipeline).Run),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Sync()
		logger.Fatal(err.Error())
	}
}

// stageAction adapts one pipeline stage to a CLI action
func stageAction(stage func(*hetscan_api.Pipeline) error) cli.ActionFunc {
	return func(Cctx *cli.Context) error {
		config, err := hetscan_api.LoadConfig(Cctx)
		if err != nil {
			return err
		}
		pipeline, err := hetscan_api.NewPipeline(config)
		if err != nil {
			return err
		}
		defer pipeline.Close()
		return stage(pipeline)
	}
}
