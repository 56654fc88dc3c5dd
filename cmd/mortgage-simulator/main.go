package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/iwvelando/mortgage-simulator/internal/config"
	"github.com/iwvelando/mortgage-simulator/internal/export"
	"github.com/iwvelando/mortgage-simulator/internal/logging"
	"github.com/iwvelando/mortgage-simulator/internal/simulation"
	"github.com/iwvelando/mortgage-simulator/pkg/constants"
	"github.com/iwvelando/mortgage-simulator/pkg/output"
	"github.com/iwvelando/mortgage-simulator/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	exportDestination := flag.String("export", "", "write each schedule as Parquet to a directory or s3://bucket/prefix")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	reports := simulation.Run(logger, *conf)

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, reports)
	case constants.OutputFormatCSV:
		output.CsvFormat(os.Stdout, reports)
	case constants.OutputFormatJSON:
		if err := output.JSONFormat(os.Stdout, reports); err != nil {
			logger.Fatal("failed to write JSON output",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}

	destination := conf.Export.Destination
	if *exportDestination != "" {
		destination = *exportDestination
	}
	if destination == "" {
		return
	}

	if _, err := export.Reports(context.Background(), logger, reports, destination, conf.Export.Profile); err != nil {
		logger.Fatal("failed to export schedules",
			zap.String("op", "main"),
			zap.String("destination", destination),
			zap.Error(err),
		)
	}
}
