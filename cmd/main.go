package main

import (
	"flag"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"lifespan/mortality"
)

var (
	configFile string
	dataPath   string
	minAge     int
	verbose    bool
)

func init() {
	flag.StringVar(&configFile, "f", "config.yaml", "config file")
	flag.StringVar(&dataPath, "d", "", "CSV data file, overrides the config")
	flag.IntVar(&minAge, "m", -1, "drop deaths below this age, overrides the config")
	flag.BoolVar(&verbose, "v", false, "log the redistribution trace")
	flag.Parse()
}

func main() {
	var logger *zap.Logger
	if verbose {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}

	config := mortality.Default()

	file, err := os.ReadFile(configFile)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, &config); err != nil {
			logger.Fatal("unable to parse config file", zap.String("file", configFile), zap.Error(err))
		}
		logger.Debug("loaded config file", zap.String("file", configFile))
	case os.IsNotExist(err):
		logger.Debug("no config file, using defaults", zap.String("file", configFile))
	default:
		logger.Fatal("unable to read config file", zap.String("file", configFile), zap.Error(err))
	}

	if dataPath != "" {
		config.Data.Path = dataPath
	}
	if minAge >= 0 {
		config.Analysis.MinAge = minAge
	}

	if err := config.Validate(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	a := mortality.Analyzer{Config: config, Logger: logger, Out: os.Stdout}
	if err := a.Run(); err != nil {
		logger.Fatal("analysis failed", zap.Error(err))
	}
}
