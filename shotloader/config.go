package main

import (
	"encoding/json"
	"fmt"
	"os"

	shotloader "github.com/pegasus-iii/shotloader_go/pkg"
)

// LoadConfiguration reads the JSON configuration file on top of the
// defaults. The shot number comes from the command line, so running
// without a configuration file is fine: every field has a default.
func LoadConfiguration(filename string) (shotloader.Configuration, error) {
	var config shotloader.Configuration

	// Set default values
	config.Verbosity = 0
	config.DataRoot = ""
	config.FileOut = ""
	config.PlotFile = ""
	config.ReadFluxLoops = true
	config.ReadBDots = true
	config.ReadCurrents = true
	config.NoDB = true
	config.Host = "pegasus.ep.wisc.edu"
	config.User = "p3reader"
	config.Passwd = "readonly"
	config.DBName = "P3Hardware"
	config.NumWorkers = 4
	config.Parallel = false
	config.WriteData = true
	config.CompressionLevel = 4

	if filename == "" {
		return config, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return config, err
	}
	return config, nil
}

func printConfiguration(config shotloader.Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("Data root: %s", config.DataRoot), "config")
	logger.Info(fmt.Sprintf("File out: %s", config.FileOut), "config")
	logger.Info(fmt.Sprintf("Plot file: %s", config.PlotFile), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	logger.Info(fmt.Sprintf("Read flux loops: %t", config.ReadFluxLoops), "config")
	logger.Info(fmt.Sprintf("Read B-dots: %t", config.ReadBDots), "config")
	logger.Info(fmt.Sprintf("Read currents: %t", config.ReadCurrents), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("Write data: %t", config.WriteData), "config")
	logger.Info(fmt.Sprintf("Compression level: %d", config.CompressionLevel), "config")
	logger.Info(fmt.Sprintf("Number of workers: %d", config.NumWorkers), "config")
	logger.Info(fmt.Sprintf("Parallel: %t", config.Parallel), "config")
}
