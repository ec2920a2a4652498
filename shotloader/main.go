package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	shotloader "github.com/pegasus-iii/shotloader_go/pkg"
)

var configuration shotloader.Configuration

var (
	logger         Logger
	VerbosityLevel int
)

func init() {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	handlerStdOut := NewHandler(os.Stdout, opts)
	handlerStdErr := slog.NewJSONHandler(os.Stderr, opts)
	logger = Logger{
		InfoLog:  slog.New(handlerStdOut),
		ErrorLog: slog.New(handlerStdErr),
	}
}

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [-config file] shot\n", os.Args[0])
		os.Exit(2)
	}
	shot, err := strconv.Atoi(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid shot number %q\n", flag.Arg(0))
		os.Exit(2)
	}

	configuration, err = LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		return
	}
	shotloader.SetConfiguration(configuration)
	shotloader.SetLogger(logger)

	VerbosityLevel = configuration.Verbosity
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Processing shot %d", shot)
		logger.Info(message, "main")
	}
	if VerbosityLevel > 0 {
		printConfiguration(configuration, logger)
	}

	shotData := shotloader.NewShotData(shot)
	err = shotData.GetFolderPath()
	if err != nil {
		message := fmt.Errorf("Error resolving shot folder: %w", err)
		logger.Error(message.Error())
		return
	}

	start := time.Now()

	err = shotData.LoadRaw()
	if err != nil {
		message := fmt.Errorf("Error loading raw data: %w", err)
		logger.Error(message.Error())
		return
	}
	err = shotData.LoadCalData()
	if err != nil {
		message := fmt.Errorf("Error reading calibration file: %w", err)
		logger.Error(message.Error())
		return
	}

	if !configuration.NoDB {
		dbConn, err := shotloader.ConnectToDatabase(configuration.User, configuration.Passwd, configuration.Host, configuration.DBName)
		if err != nil {
			message := fmt.Errorf("Error connection to database: %w", err)
			logger.Error(message.Error())
			return
		}
		defer dbConn.Close()

		factors, err := shotloader.FactorTableFromDB(dbConn, shot)
		if err != nil {
			message := fmt.Errorf("Error reading coil factors from database: %w", err)
			logger.Error(message.Error())
			return
		}
		shotData.Factors = factors
	}

	if configuration.Parallel && configuration.NumWorkers > 1 {
		shotData.ProcParallel(configuration.NumWorkers)
	} else {
		shotData.CalcIp()
		shotData.ProcFL()
		shotData.ProcBdot()
	}

	duration := time.Since(start)
	message := fmt.Sprintf("Shot %d processed in %d ms", shot, duration.Milliseconds())
	logger.Info(message, "main")

	if configuration.WriteData {
		fileOut := configuration.FileOut
		if fileOut == "" {
			fileOut = fmt.Sprintf("T%06d_mag.h5", shot)
		}
		writer, err := shotloader.NewWriter(fileOut)
		if err != nil {
			message := fmt.Errorf("Error creating output file: %w", err)
			logger.Error(message.Error())
			return
		}
		err = writer.WriteShot(shot, shotData.ProcData(), shotData.CalFile)
		if err != nil {
			message := fmt.Errorf("Error writing output file: %w", err)
			logger.Error(message.Error())
		}
		err = writer.Close()
		if err != nil {
			message := fmt.Errorf("Error closing output file: %w", err)
			logger.Error(message.Error())
			return
		}
	}

	if configuration.PlotFile != "" {
		err = plotIp(shotData.ProcData(), configuration.PlotFile)
		if err != nil {
			message := fmt.Errorf("Error plotting Ip: %w", err)
			logger.Error(message.Error())
			return
		}
		if VerbosityLevel > 0 {
			message := fmt.Sprintf("Ip plot written to %s", configuration.PlotFile)
			logger.Info(message, "main")
		}
	}
}
