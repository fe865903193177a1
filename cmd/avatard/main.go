package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

var (
	Version   = "unknown"
	BuildTime = "unknown"
)

func main() {
	initLogger()

	configFlag := flag.String("config", "", "Configuration file name (without .json extension)")
	configDirFlag := flag.String("config-dir", "./config", "Configuration directory")
	listConfigsFlag := flag.Bool("list-configs", false, "List available configuration files")
	listenFlag := flag.String("listen", "", "Listen address override")
	renderFlag := flag.String("render", "", "Render a single avatar for the given text and exit")
	outFlag := flag.String("out", "", "Output file for -render ('-' for stdout)")

	flag.Parse()

	configManager := NewConfigManager(*configDirFlag)

	if *listConfigsFlag {
		configs, err := configManager.ListConfigs()
		if err != nil {
			logFatal("Config enumeration failed: %v", err)
		}
		fmt.Println("Available configurations:")
		for _, config := range configs {
			fmt.Printf("  %s\n", config)
		}
		return
	}

	config := &ServiceConfig{}
	if *configFlag != "" {
		loaded, err := configManager.LoadConfig(*configFlag)
		if err != nil {
			logFatal("Config load failed '%s': %v", *configFlag, err)
		}
		config = loaded
	}
	if *listenFlag != "" {
		config.Listen = *listenFlag
	}
	if config.LogFile != "" {
		attachLogFile(config.LogFile)
	}

	// One-shot mode: render to a file (or stdout) and exit.
	if *renderFlag != "" {
		outputManager := NewOutputManager()
		if *outFlag == "-" {
			outputManager.AddHandler(StdoutOutputHandler{})
		} else {
			out := *outFlag
			if out == "" {
				out = config.GetOutputFile()
			}
			outputManager.AddHandler(NewFileOutputHandler(out))
		}

		img, err := renderAvatar(config, avatarParams{Text: *renderFlag})
		if err != nil {
			logFatal("Render failed: %v", err)
		}
		if err := outputManager.Output(img); err != nil {
			logFatal("Output failed: %v", err)
		}
		outputManager.Close()
		return
	}

	server := NewAvatarServer(config)

	logInfo("started, pid is %d", os.Getpid())
	logInfo("avatard v%s", Version)
	logInfo("Listen: %s | Shape: %s | Size: %d",
		config.GetListen(), config.GetShape(), config.GetSize())

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logFatal("Server failed: %v", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	<-signalChan

	logInfo("Shutdown initiated")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logError("Shutdown failed: %v", err)
	}
}
