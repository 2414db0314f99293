package main

import (
	"flag"
	"log"
	"os"

	"songbook/cmd"
	"songbook/config"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
)

func main() {
	var (
		configPath string
		export     string
		port       int
		debug      bool
	)

	flag.StringVar(&configPath, "config", "", "Path to a TOML config file")
	flag.StringVar(&export, "export", "", "Write a songs.json index to this path and exit")
	flag.IntVar(&port, "port", 0, "Port for the web server (default 5000)")
	flag.BoolVar(&debug, "debug", false, "Run gin in debug mode")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if port != 0 {
		cfg.Port = port
	}
	if debug {
		cfg.GinMode = gin.DebugMode
	}

	if export != "" {
		if err := cmd.RunExport(cfg, export); err != nil {
			color.Red("Failed to generate %s: %v", export, err)
			os.Exit(1)
		}
		return
	}

	cmd.StartWebServer(cfg)
}
