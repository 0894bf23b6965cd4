package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/promptrefiner/internal/config"
	"github.com/csheth/promptrefiner/internal/refine"
	"github.com/csheth/promptrefiner/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML settings file (default "+config.DefaultPath()+")")
	backend := flag.String("backend", "", "refinement backend base URL (default "+refine.DefaultBaseURL+")")
	noAltScreen := flag.Bool("no-alt-screen", false, "disable the alternate screen buffer")
	logFile := flag.String("log-file", "", "write diagnostics to this file")
	flag.Parse()

	settings, err := config.Load(config.Overrides{
		ConfigPath:  *configPath,
		BackendURL:  *backend,
		LogFile:     *logFile,
		NoAltScreen: *noAltScreen,
	})
	if err != nil {
		fmt.Println("configuration error:", err)
		os.Exit(1)
	}

	if settings.LogFile != "" {
		f, err := tea.LogToFile(settings.LogFile, "promptrefiner")
		if err != nil {
			fmt.Println("failed to open log file:", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	client := refine.New(refine.Config{BaseURL: settings.BackendURL})
	log.Printf("[main] backend %s", client.Endpoint())

	opts := []tea.ProgramOption{}
	if !settings.NoAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Refiner:  client,
			Endpoint: client.Endpoint(),
		}),
		opts...,
	)

	if _, err := program.Run(); err != nil {
		fmt.Println("program error:", err)
		os.Exit(1)
	}
}
