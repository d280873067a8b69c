package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ayusman/aircanvas/internal/app"
	"github.com/ayusman/aircanvas/internal/server"
	"github.com/ayusman/aircanvas/internal/store"
	"github.com/ayusman/aircanvas/internal/tray"
)

const serverAddr = ":8080"

func main() {
	fmt.Println("AirCanvas - Draw in the Air")

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".aircanvas")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataDir, "aircanvas.db")
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// A palette file is optional; the built-in arc is used without one.
	palettePath := filepath.Join(dataDir, "palette.yaml")
	if _, err := os.Stat(palettePath); err != nil {
		palettePath = ""
	}

	a, err := app.New(app.Config{
		Store:       st,
		CameraID:    0,
		PalettePath: palettePath,
	})
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	// A missing camera is not fatal; the settings page and tray stay up.
	if err := a.Start(); err != nil {
		log.Printf("Failed to start pipeline: %v", err)
	} else {
		a.SetEnabled(true)
	}

	// Find web directory
	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	// Configure and start the server alongside the tray
	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Frames:    a,
		Session:   a,
		Palette:   a.Palette(),
	})

	go func() {
		fmt.Printf("Starting server on %s\n", serverAddr)
		if err := srv.ListenAndServe(serverAddr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// The tray owns the main thread until quit.
	tr := tray.New()
	tr.OnToggle(a.SetEnabled)
	tr.OnClear(a.ClearCanvas)
	tr.OnSettings(func() {
		openBrowser("http://localhost" + serverAddr)
	})
	tr.OnQuit(a.Stop)
	tr.Run()
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	if err := exec.Command("open", url).Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.aircanvas/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	// Check relative paths from current working directory
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".aircanvas", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
