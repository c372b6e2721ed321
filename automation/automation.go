// Package automation fetches the sales export from the data portal with a
// headless browser, for portals that only serve the file behind a
// script-driven download link.
package automation

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DownloadDataset opens the portal page, clicks the first CSV download
// link and saves the file into saveDir. It returns the saved path.
func DownloadDataset(portalURL, saveDir, filename string) (string, error) {
	if _, err := os.Stat(saveDir); os.IsNotExist(err) {
		if err := os.MkdirAll(saveDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create save folder: %v", err)
		}
	}

	u := launcher.New().
		Headless(true).
		Leakless(false).
		MustLaunch()

	browser := rod.New().ControlURL(u).MustConnect()
	defer browser.MustClose()

	page := browser.MustPage(portalURL)
	page.MustWaitStable()

	wait := browser.MustWaitDownload()

	var link *rod.Element
	if err := rod.Try(func() {
		link = page.MustElement("a[href$='.csv'], a[download]")
	}); err != nil {
		return "", fmt.Errorf("no CSV download link found on %s: %v", portalURL, err)
	}
	link.MustClick()

	resultChan := make(chan []byte, 1)
	go func() {
		defer func() {
			_ = recover()
		}()
		resultChan <- wait()
	}()

	var fileData []byte
	select {
	case fileData = <-resultChan:
	case <-time.After(60 * time.Second):
		return "", fmt.Errorf("download timed out after 60s")
	}
	if len(fileData) == 0 {
		return "", fmt.Errorf("downloaded file is empty")
	}

	savePath := filepath.Join(saveDir, filename)
	if err := os.WriteFile(savePath, fileData, 0644); err != nil {
		return "", fmt.Errorf("failed to save dataset: %v", err)
	}
	return savePath, nil
}
