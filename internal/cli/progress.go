package cli

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// ProgressTracker manages per-file progress lines for a batch run.
type ProgressTracker struct {
	mu      sync.Mutex
	enabled bool
	bars    []*barState
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
}

type barState struct {
	key       string
	label     string
	startTime time.Time
	done      bool
	doneMsg   string
}

// NewProgressTracker creates a new progress tracker.
func NewProgressTracker(enabled bool) *ProgressTracker {
	return &ProgressTracker{
		enabled: enabled,
		bars:    make([]*barState, 0),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// startRenderLoop starts the render loop if not already started.
func (pt *ProgressTracker) startRenderLoop() {
	if pt.started {
		return
	}
	pt.started = true
	go pt.renderLoop()
}

// renderLoop continuously redraws all progress lines.
func (pt *ProgressTracker) renderLoop() {
	defer close(pt.doneCh)

	// Hide cursor
	fmt.Print("\033[?25l")

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	firstRender := true

	for {
		select {
		case <-pt.stopCh:
			fmt.Print("\033[?25h") // Show cursor
			return
		case <-ticker.C:
			pt.render(firstRender)
			firstRender = false
		}
	}
}

// render draws all progress lines.
func (pt *ProgressTracker) render(firstRender bool) {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	if len(pt.bars) == 0 {
		return
	}

	// Move cursor up to overwrite previous render (except first time)
	if !firstRender {
		fmt.Printf("\033[%dA", len(pt.bars))
	}

	for _, bar := range pt.bars {
		fmt.Print("\033[2K") // Clear line
		if bar.done {
			fmt.Println(bar.doneMsg)
			continue
		}

		spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		idx := int(time.Now().UnixMilli()/100) % len(spinner)
		elapsed := time.Since(bar.startTime).Round(100 * time.Millisecond)
		fmt.Printf("%s %s (%v)\n", spinner[idx], bar.label, elapsed)
	}
}

// Stop stops the render loop and prints final state.
func (pt *ProgressTracker) Stop() {
	if !pt.enabled || !pt.started {
		return
	}

	// Final render to show all completion messages
	pt.render(false)

	close(pt.stopCh)
	<-pt.doneCh
}

// findBar finds a bar by key.
func (pt *ProgressTracker) findBar(key string) *barState {
	for _, bar := range pt.bars {
		if bar.key == key {
			return bar
		}
	}
	return nil
}

// StartFile starts tracking conversion of a file.
func (pt *ProgressTracker) StartFile(filePath string) {
	if !pt.enabled {
		return
	}

	pt.mu.Lock()
	defer pt.mu.Unlock()

	pt.startRenderLoop()

	pt.bars = append(pt.bars, &barState{
		key:       filePath,
		label:     getShortPath(filePath),
		startTime: time.Now(),
	})
}

// FinishFile marks a file as converted.
func (pt *ProgressTracker) FinishFile(filePath, outputPath string, statements, placeholders int) {
	if !pt.enabled {
		return
	}

	pt.mu.Lock()
	defer pt.mu.Unlock()

	if bar := pt.findBar(filePath); bar != nil {
		bar.done = true
		if placeholders > 0 {
			bar.doneMsg = color.YellowString("✓ Converted %s → %s (%d statements, %d with errors)",
				getShortPath(filePath), getShortPath(outputPath), statements, placeholders)
		} else {
			bar.doneMsg = color.GreenString("✓ Converted %s → %s (%d statements)",
				getShortPath(filePath), getShortPath(outputPath), statements)
		}
	}
}

// ErrorFile marks a file as failed.
func (pt *ProgressTracker) ErrorFile(filePath string, err error) {
	if !pt.enabled {
		return
	}

	pt.mu.Lock()
	defer pt.mu.Unlock()

	if bar := pt.findBar(filePath); bar != nil {
		bar.done = true
		bar.doneMsg = color.RedString("✗ %s failed: %v", getShortPath(filePath), err)
	}
}

// Helper functions

func getShortPath(filePath string) string {
	parts := strings.Split(filePath, "/")
	if len(parts) > 0 {
		return parts[len(parts)-1]
	}
	return filePath
}

func isTerminal() bool {
	fileInfo, _ := os.Stdout.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
