package navigation

import "time"

// ProgressReporter provides callbacks for reporting search progress.
// Implementations can display progress bars, log messages, or remain silent.
type ProgressReporter interface {
	// OnDiscoveryStart is called when file discovery begins.
	OnDiscoveryStart()

	// OnDiscoveryComplete is called when file discovery finishes.
	OnDiscoveryComplete(files int)

	// OnFileProcessingStart is called before scanning files.
	OnFileProcessingStart(totalFiles int)

	// OnFileProcessed is called after each file is scanned. Calls are serialized.
	OnFileProcessed(fileName string)

	// OnComplete is called when the scan finishes successfully.
	OnComplete(stats *SearchStats)
}

// SearchStats summarizes one scan over the project.
type SearchStats struct {
	FilesDiscovered int
	FilesScanned    int
	FilesSkipped    int
	CacheHits       int
	Matches         int
	Duration        time.Duration
}

// NoOpProgressReporter is a progress reporter that does nothing.
// Used when progress reporting is disabled (e.g., --quiet flag).
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnDiscoveryStart()                    {}
func (n *NoOpProgressReporter) OnDiscoveryComplete(files int)        {}
func (n *NoOpProgressReporter) OnFileProcessingStart(totalFiles int) {}
func (n *NoOpProgressReporter) OnFileProcessed(fileName string)      {}
func (n *NoOpProgressReporter) OnComplete(stats *SearchStats)        {}
