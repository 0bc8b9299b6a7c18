package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/vitals/status"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkEscalation        BookmarkType = "escalation"
	BookmarkRecovery          BookmarkType = "recovery"
	BookmarkSustainedCritical BookmarkType = "sustained_critical"
	BookmarkPopulationCap     BookmarkType = "population_cap"
	BookmarkBurstSpam         BookmarkType = "burst_spam"
)

// Bookmark marks a notable moment in a run.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int64        `csv:"tick"`
	Time        float64      `csv:"time"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector watches closed windows for notable transitions.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	maxFixers      int
	sustainWindows int

	criticalStreak int
	capReached     bool
}

// NewBookmarkDetector creates a detector with the given history size.
// maxFixers is the population cap; sustainWindows is how many consecutive
// critical windows count as sustained.
func NewBookmarkDetector(historySize, maxFixers, sustainWindows int) *BookmarkDetector {
	if historySize < 2 {
		historySize = 2
	}
	if sustainWindows < 1 {
		sustainWindows = 1
	}
	return &BookmarkDetector{
		history:        make([]WindowStats, historySize),
		historySize:    historySize,
		maxFixers:      maxFixers,
		sustainWindows: sustainWindows,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark
	mark := func(t BookmarkType, desc string) {
		bookmarks = append(bookmarks, Bookmark{Type: t, Tick: stats.WindowEndTick, Time: stats.SimTimeSec, Description: desc})
	}
	critical := status.Critical.String()
	stable := status.Stable.String()

	if prev, ok := bd.last(); ok {
		if prev.Class != critical && stats.Class == critical {
			mark(BookmarkEscalation, fmt.Sprintf("%s -> critical at metric %d", prev.Class, stats.Metric))
		}
		if prev.Class != stable && stats.Class == stable {
			mark(BookmarkRecovery, fmt.Sprintf("stable after %d unstable windows", bd.unstableRun()))
		}
	}

	if stats.Class == critical {
		bd.criticalStreak++
		if bd.criticalStreak == bd.sustainWindows {
			mark(BookmarkSustainedCritical, fmt.Sprintf("critical for %d windows", bd.criticalStreak))
		}
	} else {
		bd.criticalStreak = 0
	}

	if bd.maxFixers > 0 && stats.Fixers >= bd.maxFixers {
		if !bd.capReached {
			mark(BookmarkPopulationCap, fmt.Sprintf("fixers capped at %d", bd.maxFixers))
		}
		bd.capReached = true
	} else {
		bd.capReached = false
	}

	if stats.BurstsRejected >= 3 {
		mark(BookmarkBurstSpam, fmt.Sprintf("%d bursts rejected", stats.BurstsRejected))
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// last returns the most recent window added to the history.
func (bd *BookmarkDetector) last() (WindowStats, bool) {
	if !bd.historyFull && bd.historyIdx == 0 {
		return WindowStats{}, false
	}
	i := (bd.historyIdx - 1 + bd.historySize) % bd.historySize
	return bd.history[i], true
}

// unstableRun counts consecutive non-stable windows at the end of the
// history, bounded by the history size.
func (bd *BookmarkDetector) unstableRun() int {
	n := bd.historyIdx
	if bd.historyFull {
		n = bd.historySize
	}
	run := 0
	for k := 1; k <= n; k++ {
		i := (bd.historyIdx - k + bd.historySize) % bd.historySize
		if bd.history[i].Class == status.Stable.String() {
			break
		}
		run++
	}
	return run
}
