// FILE: lixenwraith/runlog/storage.go
package runlog

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// runNaming is the file naming of a run, fixed when the run starts
type runNaming struct {
	dir    string
	prefix string
	ext    string
}

// runLogFile is a log file named by the run naming convention
type runLogFile struct {
	name  string
	stamp uint64
}

// runFileName builds the file name of a run started at t
func runFileName(prefix, ext string, t time.Time) string {
	stamp := strings.Replace(t.Format(runStampLayout), ".", "", 1)
	name := prefix + runStampSeparator + stamp
	if ext != "" {
		name += "." + ext
	}
	return name
}

// parseRunStamp extracts the numeric stamp of a run file name
// Names that do not follow the convention report false
func parseRunStamp(name, prefix, ext string) (uint64, bool) {
	if !strings.HasPrefix(name, prefix+runStampSeparator) {
		return 0, false
	}
	rest := name[len(prefix)+len(runStampSeparator):]

	if ext != "" {
		if !strings.HasSuffix(rest, "."+ext) {
			return 0, false
		}
		rest = rest[:len(rest)-len(ext)-1]
	}

	if rest == "" {
		return 0, false
	}
	for i := 0; i < len(rest); i++ {
		if rest[i] < '0' || rest[i] > '9' {
			return 0, false
		}
	}

	stamp, err := strconv.ParseUint(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return stamp, true
}

// listRunLogs returns the run log files in dir, ascending by stamp
// A missing directory yields no files
func listRunLogs(dir, prefix, ext string) ([]runLogFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmtErrorf("failed to read log directory '%s': %w", dir, err)
	}

	var logs []runLogFile
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		stamp, ok := parseRunStamp(entry.Name(), prefix, ext)
		if !ok {
			continue
		}
		logs = append(logs, runLogFile{name: entry.Name(), stamp: stamp})
	}

	sort.Slice(logs, func(i, j int) bool {
		if logs[i].stamp == logs[j].stamp {
			return logs[i].name < logs[j].name
		}
		return logs[i].stamp < logs[j].stamp
	})
	return logs, nil
}

// findLastLog returns the name of the run log with the highest stamp in dir
// or an empty string when there is none
func findLastLog(dir, prefix, ext string) (string, error) {
	logs, err := listRunLogs(dir, prefix, ext)
	if err != nil || len(logs) == 0 {
		return "", err
	}
	return logs[len(logs)-1].name, nil
}

// enforceRetention deletes the oldest run logs in dir until at most keep remain
// The current file is never deleted. Returns the number of deleted files.
func enforceRetention(dir, prefix, ext string, keep int, current string) (int, error) {
	logs, err := listRunLogs(dir, prefix, ext)
	if err != nil {
		return 0, err
	}

	excess := len(logs) - keep
	var deleted int
	var errs error
	for _, lf := range logs {
		if excess <= 0 {
			break
		}
		if lf.name == current {
			continue
		}
		filePath := filepath.Join(dir, lf.name)
		if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
			errs = combineErrors(errs, fmtErrorf("failed to remove old log file '%s': %w", filePath, err))
			continue
		}
		excess--
		deleted++
	}
	return deleted, errs
}

// createRunLogFile creates a new run log in dir named after now.
// The file is opened read/write and must not exist yet; on a name collision
// the stamp moves forward by a millisecond.
func createRunLogFile(dir, prefix, ext string, now time.Time) (*os.File, string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, "", fmtErrorf("failed to create log directory '%s': %w", dir, err)
	}

	const maxAttempts = 100
	t := now
	for i := 0; i < maxAttempts; i++ {
		name := runFileName(prefix, ext, t)
		fullPath := filepath.Join(dir, name)
		file, err := os.OpenFile(fullPath, os.O_RDWR|os.O_CREATE|os.O_EXCL|os.O_TRUNC, 0644)
		if err == nil {
			return file, name, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", fmtErrorf("failed to open/create log file '%s': %w", fullPath, err)
		}
		t = t.Add(time.Millisecond)
	}
	return nil, "", fmtErrorf("failed to find a free log file name in '%s'", dir)
}

// openRunLog discovers the previous run logs, creates this run's file and
// applies retention. It is the single entry of the file lifecycle at start.
func (l *Logger) openRunLog() error {
	c := l.getConfig()

	last, err := findLastLog(c.Directory, c.Name, c.Extension)
	if err != nil {
		l.internalLog("warning - previous log discovery failed: %v\n", err)
	}
	l.state.PreviousLog.Store(last)

	if c.CrashDirectory != "" {
		lastCrash, err := findLastLog(c.CrashDirectory, c.CrashName, c.Extension)
		if err != nil {
			l.internalLog("warning - previous crash log discovery failed: %v\n", err)
		}
		l.state.PreviousCrashLog.Store(lastCrash)
	}

	naming := runNaming{dir: c.Directory, prefix: c.Name, ext: c.Extension}
	file, name, err := createRunLogFile(naming.dir, naming.prefix, naming.ext, time.Now())
	if err != nil {
		return err
	}
	l.naming = naming

	l.fileMu.Lock()
	l.file = file
	l.fileName = name
	l.fileSize = 0
	l.fileDirty = false
	l.fileMu.Unlock()

	l.applyRetention(name)
	return nil
}

// applyRetention trims the run's log directory to the configured retention count
func (l *Logger) applyRetention(current string) {
	n := l.naming
	deleted, err := enforceRetention(n.dir, n.prefix, n.ext, int(l.getConfig().RetentionCount), current)
	l.state.TotalDeletions.Add(uint64(deleted))
	if err != nil {
		l.internalLog("warning - retention cleanup failed: %v\n", err)
	}
}

// rotateLogFile switches to a new run-named file, called by the worker only
func (l *Logger) rotateLogFile() error {
	n := l.naming

	file, name, err := createRunLogFile(n.dir, n.prefix, n.ext, time.Now())
	if err != nil {
		return fmtErrorf("failed to create log file during rotation: %w", err)
	}

	l.fileMu.Lock()
	old := l.file
	l.file = file
	l.fileName = name
	l.fileSize = 0
	l.fileDirty = false
	l.fileMu.Unlock()

	if old != nil {
		_ = old.Sync()
		if err := old.Close(); err != nil {
			l.internalLog("failed to close log file after rotation: %v\n", err)
		}
	}

	l.state.TotalRotations.Add(1)
	l.applyRetention(name)
	return nil
}

// performSync syncs the current log file if anything was written since the last sync
func (l *Logger) performSync() {
	l.fileMu.Lock()
	defer l.fileMu.Unlock()

	if l.file == nil || !l.fileDirty {
		return
	}
	if err := l.file.Sync(); err != nil {
		l.internalLog("warning - log file sync failed for '%s': %v\n", l.file.Name(), err)
		return
	}
	l.fileDirty = false
}

// closeLogFile syncs and closes the current log file
func (l *Logger) closeLogFile() error {
	l.fileMu.Lock()
	defer l.fileMu.Unlock()

	if l.file == nil {
		return nil
	}

	var finalErr error
	if err := l.file.Sync(); err != nil {
		finalErr = combineErrors(finalErr, fmtErrorf("failed to sync log file '%s' during shutdown: %w", l.file.Name(), err))
	}
	if err := l.file.Close(); err != nil {
		finalErr = combineErrors(finalErr, fmtErrorf("failed to close log file '%s' during shutdown: %w", l.file.Name(), err))
	}
	l.file = nil
	return finalErr
}
