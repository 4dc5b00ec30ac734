package runlog

import (
	"sync"
)

// dedupFilter detects floods of near-identical consecutive records.
// One run is the sequence of consecutive records sharing a site and a checksum
// within maxCharVariation of the run's first record.
type dedupFilter struct {
	mu       sync.Mutex
	lastSite uint64
	lastSum  int
	count    int  // Occurrences in the current run, including the first
	active   bool // False until the first record
}

// sumChars computes the coarse checksum of a rendered message
func sumChars(text string) int {
	sum := 0
	for i := 0; i < len(text); i++ {
		sum += int(text[i])
	}
	return sum
}

// check reports whether the record must be suppressed, and the number of
// suppressed lines of the run it closes (0 when no summary is due)
func (d *dedupFilter) check(r logRecord, unfiltered bool) (suppress bool, closed int) {
	if unfiltered {
		return false, 0
	}

	sum := sumChars(r.Text)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.active && d.lastSite == r.Site {
		diff := sum - d.lastSum
		if diff < 0 {
			diff = -diff
		}
		if diff < maxCharVariation {
			d.count++
			return d.count > maxRepeatedLines, 0
		}
	}

	closed = d.excess()
	d.lastSite = r.Site
	d.lastSum = sum
	d.count = 1
	d.active = true

	return false, closed
}

// finish closes the current run, returning its suppressed line count
func (d *dedupFilter) finish() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	closed := d.excess()
	d.count = 0
	d.active = false
	return closed
}

// excess returns the suppressed line count of the current run, caller holds mu
func (d *dedupFilter) excess() int {
	if d.count > maxRepeatedLines {
		return d.count - maxRepeatedLines
	}
	return 0
}
