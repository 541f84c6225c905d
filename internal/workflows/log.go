package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/PolarWolf314/envseal/internal/audit"
	kerrors "github.com/PolarWolf314/envseal/internal/errors"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// Dir is the directory to run in. Defaults to the working directory.
	Dir string

	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// User filters entries by OS user name.
	User string

	// Operations filters entries by operation types (comma-separated).
	Operations string

	// Since filters entries after this date (YYYY-MM-DD format).
	Since string

	// Until filters entries before this date (YYYY-MM-DD format).
	Until string

	// File keeps entries that touched a matching file. It is a path
	// relative to the project root or a doublestar pattern.
	File string

	// FailedOnly keeps entries where at least one value failed.
	FailedOnly bool
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	// Entries are the filtered audit log entries.
	Entries []audit.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// Log reads and filters the audit log.
//
// Returns ErrProjectNotInitialized if no .envseal.toml was found.
// Returns ErrNoAuditLog if auditing is disabled or nothing was logged yet.
// Returns ErrInvalidDateFormat if the date format is invalid.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	proj, err := loadProject(opts.Dir)
	if err != nil {
		return nil, err
	}
	if !proj.initialized {
		return nil, kerrors.ErrProjectNotInitialized
	}

	logPath := proj.auditPath()
	if logPath == "" {
		return nil, kerrors.ErrNoAuditLog
	}

	// Read log file.
	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, kerrors.ErrNoAuditLog
	}
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}

	// Parse entries.
	entries, err := audit.ParseEntries(data)
	if err != nil {
		return nil, fmt.Errorf("parsing audit log: %w", err)
	}

	result := &LogResult{
		TotalEntriesBeforeFilter: len(entries),
	}

	if len(entries) == 0 {
		result.Entries = entries
		return result, nil
	}

	// Apply filters.
	filtered := entries

	if opts.User != "" {
		filtered = filterByUser(filtered, opts.User)
	}

	if opts.Operations != "" {
		ops := strings.Split(opts.Operations, ",")
		for i := range ops {
			ops[i] = strings.TrimSpace(ops[i])
		}
		filtered = filterByOperations(filtered, ops)
	}

	if opts.Since != "" {
		sinceTime, err := time.Parse("2006-01-02", opts.Since)
		if err != nil {
			return nil, fmt.Errorf("%w: --since date format invalid, use YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		filtered = filterByTime(filtered, func(t time.Time) bool { return !t.Before(sinceTime) })
	}

	if opts.Until != "" {
		untilTime, err := time.Parse("2006-01-02", opts.Until)
		if err != nil {
			return nil, fmt.Errorf("%w: --until date format invalid, use YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		// Include the entire day by setting to end of day.
		untilTime = untilTime.Add(24*time.Hour - time.Nanosecond)
		filtered = filterByTime(filtered, func(t time.Time) bool { return !t.After(untilTime) })
	}

	if opts.File != "" {
		if !doublestar.ValidatePattern(opts.File) {
			return nil, fmt.Errorf("%w: invalid --file pattern %q", kerrors.ErrInvalidInput, opts.File)
		}
		filtered = filterByFile(filtered, opts.File)
	}

	if opts.FailedOnly {
		filtered = filterFailed(filtered)
	}

	// Apply ordering.
	if opts.Reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	// Apply limit.
	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			// When reversed, limit takes first N (most recent).
			filtered = filtered[:opts.Limit]
		} else {
			// When not reversed, limit takes last N (most recent).
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

// filterByUser filters entries by user name (case-insensitive).
func filterByUser(entries []audit.Entry, user string) []audit.Entry {
	var result []audit.Entry
	for _, e := range entries {
		if strings.EqualFold(e.User, user) {
			result = append(result, e)
		}
	}
	return result
}

// filterByOperations filters entries by operation types.
func filterByOperations(entries []audit.Entry, ops []string) []audit.Entry {
	opSet := make(map[string]bool)
	for _, op := range ops {
		opSet[strings.ToLower(op)] = true
	}

	var result []audit.Entry
	for _, e := range entries {
		if opSet[strings.ToLower(e.Operation)] {
			result = append(result, e)
		}
	}
	return result
}

// filterByFile keeps entries that list a file matching pattern.
func filterByFile(entries []audit.Entry, pattern string) []audit.Entry {
	pattern = filepath.ToSlash(filepath.Clean(pattern))
	var result []audit.Entry
	for _, e := range entries {
		for _, f := range e.Files {
			if ok, _ := doublestar.Match(pattern, filepath.ToSlash(f)); ok {
				result = append(result, e)
				break
			}
		}
	}
	return result
}

func filterFailed(entries []audit.Entry) []audit.Entry {
	var result []audit.Entry
	for _, e := range entries {
		if e.Failed > 0 {
			result = append(result, e)
		}
	}
	return result
}

// filterByTime keeps entries whose timestamp satisfies keep. Entries with
// unreadable timestamps are dropped.
func filterByTime(entries []audit.Entry, keep func(time.Time) bool) []audit.Entry {
	var result []audit.Entry
	for _, e := range entries {
		t, err := parseTimestamp(e.Timestamp)
		if err != nil {
			continue
		}
		if keep(t) {
			result = append(result, e)
		}
	}
	return result
}

// parseTimestamp reads an audit timestamp in either format the log has used.
func parseTimestamp(ts string) (time.Time, error) {
	t, err := time.Parse("2006-01-02T15:04:05.000000Z", ts)
	if err != nil {
		t, err = time.Parse(time.RFC3339, ts)
	}
	return t, err
}

// FormatDate formats a timestamp string to YYYY-MM-DD format.
func FormatDate(ts string) string {
	t, err := parseTimestamp(ts)
	if err != nil {
		if len(ts) >= 10 {
			return ts[:10]
		}
		return ts
	}
	return t.Format("2006-01-02")
}

// FormatDateTime formats a timestamp string to YYYY-MM-DD HH:MM:SS format.
func FormatDateTime(ts string) string {
	t, err := parseTimestamp(ts)
	if err != nil {
		if len(ts) >= 19 {
			return ts[:19]
		}
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatCounts summarizes the values an entry touched: "+4" for four
// changed values, "+4 !1" when one more failed, and "-" when the operation
// does not handle values.
func FormatCounts(e audit.Entry) string {
	if e.Operation == "init" || len(e.Files) == 0 {
		return "-"
	}
	counts := fmt.Sprintf("+%d", e.Changed)
	if e.Failed > 0 {
		counts += fmt.Sprintf(" !%d", e.Failed)
	}
	return counts
}

// FormatFiles lists an entry's files, naming at most two.
func FormatFiles(e audit.Entry) string {
	switch n := len(e.Files); {
	case n == 0:
		return "-"
	case n <= 2:
		return strings.Join(e.Files, ", ")
	default:
		return fmt.Sprintf("%s, %s +%d more", e.Files[0], e.Files[1], n-2)
	}
}

// FormatOperation names the operation, with the policy when one was used.
func FormatOperation(e audit.Entry) string {
	if e.Policy == "" {
		return e.Operation
	}
	return e.Operation + "/" + e.Policy
}
