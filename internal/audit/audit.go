package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/PolarWolf314/envseal/internal/utils"
)

// Entry represents a single audit log entry. Entries never hold values or
// passphrases, only file paths and counts.
type Entry struct {
	ID        string `json:"id"`   // Random UUID.
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	User      string `json:"user"` // OS user performing the action.
	Host      string `json:"host,omitempty"`
	Operation string `json:"op"` // encrypt, decrypt, rotate, seal, unseal, init.

	// Optional fields depending on operation.
	Policy  string   `json:"policy,omitempty"`  // For encrypt.
	Files   []string `json:"files,omitempty"`   // Relative to the project root.
	Changed int      `json:"changed,omitempty"` // Values sealed, revealed or rotated.
	Failed  int      `json:"failed,omitempty"`  // Lines that could not be processed.
}

// NewEntry returns an entry for op with the ID, user and host filled in.
func NewEntry(op string) Entry {
	entry := Entry{
		ID:        uuid.New().String(),
		Operation: op,
	}
	if user, err := utils.GetUsername(); err == nil {
		entry.User = user
	}
	if host, err := utils.GetHostname(); err == nil {
		entry.Host = host
	}
	return entry
}

// Log appends an entry to the audit log at path, creating the file and its
// directory as needed. An empty path disables logging.
// If logging fails, it does not return an error.
// Operations should not fail just because audit logging failed.
func Log(path string, entry Entry) {
	if path == "" {
		return
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	// Set timestamp if not already set.
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return
	}

	// Open file for appending (create if doesn't exist).
	// #nosec G306 -- audit log holds no secrets and is shared with the team.
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	// Write entry with newline.
	_, _ = f.Write(append(data, '\n'))
}

// ReadEntries reads all entries from the audit log at path.
// Returns an empty slice if the log doesn't exist.
func ReadEntries(path string) ([]Entry, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Skip malformed entries.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
