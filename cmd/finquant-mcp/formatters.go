package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ternarybob/finquant/internal/models"
)

// formatPayload renders the payload as indented JSON, the shape callers of
// the tool consume directly
func formatPayload(payload *models.VerdictPayload) (string, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// formatEntries renders archive entries as a markdown list
func formatEntries(entries []*models.ArchiveEntry) string {
	if len(entries) == 0 {
		return "No archived verdicts."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Archived Verdicts (%d)\n\n", len(entries)))
	for i, e := range entries {
		sb.WriteString(fmt.Sprintf("%d. **%s** (%s)\n", i+1, e.Company, e.Ticker))
		sb.WriteString(fmt.Sprintf("   - Base name: %s\n", e.BaseName))
		sb.WriteString(fmt.Sprintf("   - Generated: %s\n", e.GeneratedAt.Format("2006-01-02 15:04:05")))
		sb.WriteString(fmt.Sprintf("   - Files: %d\n", len(e.SavedFiles)))
		if e.URL != "" {
			sb.WriteString(fmt.Sprintf("   - Source: %s\n", e.URL))
		}
	}
	return sb.String()
}
