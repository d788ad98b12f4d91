package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Table accumulates rows and renders them aligned with tabwriter.
type Table struct {
	headers []string
	rows    [][]string
	writer  io.Writer
}

func NewTable(headers ...string) *Table {
	return &Table{headers: headers, writer: os.Stdout}
}

func (t *Table) AddRow(cols ...string) {
	t.rows = append(t.rows, cols)
}

func (t *Table) Render() {
	w := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, strings.Join(t.headers, "\t"))

	underline := make([]string, len(t.headers))
	for i, h := range t.headers {
		underline[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(w, strings.Join(underline, "\t"))

	for _, row := range t.rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
}

// printOutput renders data in the format selected with -o. Table-shaped
// commands build a Table themselves; anything else falls back to JSON.
func printOutput(data interface{}) error {
	switch getOutputFormat() {
	case "yaml":
		return printYAML(data)
	default:
		return printJSON(data)
	}
}

func printJSON(data interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printYAML(data interface{}) error {
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(data)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// formatSeverity prefixes a severity with a marker that survives
// terminals without color support.
func formatSeverity(severity string) string {
	switch strings.ToLower(severity) {
	case "critical":
		return "[!] CRITICAL"
	case "warning":
		return "[W] WARNING"
	case "info":
		return "[I] INFO"
	}
	return severity
}

// formatState marks device and alert states as good, bad, or in-between.
func formatState(state string) string {
	switch strings.ToLower(state) {
	case "connected", "online", "healthy", "active", "resolved":
		return "[+] " + state
	case "disconnected", "offline", "unhealthy", "error", "critical":
		return "[-] " + state
	case "upgrading", "provisioning", "adopting", "degraded", "acknowledged", "warning":
		return "[~] " + state
	}
	return state
}

func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
