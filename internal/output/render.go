// Package output renders classification results.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/guiyumin/linkparse/internal/config"
	"github.com/guiyumin/linkparse/internal/scan"
)

const (
	unrecognizedLabel = "unrecognized"
	summaryWidth      = 14
)

// record is the JSON shape of a result
type record struct {
	URL        string `json:"url"`
	Recognized bool   `json:"recognized"`
	Service    string `json:"service,omitempty"`
	ID         string `json:"id,omitempty"`
}

// Render writes results to w in the given format
func Render(w io.Writer, format string, results []scan.Result) error {
	switch format {
	case config.FormatText:
		return renderText(w, results)
	case config.FormatTable:
		return renderTable(w, results)
	case config.FormatJSON:
		return renderJSON(w, results)
	case config.FormatID:
		return renderIDs(w, results)
	default:
		return fmt.Errorf("%w: %q", config.ErrInvalidFormat, format)
	}
}

func renderText(w io.Writer, results []scan.Result) error {
	st := newStyles(w)

	width := len(unrecognizedLabel)
	for _, r := range results {
		width = max(width, len(r.Link.Service))
	}

	for _, r := range results {
		var line string
		if r.OK {
			service := st.Service.Render(padRight(r.Link.Service, width))
			line = fmt.Sprintf("%s  %s  %s", service, st.ID.Render(r.Link.ID), st.URL.Render(r.URL))
		} else {
			line = fmt.Sprintf("%s  %s", st.Unrecognized.Render(padRight(unrecognizedLabel, width)), st.URL.Render(r.URL))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func renderTable(w io.Writer, results []scan.Result) error {
	st := newStyles(w)

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		service, id := r.Link.Service, r.Link.ID
		if !r.OK {
			service, id = unrecognizedLabel, "-"
		}
		rows = append(rows, []string{service, id, r.URL})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(st.Border).
		Headers("SERVICE", "ID", "URL").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.Header
			}
			if row < 0 || row >= len(rows) {
				return st.Cell
			}
			if rows[row][0] == unrecognizedLabel {
				return st.Cell.Inherit(st.Unrecognized)
			}
			return st.Cell
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func renderJSON(w io.Writer, results []scan.Result) error {
	records := make([]record, 0, len(results))
	for _, r := range results {
		records = append(records, record{
			URL:        r.URL,
			Recognized: r.OK,
			Service:    r.Link.Service,
			ID:         r.Link.ID,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(records)
}

// renderIDs prints one identifier per line, blank for unrecognized input,
// so line N of the output always matches input N
func renderIDs(w io.Writer, results []scan.Result) error {
	for _, r := range results {
		if _, err := fmt.Fprintln(w, r.Link.ID); err != nil {
			return err
		}
	}
	return nil
}

// RenderSummary writes per-service counts
func RenderSummary(w io.Writer, s scan.Summary) error {
	st := newStyles(w)

	var b strings.Builder
	b.WriteString(st.Header.Render("Summary"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %d\n", padRight("total", summaryWidth), s.Total)
	for _, name := range s.Services() {
		fmt.Fprintf(&b, "  %s %d\n", st.Service.Render(padRight(name, summaryWidth)), s.ByService[name])
	}
	fmt.Fprintf(&b, "  %s %d\n", st.Unrecognized.Render(padRight(unrecognizedLabel, summaryWidth)), s.Unrecognized)

	_, err := io.WriteString(w, b.String())
	return err
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
