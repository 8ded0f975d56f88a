// Package textproc converts raw filing HTML into clean, bounded plain text
// suitable for prompting, with tables linearized as markdown.
package textproc

import (
	"strings"

	"golang.org/x/net/html"
)

// TruncationMarker is appended when a normalized document is cut at the
// length bound.
const TruncationMarker = "[TRUNCATED]"

var skippedTags = map[string]bool{
	"script": true,
	"style":  true,
	"meta":   true,
	"link":   true,
}

// Normalize extracts clean text from filing HTML, converting tables to
// markdown rows and bounding the output at maxChars characters.
func Normalize(rawHTML string, maxChars int) string {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		// html.Parse tolerates malformed markup; a hard error means the
		// input is not HTML at all, so bound the raw text instead.
		return bound(strings.TrimSpace(rawHTML), maxChars)
	}

	var lines []string
	collectLines(doc, &lines)
	return bound(strings.Join(lines, "\n"), maxChars)
}

func collectLines(n *html.Node, lines *[]string) {
	if n.Type == html.ElementNode {
		if skippedTags[n.Data] {
			return
		}
		if n.Data == "table" {
			*lines = append(*lines, tableToMarkdown(n)...)
			return
		}
	}
	if n.Type == html.TextNode {
		for _, line := range strings.Split(n.Data, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				*lines = append(*lines, trimmed)
			}
		}
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectLines(child, lines)
	}
}

// tableToMarkdown renders a table element as markdown rows with a
// separator line after the header row.
func tableToMarkdown(table *html.Node) []string {
	var rows []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var cells []string
			for cell := n.FirstChild; cell != nil; cell = cell.NextSibling {
				cells = append(cells, rowCells(cell)...)
			}
			if len(cells) > 0 {
				rows = append(rows, "| "+strings.Join(cells, " | ")+" |")
			}
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(table)

	if len(rows) > 0 {
		numCols := strings.Count(rows[0], "|") - 1
		sep := make([]string, numCols)
		for i := range sep {
			sep[i] = "---"
		}
		rows = append(rows[:1], append([]string{"| " + strings.Join(sep, " | ") + " |"}, rows[1:]...)...)
	}
	return rows
}

func rowCells(n *html.Node) []string {
	if n.Type == html.ElementNode && (n.Data == "td" || n.Data == "th") {
		return []string{textContent(n)}
	}
	var cells []string
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		cells = append(cells, rowCells(child)...)
	}
	return cells
}

// textContent gathers the whitespace-collapsed text inside a node.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func bound(text string, maxChars int) string {
	if maxChars > 0 && len(text) > maxChars {
		return text[:maxChars] + "\n" + TruncationMarker
	}
	return text
}
