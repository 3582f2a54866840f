package wiki

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/newgrf/nch/internal/domain"
)

// ClassTableHeadline is the section title above the cargo class table on the
// Action0/Cargos page.
const ClassTableHeadline = "CargoClasses (16)"

var (
	labelCodeRe = regexp.MustCompile(`^[A-Z0-9_]`)
	bitmaskRe   = regexp.MustCompile(`^[A-F0-9]{4}`)
	// Some labels carry different classes per industry set; the notes column
	// sometimes names the FIRS mask, which wins.
	firsMaskRe = regexp.MustCompile(`(?i)firs[-:., ]+([A-F0-9]{4})`)
)

// ParseLabels extracts label rows from the CargoTypes page.
//
// Only the first table is read, up to the "Special cargos" row. A row counts
// when it has at least six cells, the first starts like a label code and the
// third starts with a four digit hex mask.
func ParseLabels(r io.Reader) ([]domain.RawLabel, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, parseError("wiki.parselabels", err)
	}

	table := findFirst(doc, func(n *html.Node) bool { return isElement(n, atom.Table) })
	if table == nil {
		return nil, parseError("wiki.parselabels", fmt.Errorf("no table in page"))
	}

	var out []domain.RawLabel
	for _, row := range tableRows(table) {
		if len(row) > 0 && strings.HasPrefix(strings.ToLower(row[0]), "special cargos") {
			break
		}
		if !isLabelRow(row) {
			continue
		}

		mask, _ := parseHex16(row[2][:4])
		if len(row) >= 8 {
			if m := firsMaskRe.FindStringSubmatch(row[7]); m != nil {
				if v, ok := parseHex16(m[1]); ok {
					mask = v
				}
			}
		}

		var industries []string
		for _, ind := range row[3:min(7, len(row))] {
			if ind != "" {
				industries = append(industries, ind)
			}
		}

		out = append(out, domain.RawLabel{
			Code:        row[0],
			Description: row[1],
			Bitmask:     mask,
			Industries:  industries,
		})
	}
	return out, nil
}

func isLabelRow(row []string) bool {
	return len(row) >= 6 && labelCodeRe.MatchString(row[0]) && bitmaskRe.MatchString(row[2])
}

// ParseClassTable extracts the class rows that follow the "CargoClasses (16)"
// headline on the Action0/Cargos page. Rows whose value cell is not hex
// (headers, footnotes) are skipped.
func ParseClassTable(r io.Reader) ([]domain.ClassRow, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, parseError("wiki.parseclasses", err)
	}

	headline := findFirst(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		if hasClass(n, "mw-headline") || isHeading(n) {
			return strings.TrimSpace(textOf(n)) == ClassTableHeadline
		}
		return false
	})
	if headline == nil {
		return nil, parseError("wiki.parseclasses", fmt.Errorf("headline %q not found", ClassTableHeadline))
	}

	table := tableAfter(headline)
	if table == nil {
		return nil, parseError("wiki.parseclasses", fmt.Errorf("no table after %q", ClassTableHeadline))
	}

	var out []domain.ClassRow
	for _, row := range tableRows(table) {
		if len(row) < 6 {
			continue
		}
		v, ok := parseHex16(strings.TrimPrefix(strings.ToLower(row[1]), "0x"))
		if !ok || v == 0 {
			continue
		}
		out = append(out, domain.ClassRow{
			Value:     domain.ClassBit(v),
			Name:      row[2],
			WagonType: row[3],
			Usage:     row[4],
			Tips:      row[5],
		})
	}
	return out, nil
}

// tableAfter walks the next siblings of the headline's heading looking for a
// table. Newer MediaWiki wraps headings in a div.mw-heading; that wrapper's
// siblings are searched as well.
func tableAfter(headline *html.Node) *html.Node {
	anchor := headline
	if !isHeading(anchor) && anchor.Parent != nil {
		anchor = anchor.Parent
	}
	for _, start := range []*html.Node{anchor, anchor.Parent} {
		if start == nil {
			continue
		}
		for s := start.NextSibling; s != nil; s = s.NextSibling {
			if isElement(s, atom.Table) {
				return s
			}
			if isHeading(s) || hasClass(s, "mw-heading") {
				break
			}
		}
		if start.Parent == nil || !hasClass(start.Parent, "mw-heading") {
			break
		}
	}
	return nil
}

// tableRows returns the trimmed text of every td of every tr, in document order.
func tableRows(table *html.Node) [][]string {
	var rows [][]string
	walk(table, func(n *html.Node) {
		if !isElement(n, atom.Tr) {
			return
		}
		var cells []string
		walk(n, func(c *html.Node) {
			if isElement(c, atom.Td) {
				cells = append(cells, strings.TrimSpace(textOf(c)))
			}
		})
		rows = append(rows, cells)
	})
	return rows
}

func walk(n *html.Node, fn func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		fn(c)
		walk(c, fn)
	}
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func textOf(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	return b.String()
}

func isElement(n *html.Node, a atom.Atom) bool {
	return n != nil && n.Type == html.ElementNode && n.DataAtom == a
}

func isHeading(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

func hasClass(n *html.Node, class string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func parseHex16(s string) (uint16, bool) {
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, false
	}
	return uint16(v), true
}

func parseError(op string, err error) error {
	return domain.NewFetchError(op, err)
}
