package election

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/m3rciful/electionbot/core/telegram/format"
)

// Percentages returns each ticket's share of the counted votes.
// All shares are zero when nothing has been counted yet.
func Percentages(votes [3]int64) [3]float64 {
	var out [3]float64
	total := votes[0] + votes[1] + votes[2]
	if total <= 0 {
		return out
	}
	for i, v := range votes {
		out[i] = float64(v) / float64(total) * 100
	}
	return out
}

// FormatCount groups thousands with dots, e.g. 1234567 -> "1.234.567".
func FormatCount(n int64) string {
	return strings.ReplaceAll(humanize.Comma(n), ",", ".")
}

// FormatShare renders a percentage with two decimals.
func FormatShare(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}

// RenderQuickCount formats a quick count snapshot as Telegram HTML.
func RenderQuickCount(qc QuickCount) string {
	shares := Percentages(qc.Votes)

	var b strings.Builder
	b.WriteString("<b>Quick Count</b>\n\n")
	b.WriteString("<b>Last Data</b>   : ")
	b.WriteString(format.EscapeHTML(qc.Timestamp))
	b.WriteString("\n")
	b.WriteString("<b>Progress</b>    : ")
	b.WriteString(FormatCount(qc.Progress.Reporting))
	b.WriteString(" / ")
	b.WriteString(strconv.FormatInt(qc.Progress.Total, 10))
	b.WriteString(" TPS (")
	b.WriteString(qc.FormatPercent())
	b.WriteString("%)\n\n")

	b.WriteString("<b>Result Data and Percentage</b>\n")
	for i, v := range qc.Votes {
		b.WriteString("<b>0")
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString("</b> : ")
		b.WriteString(FormatCount(v))
		b.WriteString(" (")
		b.WriteString(FormatShare(shares[i]))
		b.WriteString("%)\n")
	}
	b.WriteString("\n")
	b.WriteString("Total Incoming Votes: <b>")
	b.WriteString(FormatCount(qc.Total()))
	b.WriteString("</b>\n")
	return b.String()
}

// RenderCandidates formats every candidate as a block, in input order.
// Each block is followed by a blank line. An empty list renders as "".
func RenderCandidates(list []Candidate) string {
	var b strings.Builder
	for _, c := range list {
		writeField(&b, "Name", c.Name)
		writeField(&b, "Position", c.Position)
		writeField(&b, "Full Name", c.FullName)
		writeField(&b, "Birth Place", c.BirthPlace)
		writeField(&b, "Birth Date", c.BirthDate)
		writeField(&b, "Age", c.Age)
		b.WriteString("<b>Career:</b>\n")
		career := make([]string, len(c.Career))
		for i, entry := range c.Career {
			career[i] = format.EscapeHTML(entry)
		}
		b.WriteString(strings.Join(career, "\n"))
		b.WriteString("\n\n")
	}
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	b.WriteString("<b>")
	b.WriteString(label)
	b.WriteString(":</b> ")
	b.WriteString(format.EscapeHTML(value))
	b.WriteString("\n")
}
