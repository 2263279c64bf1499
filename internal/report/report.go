// Package report renders a battery report as JSON, Markdown or HTML
package report

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	domain "gouniform/domain/uniformity"
	"gouniform/internal/errors"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Format selects an output encoding
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat resolves a user-supplied format name; empty means JSON
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	}
	return "", errors.UnsupportedFormat(s)
}

// ContentType returns the MIME type for the format
func (f Format) ContentType() string {
	switch f {
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	}
	return "application/json; charset=utf-8"
}

// Render encodes the report in the requested format
func Render(r domain.Report, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		out, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode report")
		}
		return out, nil
	case FormatMarkdown:
		return []byte(Markdown(r)), nil
	case FormatHTML:
		return HTML(r), nil
	}
	return nil, errors.UnsupportedFormat(string(format))
}

// HTML renders the Markdown report as a complete HTML page
func HTML(r domain.Report) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: "Uniformity report " + r.RunID.String(),
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.ToHTML([]byte(Markdown(r)), p, renderer)
}

// Markdown renders a summary table followed by one section per test
func Markdown(r domain.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Uniformity report\n\n")
	fmt.Fprintf(&b, "- Run: `%s`\n", r.RunID)
	fmt.Fprintf(&b, "- Sample: %d numbers (`%s`)\n", r.SampleSize, shortHash(r.SampleHash.String()))
	fmt.Fprintf(&b, "- Alpha: %s, intervals: %d\n", num(r.Alpha), r.Intervals)
	fmt.Fprintf(&b, "- Created: %s\n\n", r.CreatedAt.Format("2006-01-02 15:04:05 MST"))

	b.WriteString("| Test | Verdict |\n|---|---|\n")
	for _, o := range r.Outcomes {
		fmt.Fprintf(&b, "| %s | %s |\n", o.Test.DisplayName(), o.Verdict)
	}

	for _, o := range r.Outcomes {
		fmt.Fprintf(&b, "\n## %s\n\n", o.Test.DisplayName())
		if o.Result == nil {
			fmt.Fprintf(&b, "Indeterminate: %s\n", o.Error)
			continue
		}
		writeResult(&b, o.Result)
	}
	return b.String()
}

func writeResult(b *strings.Builder, res domain.Result) {
	switch r := res.(type) {
	case domain.MeanResult:
		writeFields(b, [][2]string{
			{"n", strconv.Itoa(r.N)},
			{"r", num(r.R)},
			{"1 - α/2", num(r.HalfAlpha)},
			{"z", num(r.Zeta)},
			{"lower limit", num(r.LowerLimit)},
			{"upper limit", num(r.UpperLimit)},
		})
	case domain.VarianceResult:
		writeFields(b, [][2]string{
			{"n", strconv.Itoa(r.N)},
			{"mean", num(r.Mean)},
			{"variance", num(r.Variance)},
			{"χ² (1 - α/2)", num(r.CompleteChiInvert)},
			{"χ² (α/2)", num(r.HalfChiInvert)},
			{"lower limit", num(r.LowerLimit)},
			{"upper limit", num(r.UpperLimit)},
		})
	case domain.KSResult:
		b.WriteString("| Interval | Frequency | Cumulative | Observed CDF | Expected CDF | Difference |\n")
		b.WriteString("|---|---|---|---|---|---|\n")
		for i := range r.Intervals {
			fmt.Fprintf(b, "| %s | %d | %d | %s | %s | %s |\n",
				num(r.Intervals[i]), r.Frequencies[i], r.ObtainedAccumulatedFrequency[i],
				num(r.ProbabilityObtained[i]), num(r.ProbabilityExpected[i]), num(r.Differences[i]))
		}
		fmt.Fprintf(b, "\nD = %s, D critical = %s\n", num(r.MaxDifference), num(r.CriticalValue))
	case domain.ChiResult:
		b.WriteString("| Interval | Frequency | Expected | Error |\n|---|---|---|---|\n")
		for i := range r.Intervals {
			fmt.Fprintf(b, "| %s | %d | %s | %s |\n",
				num(r.Intervals[i]), r.Frequencies[i], num(r.ExpectedFrequency), num(r.Errors[i]))
		}
		fmt.Fprintf(b, "\nχ² = %s, critical = %s (df %d)\n", num(r.Statistic), num(r.CriticalValue), r.DegreesOfFreedom)
	case domain.PokerResult:
		b.WriteString("| Hand | Observed | Expected |\n|---|---|---|\n")
		for _, c := range domain.HandCategories {
			fmt.Fprintf(b, "| %s | %d | %s |\n", c, r.Observed[c], num(r.Expected[c]))
		}
		fmt.Fprintf(b, "\n%d hands, χ² = %s, critical = %s (df %d)\n",
			r.Hands, num(r.Statistic), num(r.CriticalValue), r.DegreesOfFreedom)
	default:
		fmt.Fprintf(b, "passed: %t\n", res.Passed())
	}
}

func writeFields(b *strings.Builder, fields [][2]string) {
	b.WriteString("| Field | Value |\n|---|---|\n")
	for _, f := range fields {
		fmt.Fprintf(b, "| %s | %s |\n", f[0], f[1])
	}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
