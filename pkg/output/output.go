package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatTable OutputFormat = "table"
	FormatText  OutputFormat = "text"
)

// GetOutputFormat returns the configured output format
func GetOutputFormat() OutputFormat {
	switch config.GetString("output.format") {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	default:
		return FormatText
	}
}

// ValidateOutputFormat checks if format is valid
func ValidateOutputFormat(format string) bool {
	return format == "json" || format == "table" || format == "text"
}

// Field is one labelled value of a record. Records keep field order.
type Field struct {
	Key   string
	Value interface{}
}

// Printer writes command results to Out and status messages to Err, so JSON
// output stays machine readable.
type Printer struct {
	Out    io.Writer
	Err    io.Writer
	Format OutputFormat
}

// New creates a printer.
func New(out, errOut io.Writer, format OutputFormat) *Printer {
	return &Printer{Out: out, Err: errOut, Format: format}
}

// Default prints to the color-aware stdout and stderr in the configured format.
func Default() *Printer {
	return New(color.Output, color.Error, GetOutputFormat())
}

// Print outputs data. Text and table formats fall back to indented JSON for
// values that have no tabular shape.
func (p *Printer) Print(title string, data interface{}) error {
	if p.Format == FormatJSON {
		return p.JSON(data)
	}
	if title != "" {
		fmt.Fprintf(p.Out, "%s:\n", title)
	}
	return p.JSON(data)
}

// List prints rows under headers, or items as JSON in json format.
func (p *Printer) List(title string, items interface{}, headers []string, rows [][]string) error {
	if p.Format == FormatJSON {
		return p.JSON(items)
	}
	if len(rows) == 0 {
		p.Info("No %s found", strings.ToLower(title))
		return nil
	}
	if title != "" && p.Format == FormatText {
		color.New(color.Bold).Fprintf(p.Out, "%s (%d)\n", title, len(rows))
	}
	p.Table(headers, rows)
	return nil
}

// Record prints one object as aligned key/value lines, or raw as JSON.
func (p *Printer) Record(title string, raw interface{}, fields []Field) error {
	switch p.Format {
	case FormatJSON:
		return p.JSON(raw)
	case FormatTable:
		rows := make([][]string, 0, len(fields))
		for _, f := range fields {
			rows = append(rows, []string{f.Key, fmt.Sprintf("%v", f.Value)})
		}
		p.Table([]string{"Field", "Value"}, rows)
		return nil
	}

	if title != "" {
		color.New(color.Bold).Fprintf(p.Out, "%s\n", title)
	}
	w := tabwriter.NewWriter(p.Out, 0, 0, 2, ' ', 0)
	bold := color.New(color.Bold)
	for _, f := range fields {
		bold.Fprint(w, f.Key+":")
		fmt.Fprintf(w, "\t%v\n", f.Value)
	}
	return w.Flush()
}

// Table prints an aligned table with bold headers.
func (p *Printer) Table(headers []string, rows [][]string) {
	w := tabwriter.NewWriter(p.Out, 0, 0, 2, ' ', 0)
	bold := color.New(color.Bold)

	if len(headers) > 0 {
		for i, h := range headers {
			bold.Fprint(w, h)
			if i < len(headers)-1 {
				fmt.Fprint(w, "\t")
			}
		}
		fmt.Fprintln(w)
	}

	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	w.Flush()
}

// JSON writes data as indented JSON.
func (p *Printer) JSON(data interface{}) error {
	s, err := FormatAsPrettyJSON(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.Out, s)
	return err
}

// Markdown renders text through glamour, falling back to the raw text.
func (p *Printer) Markdown(text string) {
	rendered, err := RenderMarkdown(text)
	if err != nil || rendered == "" {
		fmt.Fprintln(p.Out, text)
		return
	}
	fmt.Fprint(p.Out, rendered)
}

// Success prints a success message
func (p *Printer) Success(msg string, args ...interface{}) {
	color.New(color.FgGreen).Fprintf(p.Err, msg+"\n", args...)
}

// Error prints an error message
func (p *Printer) Error(msg string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(p.Err, "Error: "+msg+"\n", args...)
}

// Info prints an info message
func (p *Printer) Info(msg string, args ...interface{}) {
	color.New(color.FgCyan).Fprintf(p.Err, msg+"\n", args...)
}

// Warning prints a warning message
func (p *Printer) Warning(msg string, args ...interface{}) {
	color.New(color.FgYellow).Fprintf(p.Err, "Warning: "+msg+"\n", args...)
}

// PrintSuccess prints a success message
func PrintSuccess(msg string, args ...interface{}) {
	Default().Success(msg, args...)
}

// PrintError prints an error message
func PrintError(msg string, args ...interface{}) {
	Default().Error(msg, args...)
}

// PrintInfo prints an info message
func PrintInfo(msg string, args ...interface{}) {
	Default().Info(msg, args...)
}

// PrintWarning prints a warning message
func PrintWarning(msg string, args ...interface{}) {
	Default().Warning(msg, args...)
}

// FormatAsJSON converts data to JSON string (convenience function)
func FormatAsJSON(data interface{}) (string, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// FormatAsPrettyJSON converts data to pretty JSON string (convenience function)
func FormatAsPrettyJSON(data interface{}) (string, error) {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
