package output

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/wesleyorama2/restful/internal/bench"
	"github.com/wesleyorama2/restful/restful"
	"github.com/wesleyorama2/restful/status"
	"github.com/wesleyorama2/restful/transport"
)

// Formatter renders command results as text, JSON or YAML.
type Formatter struct {
	Format  OutputFormat
	Verbose bool
	NoColor bool
	Colors  *ColorScheme
}

// NewFormatter creates a new formatter with the given options
func NewFormatter(format OutputFormat, verbose, noColor bool) *Formatter {
	if format == "" {
		format = FormatText
	}
	return &Formatter{
		Format:  format,
		Verbose: verbose,
		NoColor: noColor,
		Colors:  NewColorScheme(noColor),
	}
}

// RouteInfo describes one registered endpoint.
type RouteInfo struct {
	Model    string `json:"model" yaml:"model"`
	Endpoint string `json:"endpoint" yaml:"endpoint"`
	Method   string `json:"method" yaml:"method"`
	URL      string `json:"url" yaml:"url"`
}

// BenchReport is a bench summary together with what was measured.
type BenchReport struct {
	Model       string         `json:"model" yaml:"model"`
	Endpoint    string         `json:"endpoint" yaml:"endpoint"`
	Concurrency int            `json:"concurrency" yaml:"concurrency"`
	Summary     *bench.Summary `json:"summary" yaml:"summary"`
}

// FormatResponse renders a normalized endpoint response.
func (f *Formatter) FormatResponse(resp *restful.Response) (string, error) {
	if f.Format != FormatText {
		return marshal(f.Format, resp)
	}

	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("◀ RESPONSE: %s\n", f.statusLine(resp.Status)))

	if flags := setFlags(resp.Status); len(flags) > 0 {
		buf.WriteString(fmt.Sprintf("  Flags: %s\n", f.Colors.Flag.Sprint(strings.Join(flags, " "))))
	}

	if f.Verbose && resp.Request != nil {
		buf.WriteString(fmt.Sprintf("  Request: %s %s\n",
			f.Colors.Method.Sprint(resp.Request.Method),
			f.Colors.URL.Sprint(resp.Request.URL)))
	}

	if f.Verbose && resp.Timing != nil {
		buf.WriteString(formatTiming(resp.Timing))
	}

	if f.Verbose && len(resp.Headers) > 0 {
		buf.WriteString("  Headers:\n")
		keys := make([]string, 0, len(resp.Headers))
		for key := range resp.Headers {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			for _, value := range resp.Headers[key] {
				buf.WriteString(fmt.Sprintf("    %s: %s\n", f.Colors.Key.Sprint(key), value))
			}
		}
	}

	buf.WriteString("  Data:\n  ")
	buf.WriteString(formatValue(resp.Data))
	buf.WriteString("\n")

	return buf.String(), nil
}

// FormatError renders a failed call. Rejected statuses show the code and
// the response body.
func (f *Formatter) FormatError(err error) string {
	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("%s %s\n", ErrorIcon(f.NoColor), f.Colors.Error.Sprint(err.Error())))

	var statusErr *transport.StatusError
	if errors.As(err, &statusErr) {
		buf.WriteString(fmt.Sprintf("  Status: %s\n", f.statusLine(status.Describe(statusErr.Code))))
		if len(statusErr.Body) > 0 {
			buf.WriteString("  Body:\n  ")
			buf.WriteString(formatJSONString(string(statusErr.Body)))
			buf.WriteString("\n")
		}
	}
	return buf.String()
}

// FormatStatuses renders status descriptors, one per line in text mode.
func (f *Formatter) FormatStatuses(descriptors []status.Descriptor) (string, error) {
	if f.Format != FormatText {
		return marshal(f.Format, descriptors)
	}

	var buf strings.Builder
	for _, d := range descriptors {
		def := d.Definition
		if def == "" {
			def = "(unknown)"
		}
		buf.WriteString(f.Colors.Status(d.Code).Sprintf("%-4d", d.Code))
		buf.WriteString(fmt.Sprintf(" %-32s %s", def, d.Class()))
		if flags := setFlags(d); len(flags) > 0 {
			buf.WriteString("  " + f.Colors.Flag.Sprint(strings.Join(flags, " ")))
		}
		buf.WriteString("\n")
	}
	return buf.String(), nil
}

// FormatRoutes renders the registered endpoints grouped by model.
func (f *Formatter) FormatRoutes(routes []RouteInfo) (string, error) {
	if f.Format != FormatText {
		return marshal(f.Format, routes)
	}

	var buf strings.Builder
	current := ""
	for _, r := range routes {
		if r.Model != current {
			current = r.Model
			buf.WriteString(f.Colors.Highlight.Sprint(r.Model))
			buf.WriteString("\n")
		}
		buf.WriteString(fmt.Sprintf("  %s %-16s %s\n",
			f.Colors.Method.Sprintf("%-7s", r.Method),
			r.Endpoint,
			f.Colors.URL.Sprint(r.URL)))
	}
	return buf.String(), nil
}

// FormatExtracted renders values pulled out of a response by JSONPath.
func (f *Formatter) FormatExtracted(values map[string]string) (string, error) {
	if f.Format != FormatText {
		return marshal(f.Format, values)
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf strings.Builder
	buf.WriteString("  Extracted:\n")
	for _, name := range names {
		buf.WriteString(fmt.Sprintf("    %s = %s\n", f.Colors.Key.Sprint(name), values[name]))
	}
	return buf.String(), nil
}

// FormatCheck renders the outcome of a named check.
func (f *Formatter) FormatCheck(name string, err error) string {
	if err != nil {
		return fmt.Sprintf("  %s %s: %s\n", ErrorIcon(f.NoColor), name, f.Colors.Error.Sprint(err.Error()))
	}
	return fmt.Sprintf("  %s %s\n", SuccessIcon(f.NoColor), name)
}

// FormatBench renders a bench run.
func (f *Formatter) FormatBench(report BenchReport) (string, error) {
	if f.Format != FormatText {
		return marshal(f.Format, report)
	}

	s := report.Summary
	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("▶ BENCH: %s.%s (%d requests, %d workers)\n",
		report.Model, report.Endpoint, s.Requests, report.Concurrency))
	buf.WriteString(fmt.Sprintf("  %s Successes: %d  %s Failures: %d (transport errors: %d)\n",
		SuccessIcon(f.NoColor), s.Successes, ErrorIcon(f.NoColor), s.Failures, s.Errors))

	if len(s.StatusCodes) > 0 {
		codes := make([]int, 0, len(s.StatusCodes))
		for code := range s.StatusCodes {
			codes = append(codes, code)
		}
		sort.Ints(codes)
		parts := make([]string, 0, len(codes))
		for _, code := range codes {
			parts = append(parts, fmt.Sprintf("%s x%d", f.Colors.Status(code).Sprint(code), s.StatusCodes[code]))
		}
		buf.WriteString(fmt.Sprintf("  Status codes: %s\n", strings.Join(parts, ", ")))
	}

	buf.WriteString("  Latency:\n")
	buf.WriteString(fmt.Sprintf("    min: %s  mean: %s  max: %s\n", ms(s.Min), ms(s.Mean), ms(s.Max)))
	buf.WriteString(fmt.Sprintf("    p50: %s  p90: %s  p99: %s\n", ms(s.P50), ms(s.P90), ms(s.P99)))
	buf.WriteString(fmt.Sprintf("  Throughput: %.1f req/s over %s\n", s.RequestsPerSecond, ms(s.Elapsed)))

	return buf.String(), nil
}

func (f *Formatter) statusLine(d status.Descriptor) string {
	text := fmt.Sprintf("%d", d.Code)
	if d.Definition != "" {
		text += " " + d.Definition
	}
	return f.Colors.Status(d.Code).Sprint(text)
}

func setFlags(d status.Descriptor) []string {
	var flags []string
	for _, flag := range []struct {
		name string
		set  bool
	}{
		{"isOk", d.IsOK},
		{"isCreated", d.IsCreated},
		{"isBadRequest", d.IsBadRequest},
		{"isForbidden", d.IsForbidden},
		{"isNotFound", d.IsNotFound},
		{"isServerError", d.IsServerError},
	} {
		if flag.set {
			flags = append(flags, flag.name)
		}
	}
	return flags
}

func formatTiming(t *transport.Timing) string {
	var buf strings.Builder
	buf.WriteString("  Timing:\n")
	buf.WriteString(fmt.Sprintf("    DNS Lookup:      %s\n", ms(t.DNSLookup)))
	buf.WriteString(fmt.Sprintf("    TCP Connection:  %s\n", ms(t.TCPConnect)))
	buf.WriteString(fmt.Sprintf("    TLS Handshake:   %s\n", ms(t.TLSHandshake)))
	buf.WriteString(fmt.Sprintf("    Server Time:     %s\n", ms(t.ServerTime)))
	buf.WriteString(fmt.Sprintf("    Total:           %s\n", ms(t.Total)))
	if t.ConnReused {
		buf.WriteString("    Connection reused\n")
	}
	return buf.String()
}

func ms(d time.Duration) string {
	return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
}
