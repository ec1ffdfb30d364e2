package cli

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	BoxWidth   = 109
	BoxPadding = 2
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

type Output struct {
	out          io.Writer
	errOut       io.Writer
	enableColors bool
}

func NewOutput() *Output {
	return &Output{
		out:          os.Stdout,
		errOut:       os.Stderr,
		enableColors: isTerminal(),
	}
}

// NewWriterOutput writes to w without colours, for tests and piped output.
func NewWriterOutput(w io.Writer) *Output {
	return &Output{out: w, errOut: w}
}

func (o *Output) DisableColors() {
	o.enableColors = false
}

func (o *Output) color(code, text string) string {
	if !o.enableColors {
		return text
	}
	return "\033[" + code + "m" + text + "\033[0m"
}

func (o *Output) Green(text string) string {
	return o.color("32", text)
}

func (o *Output) Yellow(text string) string {
	return o.color("33", text)
}

func (o *Output) Red(text string) string {
	return o.color("31", text)
}

func (o *Output) Gray(text string) string {
	return o.color("90", text)
}

func (o *Output) Blue(text string) string {
	return o.color("34", text)
}

func (o *Output) Cyan(text string) string {
	return o.color("36", text)
}

func (o *Output) PrintHeader(msg string) {
	fmt.Fprintln(o.out, msg)
	fmt.Fprintln(o.out)
}

func (o *Output) PrintStep(emoji, msg string, args ...any) {
	prefix := "  "
	if emoji != "" {
		prefix += emoji + " "
	}
	fmt.Fprintf(o.out, prefix+msg+"\n", args...)
}

func (o *Output) PrintSuccess(msg string, args ...any) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(o.out, "  "+o.Green("✓ ")+"%s\n", formatted)
}

func (o *Output) PrintWarning(msg string, args ...any) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(o.out, "  "+o.Yellow("⚠ ")+"%s\n", formatted)
}

func (o *Output) PrintError(msg string, args ...any) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(o.errOut, "  "+o.Red("✗ ")+"%s\n", formatted)
}

func (o *Output) PrintFile(path string) {
	fmt.Fprintf(o.out, "    %s\n", o.Gray(path))
}

func (o *Output) PrintDone(msg string) {
	fmt.Fprintln(o.out, msg)
}

// PrintBox draws lines inside a fixed width frame. Colour codes do not
// count towards the width.
func (o *Output) PrintBox(lines ...string) {
	fmt.Fprintln(o.out, "┌"+strings.Repeat("─", BoxWidth)+"┐")
	for _, line := range lines {
		fmt.Fprintln(o.out, boxLine(line))
	}
	fmt.Fprintln(o.out, "└"+strings.Repeat("─", BoxWidth)+"┘")
}

func boxLine(text string) string {
	visible := VisibleWidth(text)
	right := BoxWidth - visible - BoxPadding
	if right < 0 {
		right = 0
	}
	return "│" + strings.Repeat(" ", BoxPadding) + text + strings.Repeat(" ", right) + "│"
}

func VisibleWidth(text string) int {
	return utf8.RuneCountInString(ansiPattern.ReplaceAllString(text, ""))
}

func isTerminal() bool {
	stat, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == os.ModeCharDevice
}
