package output

import "github.com/fatih/color"

var (
	red       = color.New(color.FgRed).SprintFunc()
	dim       = color.New(color.Faint).SprintFunc()
	titleText = color.New(color.FgYellow, color.Bold).SprintFunc()
	headerFmt = color.New(color.FgYellow, color.Underline).SprintfFunc()
)

// DisableColors turns off ANSI colors, e.g. for JSON output or pipes.
func DisableColors() {
	color.NoColor = true
}
