package main

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

type styles struct {
	AppName      lipgloss.Style
	CliArgs      lipgloss.Style
	Check        lipgloss.Style
	Comment      lipgloss.Style
	ErrorHeader  lipgloss.Style
	ErrorDetails lipgloss.Style
	ErrPadding   lipgloss.Style
	Flag         lipgloss.Style
	FlagComma    lipgloss.Style
	FlagDesc     lipgloss.Style
	InlineCode   lipgloss.Style
	Link         lipgloss.Style
	Pipe         lipgloss.Style
	Quote        lipgloss.Style
	Timeago      lipgloss.Style
	Warning      lipgloss.Style
}

func makeStyles(r *lipgloss.Renderer) (s styles) {
	const horizontalEdgePadding = 2
	s.AppName = r.NewStyle().Bold(true)
	s.CliArgs = r.NewStyle().Foreground(lipgloss.Color("#585858"))
	s.Check = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00B594", Dark: "#3EEFCF"}).SetString("✓")
	s.Comment = r.NewStyle().Foreground(lipgloss.Color("#757575"))
	s.ErrorHeader = r.NewStyle().Foreground(lipgloss.Color("#F1F1F1")).Background(lipgloss.Color("#FF5F87")).Bold(true).Padding(0, 1).SetString("ERROR")
	s.ErrorDetails = s.Comment
	s.ErrPadding = r.NewStyle().Padding(0, horizontalEdgePadding)
	s.Flag = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00B594", Dark: "#3EEFCF"}).Bold(true)
	s.FlagComma = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5DD6C0", Dark: "#427C72"}).SetString(",")
	s.FlagDesc = s.Comment
	s.InlineCode = r.NewStyle().Foreground(lipgloss.Color("#FF5F87")).Background(lipgloss.Color("#3A3A3A")).Padding(0, 1)
	s.Link = r.NewStyle().Foreground(lipgloss.Color("#00AF87")).Underline(true)
	s.Quote = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF71D0", Dark: "#FF78D2"})
	s.Pipe = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#8470FF", Dark: "#745CFF"})
	s.Timeago = s.Comment
	s.Warning = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FFB300", Dark: "#FFD866"})
	return s
}

func makeGradientText(baseStyle lipgloss.Style, str string) string {
	const minSize = 3
	if len(str) < minSize {
		return baseStyle.Render(str)
	}
	b := strings.Builder{}
	runes := []rune(str)
	startColor, _ := colorful.Hex("#F967DC")
	endColor, _ := colorful.Hex("#6B50FF")
	for i, c := range runes {
		color := startColor.BlendLuv(endColor, float64(i)/float64(len(runes)-1))
		b.WriteString(baseStyle.Foreground(lipgloss.Color(color.Hex())).Render(string(c)))
	}
	return b.String()
}

var (
	quoteReg = regexp.MustCompile(`"([^"\\]|\\.)*"`)
	pipeReg  = regexp.MustCompile(`\|`)
)

func cheapHighlighting(s styles, code string) string {
	code = quoteReg.ReplaceAllStringFunc(code, func(x string) string {
		return s.Quote.Render(x)
	})
	code = pipeReg.ReplaceAllStringFunc(code, func(x string) string {
		return s.Pipe.Render(x)
	})
	return code
}
