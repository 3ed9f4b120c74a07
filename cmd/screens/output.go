package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/waozixyz/kryon/screens/render"
	"github.com/waozixyz/kryon/screens/render/memory"
	"github.com/waozixyz/kryon/screens/resolve"
	"github.com/waozixyz/kryon/screens/router"
	"github.com/waozixyz/kryon/screens/screen"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7F849C"))
	tagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#89B4FA"))
)

func diagnostic(d screen.Diagnostic) string {
	switch d.Severity {
	case screen.SeverityError:
		return errorStyle.Render(d.String())
	case screen.SeverityWarning:
		return warnStyle.Render(d.String())
	default:
		return dimStyle.Render(d.String())
	}
}

func printResult(w io.Writer, res resolve.Result) {
	r := res.Resolved
	fmt.Fprintln(w, headerStyle.Render(r.Screen.String()))
	fmt.Fprintf(w, "  template %s\n", valueOrDash(string(r.Template)))
	fmt.Fprintf(w, "  theme    %s\n", valueOrDash(r.Theme))
	fmt.Fprintf(w, "  layout   %s\n", valueOrDash(r.Layout))
	applied := make([]string, len(r.Applied))
	for i, v := range r.Applied {
		applied[i] = v.String()
	}
	fmt.Fprintf(w, "  applied  %s\n", valueOrDash(strings.Join(applied, ", ")))
	if r.Forced {
		fmt.Fprintln(w, "  "+warnStyle.Render("forced"))
	}

	fmt.Fprintln(w, headerStyle.Render("trace"))
	for _, line := range res.Trace {
		style := dimStyle
		if strings.HasPrefix(line, "warning:") {
			style = warnStyle
		}
		fmt.Fprintln(w, "  "+style.Render(line))
	}
	if len(res.Patches) > 0 {
		fmt.Fprintln(w, headerStyle.Render("patches"))
		for _, p := range res.Patches {
			fmt.Fprintln(w, "  "+p.Describe())
		}
	}
}

func printInstance(w io.Writer, inst *router.Instance) {
	fmt.Fprintf(w, "%s %s\n", headerStyle.Render(inst.Key.String()), dimStyle.Render(inst.ID.String()))

	tags := make(map[render.Node]string)
	for _, wd := range inst.Widgets.Widgets() {
		tags[wd.Node] = wd.Tag
	}
	if root, ok := inst.Root.(*memory.Node); ok {
		root.Walk(func(n *memory.Node, depth int) bool {
			line := strings.Repeat("  ", depth+1) + n.Name()
			if tag, ok := tags[n]; ok && tag != n.Name() {
				line += " " + tagStyle.Render("#"+tag)
			}
			if desc := describe(n); desc != "" {
				line += " " + dimStyle.Render(desc)
			}
			if !n.Active() {
				line += " " + warnStyle.Render("(inactive)")
			}
			fmt.Fprintln(w, line)
			return true
		})
	}
	for _, warn := range inst.Widgets.Warnings() {
		fmt.Fprintln(w, warnStyle.Render("warning: ")+warn)
	}
}

// describe summarizes a node's components on one line.
func describe(n *memory.Node) string {
	var parts []string
	for _, c := range n.Components() {
		switch c := c.(type) {
		case *memory.Text:
			parts = append(parts, fmt.Sprintf("text=%q", c.Value))
		case *memory.Button:
			parts = append(parts, fmt.Sprintf("button(bound=%t)", c.OnClick != nil))
		case *memory.Image:
			parts = append(parts, fmt.Sprintf("image(%s %s)", valueOrDash(c.Sprite), valueOrDash(c.Color)))
		case *memory.Toggle:
			parts = append(parts, fmt.Sprintf("toggle(on=%t)", c.On))
		case *memory.Slider:
			parts = append(parts, fmt.Sprintf("slider(%g..%g=%g)", c.Min, c.Max, c.Current))
		case *memory.Slot:
			parts = append(parts, "slot="+c.ID)
		}
	}
	return strings.Join(parts, " ")
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
