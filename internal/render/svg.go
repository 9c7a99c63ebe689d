package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/calendar"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/projection"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/timeline"
)

// maxDateLabels bounds how many date ticks an axis gets.
const maxDateLabels = 12

// Gantt writes the layout as an SVG timeline: one row per bar with the
// baseline drawn as a thin shadow beneath it, the bar filled up to its
// visual progress, and a vertical today marker.
func Gantt(w io.Writer, layout timeline.Layout, style Style) error {
	c := style.Canvas
	g := style.Gantt
	height := c.MarginTop + max(len(layout.Bars), 1)*g.RowHeight + c.MarginBottom

	var svg strings.Builder
	writeHeader(&svg, c.Width, height, style)

	if len(layout.Bars) == 0 || layout.TotalDays <= 0 {
		writeEmpty(&svg, c.Width, height)
		svg.WriteString("</svg>\n")
		_, err := io.WriteString(w, svg.String())
		return err
	}

	x0 := float64(c.MarginLeft + g.LabelWidth)
	plotWidth := float64(c.Width-c.MarginRight) - x0
	dayWidth := plotWidth / float64(layout.TotalDays)
	bottom := c.MarginTop + len(layout.Bars)*g.RowHeight
	dayX := func(offset int) float64 {
		return x0 + float64(offset)*dayWidth
	}
	clip := func(x float64) float64 {
		return min(max(x, x0), x0+plotWidth)
	}

	step := tickStep(layout.TotalDays)
	for d := 0; d < layout.TotalDays; d += step {
		x := dayX(d)
		fmt.Fprintf(&svg, `<line x1="%.1f" y1="%d" x2="%.1f" y2="%d" stroke="%s" stroke-width="1"/>`+"\n",
			x, c.MarginTop, x, bottom, style.Colors.Grid)
		fmt.Fprintf(&svg, `<text class="date-text" x="%.1f" y="%d">%s</text>`+"\n",
			x+2, c.MarginTop-8, calendar.FormatDate(layout.Start.AddDate(0, 0, d)))
	}

	for i, bar := range layout.Bars {
		rowY := c.MarginTop + i*g.RowHeight
		barY := float64(rowY) + float64(g.RowHeight-g.BarHeight)/2

		fmt.Fprintf(&svg, `<text class="label-text" x="%d" y="%.1f">%s</text>`+"\n",
			c.MarginLeft, barY+float64(g.BarHeight)*0.8, escapeXML(label(bar)))

		if bar.BaselineOffsetDays != nil && bar.BaselineDurationDays != nil {
			bx1 := clip(dayX(*bar.BaselineOffsetDays))
			bx2 := clip(dayX(*bar.BaselineOffsetDays + *bar.BaselineDurationDays))
			if bx2 > bx1 {
				fmt.Fprintf(&svg, `<rect class="baseline" x="%.1f" y="%.1f" width="%.1f" height="%d" fill="%s"/>`+"\n",
					bx1, barY+float64(g.BarHeight)+1, bx2-bx1, max(g.BarHeight/4, 2), style.Colors.Baseline)
			}
		}

		x := dayX(bar.StartOffsetDays)
		width := float64(bar.DurationDays) * dayWidth
		color := style.StatusColor(bar.DisplayStatus)
		fmt.Fprintf(&svg, `<rect class="track" x="%.1f" y="%.1f" width="%.1f" height="%d" rx="2" fill="%s" stroke="%s"/>`+"\n",
			x, barY, width, g.BarHeight, style.Colors.Track, color)
		if fill := width * bar.VisualProgressPercent / 100; fill > 0 {
			fmt.Fprintf(&svg, `<rect class="progress" x="%.1f" y="%.1f" width="%.1f" height="%d" rx="2" fill="%s"/>`+"\n",
				x, barY, fill, g.BarHeight, color)
		}
	}

	if layout.TodayVisible {
		x := dayX(layout.TodayOffsetDays) + dayWidth/2
		fmt.Fprintf(&svg, `<line class="today" x1="%.1f" y1="%d" x2="%.1f" y2="%d" stroke="%s" stroke-width="2" stroke-dasharray="4 3"/>`+"\n",
			x, c.MarginTop-4, x, bottom, style.Colors.Today)
	}

	svg.WriteString("</svg>\n")
	_, err := io.WriteString(w, svg.String())
	return err
}

// SCurve writes the planned and actual cumulative curves. The actual line
// breaks wherever a sample has no actual value instead of dropping to zero.
func SCurve(w io.Writer, samples []projection.DailySample, style Style) error {
	c := style.Canvas
	height := c.MarginTop + style.Curve.Height + c.MarginBottom

	var svg strings.Builder
	writeHeader(&svg, c.Width, height, style)

	if len(samples) == 0 {
		writeEmpty(&svg, c.Width, height)
		svg.WriteString("</svg>\n")
		_, err := io.WriteString(w, svg.String())
		return err
	}

	// Leave room for the percentage axis labels.
	x0 := float64(c.MarginLeft + 4*style.Font.Size)
	plotWidth := float64(c.Width-c.MarginRight) - x0
	top := float64(c.MarginTop)
	plotHeight := float64(style.Curve.Height)
	stepX := plotWidth
	if len(samples) > 1 {
		stepX = plotWidth / float64(len(samples)-1)
	}
	point := func(i, pct int) string {
		return fmt.Sprintf("%.1f,%.1f", x0+float64(i)*stepX, top+plotHeight*(1-float64(pct)/100))
	}

	for _, pct := range []int{0, 25, 50, 75, 100} {
		y := top + plotHeight*(1-float64(pct)/100)
		fmt.Fprintf(&svg, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>`+"\n",
			x0, y, x0+plotWidth, y, style.Colors.Grid)
		fmt.Fprintf(&svg, `<text class="date-text" x="%d" y="%.1f">%d%%</text>`+"\n",
			c.MarginLeft, y+4, pct)
	}

	step := tickStep(len(samples))
	for i := 0; i < len(samples); i += step {
		fmt.Fprintf(&svg, `<text class="date-text" x="%.1f" y="%.1f">%s</text>`+"\n",
			x0+float64(i)*stepX, top+plotHeight+16, calendar.FormatDate(samples[i].Date))
	}

	planned := make([]string, 0, len(samples))
	for i, s := range samples {
		planned = append(planned, point(i, s.Planned))
	}
	writePolyline(&svg, "planned", planned, style.Colors.Planned, style.Curve.LineWidth)

	var segment []string
	for i, s := range samples {
		if s.Actual == nil {
			writePolyline(&svg, "actual", segment, style.Colors.Actual, style.Curve.LineWidth)
			segment = segment[:0]
			continue
		}
		segment = append(segment, point(i, *s.Actual))
	}
	writePolyline(&svg, "actual", segment, style.Colors.Actual, style.Curve.LineWidth)

	if i := todayIndex(samples); i >= 0 {
		x := x0 + float64(i)*stepX
		fmt.Fprintf(&svg, `<line class="today" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1" stroke-dasharray="4 3"/>`+"\n",
			x, top, x, top+plotHeight, style.Colors.Today)
	}

	fmt.Fprintf(&svg, `<text class="legend-text" x="%.1f" y="%d" fill="%s">planned</text>`+"\n",
		x0, c.MarginTop-12, style.Colors.Planned)
	fmt.Fprintf(&svg, `<text class="legend-text" x="%.1f" y="%d" fill="%s">actual</text>`+"\n",
		x0+70, c.MarginTop-12, style.Colors.Actual)

	svg.WriteString("</svg>\n")
	_, err := io.WriteString(w, svg.String())
	return err
}

func writeHeader(svg *strings.Builder, width, height int, style Style) {
	fmt.Fprintf(svg, `<?xml version="1.0" encoding="UTF-8"?>
<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="%s"/>
<defs>
<style>
.label-text { font-family: %s; font-size: %dpx; fill: %s; }
.date-text { font-family: %s; font-size: %dpx; fill: %s; }
.legend-text { font-family: %s; font-size: %dpx; font-weight: bold; }
</style>
</defs>
`, width, height, style.Colors.Background,
		style.Font.Family, style.Font.Size, style.Colors.Text,
		style.Font.Family, style.Font.Size-2, style.Colors.Text,
		style.Font.Family, style.Font.Size)
}

func writeEmpty(svg *strings.Builder, width, height int) {
	fmt.Fprintf(svg, `<text class="label-text" x="%d" y="%d" text-anchor="middle">No tasks</text>`+"\n",
		width/2, height/2)
}

func writePolyline(svg *strings.Builder, class string, points []string, color string, width int) {
	if len(points) == 0 {
		return
	}
	fmt.Fprintf(svg, `<polyline class="%s" points="%s" fill="none" stroke="%s" stroke-width="%d"/>`+"\n",
		class, strings.Join(points, " "), color, width)
}

// todayIndex finds the last sample carrying an actual value, which is
// today's sample in a series built by projection.Series. It is -1 when
// the project has not started yet.
func todayIndex(samples []projection.DailySample) int {
	idx := -1
	for i, s := range samples {
		if s.Actual != nil {
			idx = i
		}
	}
	return idx
}

func tickStep(days int) int {
	return max(1, (days+maxDateLabels-1)/maxDateLabels)
}

func label(bar timeline.Bar) string {
	if bar.Title == "" {
		return bar.TaskID
	}
	return bar.Title
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
