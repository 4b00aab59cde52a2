package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/perturb/internal/sweep"
)

type SVGOptions struct {
	Width, Height int
	StrokeColor   string
	// ReferenceColor draws the flat analytical line when HasReference is set.
	ReferenceColor string
	Reference      float64
	HasReference   bool
	Title          string
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Width:          800,
		Height:         480,
		StrokeColor:    "#1f4fff",
		ReferenceColor: "#e02020",
	}
}

// SeriesToSVG renders valid samples as a polyline. Invalid samples break the
// line. Returns "" when fewer than two valid samples exist.
func SeriesToSVG(series sweep.Series, opts SVGOptions) string {
	pts := series.Points()

	first := true
	var minX, maxX, minY, maxY float64
	valid := 0
	for _, p := range pts {
		if !p.Valid {
			continue
		}
		valid++
		if first {
			minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
			first = false
			continue
		}
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	if valid < 2 {
		return ""
	}
	if opts.HasReference {
		minY, maxY = min(minY, opts.Reference), max(maxY, opts.Reference)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	w, h := float64(opts.Width), float64(opts.Height)
	project := func(x, y float64) (float64, float64) {
		return (x - minX) / rangeX * w, h - (y-minY)/rangeY*h
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, opts.Width, opts.Height, opts.Width, opts.Height))

	if opts.Title != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="20" text-anchor="middle" font-size="16">%s</text>
`, opts.Width/2, escape(opts.Title)))
	}

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="2" d="`, opts.StrokeColor))
	pen := false
	for _, p := range pts {
		if !p.Valid {
			pen = false
			continue
		}
		x, y := project(p.X, p.Y)
		if !pen {
			sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
			pen = true
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")

	if opts.HasReference {
		_, y := project(minX, opts.Reference)
		sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="%s" stroke-width="1.5" stroke-dasharray="8,4"/>
`, y, opts.Width, y, opts.ReferenceColor))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func escape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}
