// Package pdf lays out project details as an A4 document with gofpdf.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/portail/consulting-portal/internal/core/domain"
)

// Layout, in millimetres.
const (
	margin     = 15.0
	lineHeight = 6.0
	titleSize  = 13.0
	bodySize   = 10.0
	sectionGap = 6.0
)

// Section title colour, #0071CE.
var titleColor = [3]int{0x00, 0x71, 0xCE}

// Renderer produces the project details document.
type Renderer struct {
	font string
}

func NewRenderer() *Renderer {
	return &Renderer{font: "Helvetica"}
}

type row struct {
	label string
	value string
}

// RenderProject returns the PDF bytes of p. Pages break automatically.
func (r *Renderer) RenderProject(p *domain.Project) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(margin, margin, margin)
	doc.SetAutoPageBreak(true, margin)
	doc.SetTitle("Project Details - "+p.Name, true)
	doc.AddPage()

	tr := doc.UnicodeTranslatorFromDescriptor("")

	r.section(doc, tr, "Project Information", []row{
		{"Project Name", p.Name},
		{"Project Duration", p.Duration},
		{"Completion Date", p.CompletionDate},
		{"Order Year", p.OrderYear},
		{"Start Date", p.StartDate},
	})

	clients := make([]row, 0, len(p.Clients)*2)
	for i, c := range p.Clients {
		n := ""
		if len(p.Clients) > 1 {
			n = fmt.Sprintf(" %d", i+1)
		}
		clients = append(clients, row{"Client" + n, c.Name}, row{"Address" + n, c.Address})
	}
	r.section(doc, tr, "Client Information", clients)

	r.section(doc, tr, "Additional Information", []row{
		{"Partner Names", p.PartnerNames},
		{"Service Description", p.ServiceDescription},
		{"Mission Deliverables", p.MissionDeliverables},
	})

	team := make([]row, 0, len(p.Team))
	for _, m := range p.Team {
		if strings.TrimSpace(m.Name) == "" && strings.TrimSpace(m.Role) == "" {
			continue
		}
		team = append(team, row{m.Name, m.Role})
	}
	r.section(doc, tr, "Project Intervention Team", team)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

// section draws a bordered block: a coloured title followed by label/value
// rows. The side borders are drawn per cell so the block survives page breaks.
func (r *Renderer) section(doc *gofpdf.Fpdf, tr func(string) string, title string, rows []row) {
	width, pageHeight := doc.GetPageSize()
	width -= 2 * margin
	labelWidth := width * 0.35

	doc.SetFont(r.font, "B", titleSize)
	doc.SetTextColor(titleColor[0], titleColor[1], titleColor[2])
	border := "LTR"
	if len(rows) == 0 {
		border = "1"
	}
	doc.CellFormat(width, lineHeight+2, tr(title), border, 1, "L", false, 0, "")

	doc.SetTextColor(0, 0, 0)
	for i, rw := range rows {
		last := i == len(rows)-1
		labelBorder, valueBorder := "L", "R"
		if last {
			labelBorder, valueBorder = "LB", "RB"
		}

		value := rw.value
		if strings.TrimSpace(value) == "" {
			value = "-"
		}

		doc.SetFont(r.font, "B", bodySize)
		lines := doc.SplitLines([]byte(tr(value)), width-labelWidth)
		height := lineHeight * float64(max(1, len(lines)))
		if doc.GetY()+height > pageHeight-margin {
			doc.AddPage()
		}

		x, y := doc.GetXY()
		doc.CellFormat(labelWidth, height, tr(rw.label), labelBorder, 0, "L", false, 0, "")
		doc.SetFont(r.font, "", bodySize)
		doc.SetXY(x+labelWidth, y)
		doc.MultiCell(width-labelWidth, lineHeight, tr(value), valueBorder, "L", false)
		doc.SetX(x)
	}

	doc.Ln(sectionGap)
}
