package ui

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// PlanRow is one rename shown before confirmation
type PlanRow struct {
	From string
	To   string
}

// Directory states shown in the verbose dump
const (
	StatusOK       = "ok"
	StatusMissing  = "missing"
	StatusReadOnly = "read-only"
	StatusNotDir   = "not a directory"
)

// Role is a labelled directory in the verbose dump
type Role struct {
	Name   string
	Path   string
	Status string
}

// RenderPlan renders numbered source/destination pairs
func (p *Printer) RenderPlan(rows []PlanRow) string {
	cells := make([][]string, 0, len(rows))
	for i, r := range rows {
		cells = append(cells, []string{strconv.Itoa(i + 1), r.From, p.Highlight(r.To)})
	}
	return renderTable([]string{"#", "Ripped file", "Renamed to"}, cells, []columnAlignment{alignRight, alignLeft, alignLeft})
}

// RenderRoles renders the directory roles for one session
func (p *Printer) RenderRoles(roles []Role) string {
	cells := make([][]string, 0, len(roles))
	for _, r := range roles {
		cells = append(cells, []string{r.Name, r.Path, p.status(r.Status)})
	}
	return renderTable([]string{"Role", "Path", "Status"}, cells, nil)
}

func (p *Printer) status(s string) string {
	switch s {
	case StatusOK:
		return p.render(SuccessStyle, s)
	case StatusMissing:
		return p.Muted(s)
	}
	return p.render(ErrorStyle, s)
}

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}
