package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"catalogpix/internal/catalog"
)

// renderStatusTable renders the item list as a rounded table.
func renderStatusTable(items []catalog.Item) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "Name", "Status", "Error", "URL"})

	for _, item := range items {
		tw.AppendRow(table.Row{item.ID, item.Name, string(item.Status), string(item.Error), item.URL})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 5, Align: text.AlignLeft, AlignHeader: text.AlignLeft, WidthMax: 60},
	})

	counts := itemCounts(items)
	tw.AppendFooter(table.Row{"", counts, "", "", ""})
	return tw.Render()
}

func itemCounts(items []catalog.Item) string {
	var pending, succeeded, failed int
	for _, item := range items {
		switch item.Status {
		case catalog.StatusPending:
			pending++
		case catalog.StatusSucceeded:
			succeeded++
		case catalog.StatusFailed:
			failed++
		}
	}
	return fmt.Sprintf("%d pending, %d succeeded, %d failed", pending, succeeded, failed)
}
