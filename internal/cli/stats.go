package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newStatsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the dashboard counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := root.startPortal(cmd.Context()).Dashboard()

			root.printer.Header("Dashboard")
			t := NewTable(root.printer.out, "Metric", "Value")
			t.AddRow("Total clippings", strconv.Itoa(st.Total))
			t.AddRow("Categories", strconv.Itoa(st.Categories))
			t.AddRow("This month", strconv.Itoa(st.ThisMonth))
			return t.Render()
		},
	}
}

func newCategoriesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories and how many clippings each holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := root.startPortal(cmd.Context())

			counts := make(map[string]int)
			for _, c := range p.State().Collection {
				counts[c.Category]++
			}

			t := NewTable(root.printer.out, "Category", "Clippings")
			for _, name := range p.Categories() {
				t.AddRow(name, strconv.Itoa(counts[name]))
			}
			return t.Render()
		},
	}
}
