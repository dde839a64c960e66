package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/clippings/internal/browser"
)

type browseOptions struct {
	year     int
	month    int // 1-12 on the command line
	category string
}

func newBrowseCmd(root *rootOptions) *cobra.Command {
	opts := &browseOptions{}
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse clippings by year and month",
		Long: `Browse clippings by year and month.

Without flags the most recent year and its most recent month are shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.month < 0 || opts.month > 12 {
				return fmt.Errorf("month must be between 1 and 12")
			}

			p := root.startPortal(cmd.Context())
			s := p.State()
			if opts.year != 0 {
				if !slices.Contains(s.Years, opts.year) {
					return fmt.Errorf("no clippings in %d", opts.year)
				}
				s = p.Dispatch(browser.SelectYear{Year: opts.year})
			}
			if opts.month != 0 {
				if !slices.Contains(s.Months, opts.month-1) {
					return fmt.Errorf("no clippings in %s %d", browser.MonthName(opts.month-1), s.Nav.Year)
				}
				s = p.Dispatch(browser.SelectMonth{Month: opts.month - 1})
			}
			s = p.Dispatch(browser.SetBrowseCategory{Category: opts.category})
			return renderBrowse(root.printer, s.Browse())
		},
	}

	cmd.Flags().IntVarP(&opts.year, "year", "y", 0, "year to open (default most recent)")
	cmd.Flags().IntVarP(&opts.month, "month", "m", 0, "month 1-12 (default most recent of the year)")
	cmd.Flags().StringVarP(&opts.category, "category", "c", "", "exact category")
	return cmd
}

func renderBrowse(p *Printer, v browser.BrowseView) error {
	if len(v.Years) > 0 {
		p.Print("%s", tabsLine(p, v.Years))
	}
	if len(v.Months) > 0 {
		p.Print("%s", tabsLine(p, v.Months))
	}
	if v.Default && v.Phase == browser.YearAndMonthSelected.String() {
		p.Info("Showing the most recent month, use --year and --month to pick another")
	}
	if v.Message != "" {
		p.Info("%s", v.Message)
		return nil
	}
	p.Print("")
	return renderClippings(p, v.Items)
}

func tabsLine(p *Printer, tabs []browser.Tab) string {
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t.Active {
			parts = append(parts, p.Active(t.Label))
			continue
		}
		parts = append(parts, t.Label)
	}
	return strings.Join(parts, "  ")
}
