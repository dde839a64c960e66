package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/clippings/internal/browser"
	"github.com/MrSnakeDoc/clippings/internal/domain"
)

type listOptions struct {
	search   string
	category string
	from     string
	to       string
	page     int
}

func newListCmd(root *rootOptions) *cobra.Command {
	opts := &listOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clippings with keyword, category and date filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.filter()
			if err != nil {
				return err
			}

			p := root.startPortal(cmd.Context())
			s := p.Dispatch(browser.SetFilter{Filter: f})
			if opts.page != 1 {
				s = p.Dispatch(browser.ChangePage{Page: opts.page})
				if s.Page != opts.page {
					return fmt.Errorf("page %d is out of range (1-%d)", opts.page, max(1, s.TotalPages()))
				}
			}
			return renderList(root.printer, s.List())
		},
	}

	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "keyword matched against title and description")
	cmd.Flags().StringVarP(&opts.category, "category", "c", "", "exact category")
	cmd.Flags().StringVar(&opts.from, "from", "", "earliest date, YYYY-MM-DD")
	cmd.Flags().StringVar(&opts.to, "to", "", "latest date, YYYY-MM-DD")
	cmd.Flags().IntVarP(&opts.page, "page", "p", 1, "page number")
	return cmd
}

func (o *listOptions) filter() (browser.Filter, error) {
	f := browser.Filter{
		Search:   strings.TrimSpace(o.search),
		Category: o.category,
	}
	var err error
	if o.from != "" {
		if f.From, err = domain.ParseDate(o.from); err != nil {
			return f, domain.NewValidationError("from", domain.ErrInvalidDate)
		}
	}
	if o.to != "" {
		if f.To, err = domain.ParseDate(o.to); err != nil {
			return f, domain.NewValidationError("to", domain.ErrInvalidDate)
		}
	}
	return f, nil
}

func renderList(p *Printer, v browser.ListView) error {
	if len(v.Items) == 0 {
		p.Info("%s", v.Message)
		return nil
	}
	if err := renderClippings(p, v.Items); err != nil {
		return err
	}
	p.Print("")
	p.Print("%s", v.Message)
	if v.Pagination.Visible() {
		p.Print("%s", paginationLine(p, v.Pagination))
	}
	return nil
}

func renderClippings(p *Printer, items []domain.Clipping) error {
	t := NewTable(p.out, "ID", "Date", "Category", "Title", "Description")
	for _, c := range items {
		t.AddRow(strconv.Itoa(c.ID), c.Date.String(), c.Category, c.Title, truncate(c.Description, 48))
	}
	return t.Render()
}

func paginationLine(p *Printer, pg browser.Pagination) string {
	parts := make([]string, 0, len(pg.Links)+2)
	if pg.PrevEnabled {
		parts = append(parts, "‹ prev")
	}
	for _, l := range pg.Links {
		switch {
		case l.Ellipsis:
			parts = append(parts, "…")
		case l.Active:
			parts = append(parts, p.Active(strconv.Itoa(l.Page)))
		default:
			parts = append(parts, strconv.Itoa(l.Page))
		}
	}
	if pg.NextEnabled {
		parts = append(parts, "next ›")
	}
	return strings.Join(parts, " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
