package cli

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/clippings/internal/domain"
)

func newFilesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "files",
		Short: "List the PDFs stored on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := root.client.ListFiles(cmd.Context())
			if err != nil {
				return err
			}
			if len(files) == 0 {
				root.printer.Info("No files uploaded yet")
				return nil
			}

			t := NewTable(root.printer.out, "Filename", "Size", "Uploaded", "URL")
			for _, f := range files {
				t.AddRow(f.Filename, domain.FormatFileSize(f.Size), f.UploadDate.Local().Format("2006-01-02 15:04"), root.client.FileURL(f.Filename))
			}
			return t.Render()
		},
	}
}
