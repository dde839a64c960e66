package cli

import (
	"bufio"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/clippings/internal/domain"
	"github.com/MrSnakeDoc/clippings/internal/portal"
	"github.com/MrSnakeDoc/clippings/internal/utils"
)

type uploadOptions struct {
	title       string
	date        string
	category    string
	description string
	user        string
	password    string
}

func newUploadCmd(root *rootOptions) *cobra.Command {
	opts := &uploadOptions{}
	cmd := &cobra.Command{
		Use:   "upload FILE.pdf",
		Short: "Upload a PDF and create its clipping",
		Long: `Upload a PDF and create its clipping.

The form is checked first, then you are asked to log in and answer the
security question.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return domain.NewValidationError("file", domain.ErrNoFile)
			}
			defer utils.MustClose(f)

			info, err := f.Stat()
			if err != nil {
				return err
			}
			attachment := portal.Attachment{
				Meta: domain.FileMeta{
					Name:        filepath.Base(args[0]),
					ContentType: contentType(args[0]),
					Size:        info.Size(),
				},
				Body: f,
			}
			draft := domain.Draft{
				Title:       opts.title,
				Date:        opts.date,
				Category:    opts.category,
				Description: opts.description,
			}
			if _, err := draft.Validate(); err != nil {
				return err
			}
			if err := domain.ValidateFile(&attachment.Meta, 0); err != nil {
				return err
			}

			p := root.startPortal(cmd.Context())

			user, password := opts.user, opts.password
			if user == "" {
				user = root.cfg.Username
			}
			if password == "" {
				password = root.cfg.Password
			}
			answer, err := askCaptcha(cmd, p.Captcha())
			if err != nil {
				return err
			}
			if _, err := p.Login(user, password, answer); err != nil {
				root.flush(p)
				return err
			}
			root.flush(p)

			errOut := cmd.ErrOrStderr()
			c, err := p.Upload(cmd.Context(), draft, attachment, func(pct int) {
				fmt.Fprintf(errOut, "\rUploading… %3d%%", pct)
				if pct == 100 {
					fmt.Fprintln(errOut)
				}
			})
			root.flush(p)
			if err != nil {
				return err
			}

			root.printer.Print("")
			if err := renderClippings(root.printer, domain.Collection{c}); err != nil {
				return err
			}
			root.printer.Print("%s", c.URL)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "clipping title (required)")
	cmd.Flags().StringVarP(&opts.date, "date", "d", time.Now().Format(domain.DateLayout), "clipping date, YYYY-MM-DD")
	cmd.Flags().StringVarP(&opts.category, "category", "c", "", "category (required)")
	cmd.Flags().StringVar(&opts.description, "description", "", "description (default mentions the date)")
	cmd.Flags().StringVarP(&opts.user, "user", "u", "", "user id (default $CLIPPINGS_USERNAME)")
	cmd.Flags().StringVar(&opts.password, "password", "", "password (default $CLIPPINGS_PASSWORD)")
	return cmd
}

func askCaptcha(cmd *cobra.Command, question string) (string, error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Security check: %s ", question)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading security answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func contentType(path string) string {
	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return ct
}
