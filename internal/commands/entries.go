package commands

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"journal/internal/domain"
	"journal/internal/domain/models/journal"
	serviceJournal "journal/internal/service/journal"
)

// parseDate reads a date argument; "today" and "yesterday" are accepted
func parseDate(arg string) (journal.DateKey, error) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "today":
		return journal.KeyFor(time.Now()), nil
	case "yesterday":
		return journal.KeyFor(time.Now().AddDate(0, 0, -1)), nil
	}
	return journal.ParseDateKey(arg)
}

func dateArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("expected exactly one DATE (YYYY-MM-DD, today or yesterday)")
	}
	_, err := parseDate(args[0])
	return err
}

func addShow(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "show DATE",
		Short: "Print the entry for a date",
		Example: `
journal show today
journal show 2024-03-01
`,
		Args: dateArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, _ := parseDate(args[0])

			e, err := openEnv(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer e.close()

			entry, err := e.entries.GetEntry(cmd.Context(), key)
			if errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrRemote) {
				e.printer.Missing(key)
				return nil
			}
			if err != nil {
				return err
			}
			e.printer.Entry(entry)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func addEdit(topLevel *cobra.Command) {
	var (
		title      string
		content    string
		image      string
		clearImage bool
	)

	cmd := &cobra.Command{
		Use:   "edit DATE",
		Short: "Create or update the entry for a date",
		Long: `Loads the entry for DATE, applies the given fields and saves it.
Fields that are not given keep their stored value. An image is uploaded
before the entry is written.`,
		Example: `
journal edit today --title "First day" --content "Met the team."
journal edit 2024-03-01 --image ./whiteboard.jpg
journal edit 2024-03-01 --clear-image
`,
		Args: dateArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, _ := parseDate(args[0])
			if image != "" && clearImage {
				return errors.New("--image and --clear-image are mutually exclusive")
			}

			e, err := openEnv(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer e.close()

			editor := e.newEditor()
			if err := editor.Load(cmd.Context(), key); err != nil {
				return err
			}
			editor.EnterEditMode()

			if cmd.Flags().Changed("title") {
				editor.SetTitle(title)
			}
			if cmd.Flags().Changed("content") {
				editor.UpdateContent(content)
			}
			switch {
			case image != "":
				if _, err := editor.PickImage(cmd.Context(), serviceJournal.FilePicker(image)); err != nil {
					return err
				}
			case clearImage:
				editor.ClearImage()
			}

			entry, err := editor.Save(cmd.Context())
			if err != nil {
				return err
			}
			e.printer.Entry(entry)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "entry title")
	cmd.Flags().StringVar(&content, "content", "", "entry text")
	cmd.Flags().StringVar(&image, "image", "", "path of an image to attach")
	cmd.Flags().BoolVar(&clearImage, "clear-image", false, "remove the entry's image")

	topLevel.AddCommand(cmd)
}

func addDelete(topLevel *cobra.Command) {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete DATE",
		Short: "Delete the entry for a date",
		Example: `
journal delete 2024-03-01
journal delete yesterday --yes
`,
		Args: dateArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, _ := parseDate(args[0])

			e, err := openEnv(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer e.close()

			editor := e.newEditor()
			if err := editor.Load(cmd.Context(), key); err != nil {
				return err
			}
			if !editor.Snapshot().Exists {
				e.printer.Missing(key)
				return nil
			}

			editor.RequestDelete()
			if !yes && !confirmed(cmd) {
				editor.CancelDelete()
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
			return editor.ConfirmDelete(cmd.Context())
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")

	topLevel.AddCommand(cmd)
}

// confirmed reads a y/N answer from the command's input
func confirmed(cmd *cobra.Command) bool {
	fmt.Fprint(cmd.OutOrStdout(), "[y/N] ")
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
