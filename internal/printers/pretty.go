// Package printers renders journal output for the terminal.
package printers

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"journal/internal/domain/models"
	"journal/internal/domain/models/journal"
	"journal/internal/domain/services"
)

var (
	bold    = color.New(color.Bold)
	faint   = color.New(color.Faint)
	success = color.New(color.FgGreen)
	failure = color.New(color.FgRed, color.Bold)
	confirm = color.New(color.FgYellow)
	info    = color.New(color.FgCyan)
)

// Pretty prints notices, navigation and entries to Out. It is the
// presentation boundary of the CLI.
type Pretty struct {
	Out io.Writer
}

// Notify prints a notice, colored by kind
func (p *Pretty) Notify(n services.Notice) {
	c := info
	switch n.Kind {
	case services.NoticeSuccess:
		c = success
	case services.NoticeFailure:
		c = failure
	case services.NoticeConfirm:
		c = confirm
	}

	if n.Title != "" {
		_, _ = c.Fprintf(p.Out, "%s: ", n.Title)
	}
	_, _ = c.Fprintln(p.Out, n.Message)
}

// GoBack has no screen to return to on the command line
func (p *Pretty) GoBack() {}

// NavigateTo prints the screen a client would show next
func (p *Pretty) NavigateTo(screen services.Screen) {
	_, _ = faint.Fprintf(p.Out, "-> %s\n", screen)
}

// Entry prints one journal entry as a table
func (p *Pretty) Entry(e *journal.Entry) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 80
	tbl.Wrap = true

	image := e.ImageURL
	if image == "" {
		image = faint.Sprint("none")
	}

	tbl.AddRow(bold.Sprint("Date"), e.Date)
	tbl.AddRow(bold.Sprint("Title"), e.Title)
	tbl.AddRow(bold.Sprint("Content"), e.Content)
	tbl.AddRow(bold.Sprint("Image"), image)
	_, _ = fmt.Fprintln(p.Out, tbl)
}

// Missing reports a date without an entry
func (p *Pretty) Missing(key journal.DateKey) {
	_, _ = faint.Fprintf(p.Out, "No journal entry for %s.\n", key.DisplayDate())
}

// Credential prints a signed-in user and their token
func (p *Pretty) Credential(c *models.Credential) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("User"), c.User.Email)
	tbl.AddRow(bold.Sprint("ID"), c.User.ID)
	if !c.ExpiresAt.IsZero() {
		tbl.AddRow(bold.Sprint("Expires"), c.ExpiresAt.Local().Format("2006-01-02 15:04:05"))
	}
	tbl.AddRow(bold.Sprint("Token"), c.AccessToken)
	_, _ = fmt.Fprintln(p.Out, tbl)
}

var (
	_ services.Presenter = (*Pretty)(nil)
	_ services.Navigator = (*Pretty)(nil)
)
