package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// confirmDialog is the modal yes/no prompt shown before deletions.
// While visible it swallows all key input.
type confirmDialog struct {
	styles  Styles
	prompt  string
	visible bool
}

func (d *confirmDialog) Show(prompt string) {
	d.prompt = prompt
	d.visible = true
}

func (d *confirmDialog) Visible() bool { return d.visible }

// Update consumes one key press. done reports whether the dialog
// resolved this message, confirmed carries the answer.
func (d *confirmDialog) Update(msg tea.Msg) (done, confirmed bool) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, false
	}
	switch key.String() {
	case "y", "enter":
		d.visible = false
		return true, true
	case "n", "esc":
		d.visible = false
		return true, false
	}
	return false, false
}

func (d *confirmDialog) View(width, height int) string {
	body := d.prompt + "\n\n" + d.styles.Help.Render("y: confirm   n: cancel")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		d.styles.Dialog.Render(body))
}
