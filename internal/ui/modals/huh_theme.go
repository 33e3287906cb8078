package modals

import (
	"image/color"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/supportchat/internal/keys"
)

// updateForm forwards msg to form. Enter and Escape never reach huh: the app
// decides whether they save or cancel.
func updateForm(form *huh.Form, msg tea.Msg) (*huh.Form, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		if k := keyMsg.String(); k == keys.Enter || k == keys.Escape {
			return form, nil
		}
	}

	next, cmd := form.Update(msg)
	if f, ok := next.(*huh.Form); ok {
		form = f
	}
	return form, cmd
}

func fg(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// formTheme styles the settings form with the active palette. It is built
// per form so a theme change shows up the next time settings open.
func formTheme() huh.Theme {
	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		t := huh.ThemeBase(isDark)
		f := &t.Focused

		f.Base = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderStyle(lipgloss.ThickBorder()).
			BorderLeft(true).
			BorderForeground(ColorPrimary)
		f.Card = f.Base
		f.Title = fg(ColorText).Bold(true)
		f.Description = fg(ColorTextMuted)
		f.ErrorIndicator = fg(ColorError).SetString(" !")
		f.ErrorMessage = fg(ColorError)

		// Theme picker
		f.SelectSelector = fg(ColorPrimary).SetString("› ")
		f.Option = fg(ColorText)
		f.NextIndicator = fg(ColorPrimary).MarginLeft(1).SetString("›")
		f.PrevIndicator = fg(ColorPrimary).MarginRight(1).SetString("‹")

		// Notification and delete toggles
		f.MultiSelectSelector = fg(ColorPrimary).SetString("› ")
		f.SelectedOption = fg(ColorSecondary)
		f.SelectedPrefix = fg(ColorSecondary).SetString("◉ ")
		f.UnselectedOption = fg(ColorText)
		f.UnselectedPrefix = fg(ColorTextMuted).SetString("○ ")

		// Service URL
		f.TextInput.Prompt = fg(ColorPrimary)
		f.TextInput.Text = fg(ColorText)
		f.TextInput.Cursor = fg(ColorPrimary)
		f.TextInput.Placeholder = fg(ColorTextMuted)

		t.Blurred = t.Focused
		t.Blurred.Base = lipgloss.NewStyle().PaddingLeft(2)
		t.Blurred.Card = t.Blurred.Base
		t.Blurred.Title = fg(ColorTextMuted)
		t.Blurred.NextIndicator = lipgloss.NewStyle()
		t.Blurred.PrevIndicator = lipgloss.NewStyle()

		t.FieldSeparator = lipgloss.NewStyle().SetString("\n")
		t.Help = help.New().Styles
		return t
	})
}
