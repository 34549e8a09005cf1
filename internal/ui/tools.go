package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// NewToolbar assembles the viewer toolbar: export, clear and reconnect.
func NewToolbar(actions Actions) fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
			if actions.OnExport != nil {
				actions.OnExport()
			}
		}),
		widget.NewToolbarAction(theme.DeleteIcon(), func() {
			if actions.OnClear != nil {
				actions.OnClear()
			}
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ViewRefreshIcon(), func() {
			if actions.OnReconnect != nil {
				actions.OnReconnect()
			}
		}),
	)

	return container.NewHBox(
		widget.NewLabel("FlowScope"),
		widget.NewSeparator(),
		tb,
		layout.NewSpacer(),
	)
}
