package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
)

// Actions are the toolbar hooks wired up by main.
type Actions struct {
	OnExport    func()
	OnClear     func()
	OnReconnect func()
}

// RunApp builds the viewer window and blocks until it closes.
func RunApp(title string, width, height float32, view *DiagramView, actions Actions) {
	myApp := app.New()
	myWindow := myApp.NewWindow(title)
	myWindow.Resize(fyne.NewSize(width, height))

	toolbar := NewToolbar(actions)

	content := container.NewBorder(toolbar, view.StatusBar(), nil, nil, view)
	myWindow.SetContent(content)
	myWindow.ShowAndRun()
}
