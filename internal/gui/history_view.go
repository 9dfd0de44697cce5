package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/persianpro/internal/history"
)

// historyView lists the saved entries, newest first
type historyView struct {
	a       *Application
	entries []history.Entry

	count        *widget.Label
	empty        *widget.Label
	list         *widget.List
	exportButton *ttwidget.Button
	clearButton  *ttwidget.Button
}

// historyRow is the widget tree of one list item
type historyRow struct {
	source      *widget.Label
	translation *widget.Label
	when        *widget.Label
	speak       *PronounceButton
}

func newHistoryView(a *Application) *historyView {
	v := &historyView{a: a}

	v.count = widget.NewLabel("")
	v.count.TextStyle = fyne.TextStyle{Bold: true}
	v.empty = widget.NewLabel(a.loc.T("noHistory"))
	v.empty.Alignment = fyne.TextAlignCenter

	v.exportButton = ttwidget.NewButtonWithIcon(a.loc.T("export"), theme.DownloadIcon(), v.onExport)
	v.clearButton = ttwidget.NewButtonWithIcon(a.loc.T("clearHistory"), theme.DeleteIcon(), v.onClear)
	v.clearButton.Importance = widget.DangerImportance

	rows := make(map[fyne.CanvasObject]*historyRow)
	v.list = widget.NewList(
		func() int {
			return len(v.entries)
		},
		func() fyne.CanvasObject {
			row := &historyRow{
				source:      newWrappedLabel(),
				translation: newWrappedLabel(),
				when:        widget.NewLabel(""),
				speak:       newPronounceButton(a, fmt.Sprintf("history.%d", len(rows))),
			}
			row.translation.TextStyle = fyne.TextStyle{Bold: true}
			row.when.Importance = widget.LowImportance
			obj := container.NewBorder(nil, nil, nil,
				container.NewVBox(row.speak.Button, row.when),
				container.NewGridWithColumns(2, row.source, row.translation),
			)
			rows[obj] = row
			return obj
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			row := rows[obj]
			if row == nil || id >= len(v.entries) {
				return
			}
			e := v.entries[id]
			setAligned(row.source, e.SourceText, e.SourceLang)
			setAligned(row.translation, e.TranslatedText, e.TargetLang)
			row.when.SetText(e.Time().Local().Format("2006-01-02 15:04"))
			row.speak.SetSpeech(e.TranslatedText)
			v.list.SetItemHeight(id, obj.MinSize().Height)
		},
	)

	return v
}

func (v *historyView) content() fyne.CanvasObject {
	header := container.NewHBox(v.count, layout.NewSpacer(), v.exportButton, v.clearButton)
	return container.NewBorder(
		container.NewVBox(header, widget.NewSeparator()),
		nil, nil, nil,
		container.NewStack(container.NewCenter(v.empty), v.list),
	)
}

func (v *historyView) setupTooltips() {
	v.exportButton.SetToolTip(v.a.loc.T("export"))
	v.clearButton.SetToolTip(v.a.loc.T("clearHistory"))
}

func (v *historyView) render() {
	v.entries = v.a.config.History.List()
	v.count.SetText(v.a.loc.Tf("entries", map[string]interface{}{"Count": len(v.entries)}))

	if len(v.entries) == 0 {
		v.empty.Show()
		v.list.Hide()
		v.exportButton.Disable()
		v.clearButton.Disable()
	} else {
		v.empty.Hide()
		v.list.Show()
		v.exportButton.Enable()
		v.clearButton.Enable()
	}
	v.list.Refresh()
}

func (v *historyView) onExport() {
	path, err := v.a.config.History.ExportFile(v.a.config.ExportDir)
	if err != nil {
		v.a.showError(err)
		return
	}

	message := v.a.loc.Tf("exported", map[string]interface{}{"Path": path})
	v.a.logger.Info("history exported")
	dialog.ShowInformation(v.a.loc.T("export"), message, v.a.window)
	v.a.updateStatus(message)
}

func (v *historyView) onClear() {
	dialog.ShowConfirm(v.a.loc.T("clearHistory"), v.a.loc.T("clearConfirm"), func(ok bool) {
		if !ok {
			v.a.updateStatus(v.a.loc.T("cancelled"))
			return
		}

		// The dialog already asked, so the store is given a yes
		_, err := v.a.config.History.Clear(v.a.ctx, history.ConfirmFunc(func(string) bool { return true }))
		v.a.session.Reset()
		v.a.quiz.chosen = ""
		v.a.quiz.buttons = nil
		v.render()
		if err != nil {
			v.a.showStorageError(err)
			return
		}
		v.a.updateStatus(v.a.loc.T("cleared"))
	}, v.a.window)
}
