package ui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/bkwi/beacon/internal/engine"
	"github.com/bkwi/beacon/internal/provider"
)

func launchTView(eng *engine.Engine, issues []provider.Issue) (provider.Result, bool, error) {
	app := tview.NewApplication()

	input := tview.NewInputField().SetLabel("> ")
	listView := tview.NewList().ShowSecondaryText(true)
	listView.SetBorder(true)
	listView.SetTitle(" beacon ")

	var (
		current  []provider.Result
		selected provider.Result
		chosen   bool
	)

	render := func(results []provider.Result) {
		current = results
		listView.Clear()
		for i := range results {
			result := results[i]
			listView.AddItem(result.Title, result.Subtitle, 0, func() {
				selected = result
				chosen = true
				app.Stop()
			})
		}
	}

	runQuery := func(text string) {
		// Claim the sequence number before the goroutine starts so a
		// later keystroke always outranks an earlier one.
		seq := eng.NextSeq()
		go func() {
			resp := eng.Query(context.Background(), seq, text)
			if resp.Seq != eng.Latest() {
				return
			}
			app.QueueUpdateDraw(func() {
				render(resp.Results)
			})
		}()
	}

	input.SetChangedFunc(runQuery)
	input.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			if len(current) > 0 {
				index := listView.GetCurrentItem()
				if index >= 0 && index < len(current) {
					selected = current[index]
					chosen = true
				}
			}
			app.Stop()
		case tcell.KeyEscape:
			app.Stop()
		}
	})

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(input, 1, 0, true).
		AddItem(listView, 0, 1, false)
	if len(issues) > 0 {
		status := tview.NewTextView().
			SetText(fmt.Sprintf("%d provider(s) unavailable", len(issues)))
		flex.AddItem(status, 1, 0, false)
	}

	runQuery("")
	if err := app.SetRoot(flex, true).SetFocus(input).Run(); err != nil {
		return provider.Result{}, false, err
	}
	if !chosen {
		return provider.Result{}, false, nil
	}
	return selected, true, nil
}
