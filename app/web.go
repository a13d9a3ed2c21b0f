//go:build js && wasm

package main

import (
	"syscall/js"

	"gioui.org/app"
)

// registerWebCallbacks exposes the editor buffer to the hosting page for
// share links.
func registerWebCallbacks(es *EditorState, w *app.Window) {
	js.Global().Set("getEditorText", js.FuncOf(func(this js.Value, args []js.Value) any {
		return es.Editor.Text()
	}))
	js.Global().Set("setEditorText", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			es.SetContent([]byte(args[0].String()))
			w.Invalidate()
		}
		return nil
	}))

	// _initialText is decoded from the URL by the page before the module starts.
	initialText := js.Global().Get("_initialText")
	if !initialText.IsUndefined() && !initialText.IsNull() && initialText.String() != "" {
		es.SetContent([]byte(initialText.String()))
	}
}
