//go:build js && wasm

// Command wasm exposes the evaluator to a plain HTML page.
package main

import (
	"strings"
	"syscall/js"

	"tcalc/app/lang"
)

var (
	sheet      = lang.NewSheet(nil)
	editorText string
)

func main() {
	// evaluate(expr) returns one result string; errors are prefixed "Error: ".
	js.Global().Set("evaluate", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 1 {
			return nil
		}
		out, err := lang.Evaluate(args[0].String())
		if err != nil {
			return "Error: " + err.Error()
		}
		return out
	}))

	// evaluateSheet(text, clockTicked) returns [{text, isErr}] per line.
	js.Global().Set("evaluateSheet", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 2 {
			return nil
		}
		editorText = args[0].String()
		results := sheet.EvalAll(strings.Split(editorText, "\n"), args[1].Bool())

		arr := js.Global().Get("Array").New(len(results))
		for i, r := range results {
			obj := js.Global().Get("Object").New()
			obj.Set("text", r.Text)
			obj.Set("isErr", r.IsErr)
			arr.SetIndex(i, obj)
		}
		return arr
	}))

	js.Global().Set("getEditorText", js.FuncOf(func(this js.Value, args []js.Value) any {
		return editorText
	}))

	js.Global().Set("setEditorText", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			editorText = args[0].String()
			ta := js.Global().Get("document").Call("getElementById", "editor")
			if !ta.IsUndefined() && !ta.IsNull() {
				ta.Set("value", editorText)
				ta.Call("dispatchEvent", js.Global().Get("Event").New("input"))
			}
		}
		return nil
	}))

	js.Global().Set("_wasmReady", true)
	onReady := js.Global().Get("_onWasmReady")
	if !onReady.IsUndefined() && !onReady.IsNull() {
		onReady.Invoke()
	}

	select {}
}
