package controller

import "github.com/sweeptui/sweep/internal/keymap"

// DefaultKeyMap returns the built-in binding set: arrow/emacs-style motion
// for the input and list widgets, plus the controller's built-in actions
// (mark, select, help, scorer rotation, preview toggle and scroll).
// Callers layer RPC/CLI-supplied bindings over this with KeyMap.Add.
func DefaultKeyMap() *keymap.Map[Action] {
	km := keymap.New[Action]()
	bind := func(chord string, action Action) {
		keys, err := keymap.ParseChord(chord)
		if err != nil {
			panic(err)
		}
		km.AddOrPanic(keys, action)
	}

	bind("left", Builtin(ActionCursorBackward))
	bind("right", Builtin(ActionCursorForward))
	bind("ctrl+a", Builtin(ActionCursorStart))
	bind("home", Builtin(ActionCursorStart))
	bind("ctrl+e", Builtin(ActionCursorEnd))
	bind("end", Builtin(ActionCursorEnd))
	bind("alt+left", Builtin(ActionCursorPrevWord))
	bind("alt+right", Builtin(ActionCursorNextWord))
	bind("backspace", Builtin(ActionDeleteBackward))
	bind("delete", Builtin(ActionDeleteForward))
	bind("ctrl+k", Builtin(ActionDeleteEnd))

	bind("down", Builtin(ActionItemNext))
	bind("ctrl+n", Builtin(ActionItemNext))
	bind("up", Builtin(ActionItemPrev))
	bind("ctrl+p", Builtin(ActionItemPrev))
	bind("page_down", Builtin(ActionPageNext))
	bind("page_up", Builtin(ActionPagePrev))

	bind("enter", Builtin(ActionSelect))
	bind("tab", Builtin(ActionMark))
	bind("ctrl+t", Builtin(ActionMarkAll))
	bind("alt+h", Builtin(ActionHelp))
	bind("ctrl+s", Builtin(ActionScorerNext))
	bind("alt+p", Builtin(ActionPreviewToggle))
	bind("ctrl+alt+n", Builtin(ActionPreviewLineNext))
	bind("ctrl+alt+p", Builtin(ActionPreviewLinePrev))

	return km
}
