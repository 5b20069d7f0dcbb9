package controller

// Action is the key-map payload type: either a built-in motion/selection
// action or a user-bound tag (registered via the RPC `bind` method).
type Action struct {
	Kind ActionKind
	Tag  string // set when Kind == ActionBind
}

type ActionKind int

const (
	ActionNone ActionKind = iota

	ActionCursorForward
	ActionCursorBackward
	ActionCursorStart
	ActionCursorEnd
	ActionCursorNextWord
	ActionCursorPrevWord
	ActionDeleteBackward
	ActionDeleteForward
	ActionDeleteEnd

	ActionItemNext
	ActionItemPrev
	ActionPageNext
	ActionPagePrev
	ActionHome
	ActionEnd

	ActionSelect
	ActionMark
	ActionMarkAll
	ActionHelp
	ActionScorerNext
	ActionPreviewToggle
	ActionPreviewLineNext
	ActionPreviewLinePrev

	// ActionBind fires a user-registered tag; the controller emits it as
	// a Bind event to the caller queue instead of handling it itself.
	ActionBind
)

// Builtin returns the built-in action of the given kind (Tag unused).
func Builtin(kind ActionKind) Action { return Action{Kind: kind} }

// Bind returns a user-bound action carrying tag.
func Bind(tag string) Action { return Action{Kind: ActionBind, Tag: tag} }
