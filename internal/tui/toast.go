package tui

// ToastKind selects the toast colour.
type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastSuccess
	ToastError
)

// Toast is a transient notification. It is visible, then faded, then gone.
// Seq identifies the showing so a timer for an earlier toast cannot hide a
// later one.
type Toast struct {
	Text    string
	Kind    ToastKind
	Visible bool
	Fading  bool
	Seq     int
}

// Show replaces the current toast and returns its sequence number.
func (t *Toast) Show(text string, kind ToastKind) int {
	t.Seq++
	t.Text = text
	t.Kind = kind
	t.Visible = true
	t.Fading = false
	return t.Seq
}

// Fade moves the toast into its faded state if seq is still current.
func (t *Toast) Fade(seq int) bool {
	if seq != t.Seq || !t.Visible {
		return false
	}
	t.Fading = true
	return true
}

// Clear hides the toast if seq is still current.
func (t *Toast) Clear(seq int) {
	if seq != t.Seq {
		return
	}
	t.Visible = false
	t.Fading = false
	t.Text = ""
}

// Render draws the toast, or "" when hidden.
func (t Toast) Render() string {
	if !t.Visible {
		return ""
	}
	if t.Fading {
		return ToastFadedStyle.Render(t.Text)
	}
	switch t.Kind {
	case ToastSuccess:
		return ToastSuccessStyle.Render(t.Text)
	case ToastError:
		return ToastErrorStyle.Render(t.Text)
	default:
		return ToastInfoStyle.Render(t.Text)
	}
}
