// Package view renders the pulse strip, the day list and the footer.
// Functions here are pure: they take a view state and return a string.
package view

// ViewState contains the pre-rendered app content.
type ViewState struct {
	Width            int
	Height           int
	Content          string
	EmptyPlaceholder string
}

// Render composes the final view output.
func Render(state ViewState) string {
	if state.Width == 0 || state.Height == 0 {
		if state.EmptyPlaceholder != "" {
			return state.EmptyPlaceholder
		}
		return "Loading..."
	}
	return state.Content
}
