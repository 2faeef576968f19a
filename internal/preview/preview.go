package preview

// State identifies which of the three preview branches to render
type State int

const (
	StatePlaceholder State = iota
	StateLoading
	StateImage
)

// View is the render model for the phone-frame preview. The three states
// are mutually exclusive; loading wins over any stale image reference.
type View struct {
	State    State
	ImageURL string
}

// Render maps the controller outputs onto exactly one visual state.
// Pure function: no side effects, no network access.
func Render(imageURL string, loading bool) View {
	if loading {
		return View{State: StateLoading}
	}
	if imageURL != "" {
		return View{State: StateImage, ImageURL: imageURL}
	}
	return View{State: StatePlaceholder}
}

// ShowLoading reports whether the spinner branch is active
func (v View) ShowLoading() bool { return v.State == StateLoading }

// ShowImage reports whether the image branch is active
func (v View) ShowImage() bool { return v.State == StateImage }

// ShowPlaceholder reports whether the placeholder branch is active
func (v View) ShowPlaceholder() bool { return v.State == StatePlaceholder }
