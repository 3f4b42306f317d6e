package model

// Category represents a catalog category.
type Category struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	Ordering      int        `json:"ordering"`
	Visibility    Visibility `json:"visibility"`
	AllowComments Toggle     `json:"allow_comments"`
	AllowAds      Toggle     `json:"allow_ads"`

	// Joined fields (not always populated).
	ItemCount int `json:"item_count,omitempty"`
}

// Visibility controls whether a category is shown on the storefront.
type Visibility int

// Visibilities.
const (
	VisibilityVisible Visibility = 0
	VisibilityHidden  Visibility = 1
)

// Toggle is a yes/no flag where zero means yes, matching the stored encoding.
type Toggle int

// Toggle values.
const (
	ToggleYes Toggle = 0
	ToggleNo  Toggle = 1
)

// VisibilityName returns the display name for a visibility value.
func (v Visibility) VisibilityName() string {
	if v == VisibilityHidden {
		return "Hidden"
	}
	return "Visible"
}

// ToggleName returns the display name for a toggle value.
func (t Toggle) ToggleName() string {
	if t == ToggleNo {
		return "No"
	}
	return "Yes"
}
