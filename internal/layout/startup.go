package layout

const (
	MainListID   = 1
	MainListName = "main-list"
	InfoTextID   = 2
	InfoTextName = "info-text"

	WelcomeText = "Welcome to EvenHub! Select an item from the list."
)

// StartupPage builds the two-container start-up page: the menu list on the
// left, capturing input, and the info panel on the right.
func StartupPage(items []string) Page {
	list := ListContainer{
		Geometry: Geometry{
			X: 20, Y: 20, Width: 260, Height: 248,
			BorderWidth: 1, BorderColor: 5, BorderRadius: 3, Padding: 4,
		},
		ID:   MainListID,
		Name: MainListName,
		Items: ItemList{
			Names:        append([]string(nil), items...),
			Count:        len(items),
			SelectBorder: true,
		},
		CaptureEvents: true,
	}
	text := TextContainer{
		Geometry: Geometry{
			X: 300, Y: 20, Width: 256, Height: 248,
			BorderWidth: 1, BorderColor: 3, BorderRadius: 3, Padding: 8,
		},
		ID:      InfoTextID,
		Name:    InfoTextName,
		Content: WelcomeText,
	}
	return MustPage(2, []ListContainer{list}, []TextContainer{text})
}
