package palette

import (
	"fmt"

	"github.com/1broseidon/wmgr/internal/action"
)

// Prompt is shown by the launcher.
const Prompt = "wmgr"

var familyIcons = map[action.Family]string{
	action.FamilyHalves:     "view-split-left-right",
	action.FamilyQuarters:   "view-grid",
	action.FamilySixths:     "view-grid",
	action.FamilyThirds:     "view-split-left-right",
	action.FamilyFourths:    "view-split-left-right",
	action.FamilyLarger:     "view-split-left-right",
	action.FamilySize:       "zoom-fit-best",
	action.FamilyMove:       "transform-move",
	action.FamilyNavigation: "video-display",
	action.FamilyOther:      "view-fullscreen",
}

// ActionItems lists every action under a header per family. last, when
// valid, is highlighted.
func ActionItems(last action.Action) []Item {
	var items []Item
	for _, family := range action.Families {
		items = append(items, Item{Label: string(family), IsHeader: true})
		for _, a := range action.All() {
			if a.Family() != family {
				continue
			}
			items = append(items, Item{
				Label:    a.Title(),
				Value:    a.String(),
				Icon:     familyIcons[family],
				Meta:     a.String() + " " + string(family),
				IsActive: a == last,
			})
		}
	}
	return items
}

// maxReshows bounds how often a header pick re-opens the launcher.
const maxReshows = 5

// PickAction shows the actions and returns the chosen one. Launchers that
// cannot make headers unselectable re-open when one is picked.
func PickAction(b Backend, last action.Action) (action.Action, error) {
	items := ActionItems(last)
	for range maxReshows {
		item, err := b.Show(Prompt, items)
		if err != nil {
			return 0, err
		}
		if item.IsHeader {
			continue
		}
		return action.Parse(item.Value)
	}
	return 0, fmt.Errorf("palette: no action chosen after %d attempts", maxReshows)
}
