package branch

import "time"

// Branch is a named work site.
type Branch struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UnassignedName is displayed wherever a branch reference cannot be resolved.
const UnassignedName = "UNASSIGNED"

// NameOf returns the name of the branch with the given id, or UnassignedName.
func NameOf(branches []Branch, id string) string {
	for _, b := range branches {
		if b.ID == id {
			return b.Name
		}
	}
	return UnassignedName
}

// FirstID returns the id of the first branch, or "" when there are none.
func FirstID(branches []Branch) string {
	if len(branches) == 0 {
		return ""
	}
	return branches[0].ID
}
