package schema

// CatalogProfileTable represents the 'profile' table
type CatalogProfileTable struct {
	Table       string
	ID          string
	DisplayName string
	AvatarURL   string
	Role        string
}

// CatalogProfile is the schema definition for profile
var CatalogProfile = CatalogProfileTable{
	Table:       "profile",
	ID:          "id",
	DisplayName: "display_name",
	AvatarURL:   "avatar_url",
	Role:        "role",
}

func (t CatalogProfileTable) Columns() []string {
	return []string{t.ID, t.DisplayName, t.AvatarURL, t.Role}
}
