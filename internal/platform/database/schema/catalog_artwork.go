package schema

// CatalogArtworkTable represents the 'artworks' table
type CatalogArtworkTable struct {
	Table      string
	ID         string
	Title      string
	Slug       string
	ArtistID   string
	Category   string
	Medium     string
	Status     string
	Price      string
	Year       string
	WidthCM    string
	HeightCM   string
	Location   string
	ImageURL   string
	IsFeatured string
	IsTrending string
	CreatedAt  string
}

// CatalogArtwork is the schema definition for artworks
var CatalogArtwork = CatalogArtworkTable{
	Table:      "artworks",
	ID:         "id",
	Title:      "title",
	Slug:       "slug",
	ArtistID:   "artist_id",
	Category:   "category",
	Medium:     "medium",
	Status:     "status",
	Price:      "price",
	Year:       "year",
	WidthCM:    "width_cm",
	HeightCM:   "height_cm",
	Location:   "location",
	ImageURL:   "image_url",
	IsFeatured: "is_featured",
	IsTrending: "is_trending",
	CreatedAt:  "created_at",
}

func (t CatalogArtworkTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Slug, t.ArtistID, t.Category, t.Medium, t.Status, t.Price, t.Year,
		t.WidthCM, t.HeightCM, t.Location, t.ImageURL, t.IsFeatured, t.IsTrending, t.CreatedAt,
	}
}

// ArtworkRow names the columns returned by the catalog procedures
// (filter_artworks, search_artworks). It extends the table with joined and
// computed columns.
var ArtworkRow = struct {
	ArtistName string
	Rank       string
}{
	ArtistName: "artist_name",
	Rank:       "rank",
}
