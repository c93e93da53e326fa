package schema

// CatalogTitleTable represents the shared row shape of the two catalogue
// tables, 'catalog.anime' and 'catalog.movie'.
type CatalogTitleTable struct {
	Table        string
	ID           string
	Title        string
	Slug         string
	Description  string
	Synopsis     string
	ThumbnailURL string
	Rating       string
	ReleaseYear  string
	Status       string
	IsArchived   string
	CreatedAt    string
	UpdatedAt    string
}

// CatalogAnime is the schema definition for catalog.anime
var CatalogAnime = CatalogTitleTable{
	Table:        "catalog.anime",
	ID:           "id",
	Title:        "title",
	Slug:         "slug",
	Description:  "description",
	Synopsis:     "synopsis",
	ThumbnailURL: "thumbnailurl",
	Rating:       "rating",
	ReleaseYear:  "releaseyear",
	Status:       "status",
	IsArchived:   "isarchived",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// CatalogMovie is the schema definition for catalog.movie
var CatalogMovie = CatalogTitleTable{
	Table:        "catalog.movie",
	ID:           "id",
	Title:        "title",
	Slug:         "slug",
	Description:  "description",
	Synopsis:     "synopsis",
	ThumbnailURL: "thumbnailurl",
	Rating:       "rating",
	ReleaseYear:  "releaseyear",
	Status:       "status",
	IsArchived:   "isarchived",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t CatalogTitleTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Slug, t.Description, t.Synopsis, t.ThumbnailURL,
		t.Rating, t.ReleaseYear, t.Status, t.IsArchived, t.CreatedAt, t.UpdatedAt,
	}
}
