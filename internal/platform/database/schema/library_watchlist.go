package schema

// LibraryWatchlistTable represents the shared row shape of the two watchlist
// tables, 'library.animewatchlist' and 'library.moviewatchlist'. Only the
// subject foreign-key column name differs between the kinds.
type LibraryWatchlistTable struct {
	Table     string
	ID        string
	UserID    string
	SubjectID string
	Status    string
	AddedAt   string
}

// LibraryAnimeWatchlist is the schema definition for library.animewatchlist.
// A unique index on (userid, animeid) backs the atomic toggle.
var LibraryAnimeWatchlist = LibraryWatchlistTable{
	Table:     "library.animewatchlist",
	ID:        "id",
	UserID:    "userid",
	SubjectID: "animeid",
	Status:    "status",
	AddedAt:   "addedat",
}

// LibraryMovieWatchlist is the schema definition for library.moviewatchlist.
// A unique index on (userid, movieid) backs the atomic toggle.
var LibraryMovieWatchlist = LibraryWatchlistTable{
	Table:     "library.moviewatchlist",
	ID:        "id",
	UserID:    "userid",
	SubjectID: "movieid",
	Status:    "status",
	AddedAt:   "addedat",
}

func (t LibraryWatchlistTable) Columns() []string {
	return []string{t.ID, t.UserID, t.SubjectID, t.Status, t.AddedAt}
}
