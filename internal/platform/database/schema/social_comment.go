package schema

// SocialCommentTable represents the 'social.comment' table
type SocialCommentTable struct {
	Table       string
	ID          string
	UserID      string
	DisplayName string
	Body        string
	AnimeID     string
	MovieID     string
	CreatedAt   string
}

// SocialComment is the schema definition for social.comment.
// Exactly one of animeid/movieid is non-null (CHECK constraint).
var SocialComment = SocialCommentTable{
	Table:       "social.comment",
	ID:          "id",
	UserID:      "userid",
	DisplayName: "displayname",
	Body:        "body",
	AnimeID:     "animeid",
	MovieID:     "movieid",
	CreatedAt:   "createdat",
}

func (t SocialCommentTable) Columns() []string {
	return []string{t.ID, t.UserID, t.DisplayName, t.Body, t.AnimeID, t.MovieID, t.CreatedAt}
}
