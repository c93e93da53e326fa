package schema

// UsersSessionTable represents the 'users.session' table
type UsersSessionTable struct {
	Table     string
	ID        string
	UserID    string
	TokenHash string
	UserAgent string
	IPAddress string
	ExpiresAt string
	IsRevoked string
	CreatedAt string
}

// UsersSession is the schema definition for users.session
var UsersSession = UsersSessionTable{
	Table:     "users.session",
	ID:        "id",
	UserID:    "userid",
	TokenHash: "tokenhash",
	UserAgent: "useragent",
	IPAddress: "ipaddress",
	ExpiresAt: "expiresat",
	IsRevoked: "isrevoked",
	CreatedAt: "createdat",
}

func (t UsersSessionTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.TokenHash, t.UserAgent, t.IPAddress,
		t.ExpiresAt, t.IsRevoked, t.CreatedAt,
	}
}
