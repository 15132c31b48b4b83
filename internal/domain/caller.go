package domain

// Caller identifies who is making a request. The zero value is the
// anonymous caller, which read paths accept and write paths must not.
type Caller struct {
	userID string
}

// Anonymous is the caller for requests without a valid bearer credential.
var Anonymous = Caller{}

// AuthenticatedCaller builds a caller for a verified user id.
func AuthenticatedCaller(userID string) Caller {
	return Caller{userID: userID}
}

// UserID returns the verified user id and whether the caller is
// authenticated at all.
func (c Caller) UserID() (string, bool) {
	return c.userID, c.userID != ""
}
