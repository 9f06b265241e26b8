package domain

// AccessDetails is the identity extracted from a verified access token.
// UserID is the hex form of the user's ObjectID.
type AccessDetails struct {
	AccessUuid string
	UserID     string
}
