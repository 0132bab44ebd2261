package models

import "github.com/golang-jwt/jwt/v5"

// Claims is the JWT claim set issued on login and registration. On top of
// the registered claims it embeds the three user attributes the client
// needs to render the session without a database round trip.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`

	jwt.RegisteredClaims
}

// Payload converts the claims back into the public user representation.
func (c Claims) Payload() UserPayload {
	return UserPayload{
		ID:    c.UserID,
		Name:  c.Name,
		Email: c.Email,
	}
}

// Token wraps an issued or parsed session token.
//
// SignedString holds the compact serialized form (header.payload.signature)
// ready to be set as a cookie or sent in an Authorization header. Claims is
// the decoded claim set.
type Token struct {
	SignedString string `json:"-"`
	Claims       Claims `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the fmt.Stringer interface.
func (t Token) String() string {
	return t.SignedString
}
