package users

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is a signup record. Passwords are stored and compared in clear and
// the login response echoes the whole record back; the existing front end
// depends on that shape. TODO: hash passwords once the client stops reading
// the password field out of the login response.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Username string             `bson:"username" json:"username"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"password"`
}
