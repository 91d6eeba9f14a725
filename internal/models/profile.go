package models

// Profile is the role-specific extension record created alongside a User.
// Student and teacher profiles live in separate collections keyed by user_id.
type Profile struct {
	UserID   string `bson:"user_id"`
	FullName string `bson:"full_name"`
}
