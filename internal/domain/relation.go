package domain

import "time"

// RelationKind distinguishes the user-marked relation types that share
// one storage shape: a (user, target) pair that either exists or not.
type RelationKind string

const (
	// RelationFavorite marks a recipe as a user's favorite.
	RelationFavorite RelationKind = "favorite"
	// RelationCart marks a recipe as being in a user's shopping cart.
	RelationCart RelationKind = "cart"
	// RelationSubscription marks a user as following an author.
	RelationSubscription RelationKind = "subscription"
)

// Valid reports whether k is a known relation kind.
func (k RelationKind) Valid() bool {
	switch k {
	case RelationFavorite, RelationCart, RelationSubscription:
		return true
	}
	return false
}

// Relation is a join row: for favorite and cart the target is a recipe,
// for subscription the target is the followed author. The
// (kind, user, target) triple is unique.
type Relation struct {
	Kind      RelationKind `json:"kind"`
	UserID    string       `json:"user_id"`
	TargetID  string       `json:"target_id"`
	CreatedAt time.Time    `json:"created_at"`
}
