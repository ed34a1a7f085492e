// Package domain contains the core business entities for the second-hand
// marketplace. These are pure Go structs with no external dependencies,
// matching the on-disk document format field for field.
package domain

// User represents a registered account.
// Users publish products and keep a list of favorite product ids.
type User struct {
	// ID is the unique identifier for the user (allocated, never reused
	// while the record exists).
	ID int `json:"userId"`

	// Email is the login key. Treated as unique by registration.
	Email string `json:"email"`

	// Phone is an optional contact number.
	Phone string `json:"phone"`

	// Password is the login password, persisted as-is in the user document.
	Password string `json:"password"`

	// Nickname is the display name shown on listings and comments.
	Nickname string `json:"nickname"`

	// Avatar is a forward-slash relative path into the managed image
	// directory, or empty when the user has not set one.
	Avatar string `json:"avatar"`

	// IsAdmin marks the account as an administrator. Admin accounts can
	// never be deleted.
	IsAdmin bool `json:"is_admin"`

	// Favorites holds the ids of favorited products in insertion order.
	Favorites []int `json:"favorites"`
}

// NewUser creates a user with the given allocated id and no favorites.
func NewUser(id int, email, phone, password, nickname string) *User {
	return &User{
		ID:        id,
		Email:     email,
		Phone:     phone,
		Password:  password,
		Nickname:  nickname,
		Avatar:    "",
		IsAdmin:   false,
		Favorites: []int{},
	}
}

// UpdateProfile overwrites the four editable profile fields with the given
// values. Identity, password, the admin flag and favorites are never touched.
func (u *User) UpdateProfile(email, phone, nickname, avatar string) {
	u.Email = email
	u.Phone = phone
	u.Nickname = nickname
	u.Avatar = avatar
}

// IsFavorite reports whether the product id is in the user's favorites.
func (u *User) IsFavorite(productID int) bool {
	for _, id := range u.Favorites {
		if id == productID {
			return true
		}
	}
	return false
}

// ToggleFavorite adds the product id to the favorites if absent and removes
// it if present. It returns true when the product is a favorite afterwards.
func (u *User) ToggleFavorite(productID int) bool {
	for i, id := range u.Favorites {
		if id == productID {
			u.Favorites = append(u.Favorites[:i], u.Favorites[i+1:]...)
			return false
		}
	}
	u.Favorites = append(u.Favorites, productID)
	return true
}

// DisplayName returns the nickname, falling back to the email when the
// nickname is empty.
func (u *User) DisplayName() string {
	if u.Nickname != "" {
		return u.Nickname
	}
	return u.Email
}
