package domain

// Comment is a remark left on a product listing.
// The author's nickname is copied in at post time, so the comment keeps
// rendering even after the author account is gone.
type Comment struct {
	// UserID is the id of the author. It may reference a deleted user.
	UserID int `json:"userId"`

	// Nickname is the author's display name as it was when posting.
	Nickname string `json:"nickname"`

	// Text is the comment body.
	Text string `json:"text"`
}

// Product represents a published second-hand listing.
type Product struct {
	// ID is the unique identifier for the product (allocated, never reused
	// while the record exists).
	ID int `json:"productId"`

	// Name is the listing title.
	Name string `json:"name"`

	// Category is a free-form grouping label.
	Category string `json:"category"`

	// Description is the free-form listing body.
	Description string `json:"description"`

	// Price is the asking price. Untrusted input is coerced upstream with
	// ParsePrice; the value itself is stored as given.
	Price float64 `json:"price"`

	// Images holds forward-slash relative paths into the managed image
	// directory, in the order they were attached.
	Images []string `json:"images"`

	// SellerID is the id of the publishing user. It may reference a deleted
	// user; such listings render with an id placeholder instead of a name.
	SellerID int `json:"sellerId"`

	// Comments holds the remarks left on the listing, oldest first.
	Comments []Comment `json:"comments"`
}

// NewProduct creates a product with the given allocated id and no comments.
func NewProduct(id int, name, category, description string, price float64, images []string, sellerID int) *Product {
	if images == nil {
		images = []string{}
	}
	return &Product{
		ID:          id,
		Name:        name,
		Category:    category,
		Description: description,
		Price:       price,
		Images:      images,
		SellerID:    sellerID,
		Comments:    []Comment{},
	}
}

// Edit overwrites the five editable listing fields with the given values.
// Identity, the seller and the accumulated comments are never touched.
func (p *Product) Edit(name, category, description string, price float64, images []string) {
	if images == nil {
		images = []string{}
	}
	p.Name = name
	p.Category = category
	p.Description = description
	p.Price = price
	p.Images = images
}

// AddComment appends a comment to the listing.
func (p *Product) AddComment(c Comment) {
	p.Comments = append(p.Comments, c)
}
