package jsonfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/XiPingo/secondhand/internal/domain"
	"github.com/XiPingo/secondhand/internal/repository"
)

// The record types mirror the document schema with pointers on the required
// fields, so a missing key is distinguishable from a zero value. Optional
// fields carry the entity defaults: empty avatar, non-admin, no favorites,
// no comments.

type userRecord struct {
	ID        *int    `json:"userId"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Password  *string `json:"password"`
	Nickname  *string `json:"nickname"`
	Avatar    *string `json:"avatar"`
	IsAdmin   *bool   `json:"is_admin"`
	Favorites *[]int  `json:"favorites"`
}

type productRecord struct {
	ID          *int              `json:"productId"`
	Name        *string           `json:"name"`
	Category    *string           `json:"category"`
	Description *string           `json:"description"`
	Price       *float64          `json:"price"`
	Images      *[]string         `json:"images"`
	SellerID    *int              `json:"sellerId"`
	Comments    *[]domain.Comment `json:"comments"`
}

func decodeUsers(path string, data []byte) ([]*domain.User, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, corrupt(path, -1, err.Error())
	}

	users := make([]*domain.User, 0, len(raw))
	for i, r := range raw {
		var rec userRecord
		if err := decodeStrict(r, &rec); err != nil {
			return nil, corrupt(path, i, err.Error())
		}
		required := []fieldCheck{
			{"userId", rec.ID != nil},
			{"email", rec.Email != nil},
			{"phone", rec.Phone != nil},
			{"password", rec.Password != nil},
			{"nickname", rec.Nickname != nil},
		}
		if field := firstMissing(required); field != "" {
			return nil, corrupt(path, i, fmt.Sprintf("missing field %q", field))
		}

		u := &domain.User{
			ID:        *rec.ID,
			Email:     *rec.Email,
			Phone:     *rec.Phone,
			Password:  *rec.Password,
			Nickname:  *rec.Nickname,
			Favorites: []int{},
		}
		if rec.Avatar != nil {
			u.Avatar = *rec.Avatar
		}
		if rec.IsAdmin != nil {
			u.IsAdmin = *rec.IsAdmin
		}
		if rec.Favorites != nil && *rec.Favorites != nil {
			u.Favorites = *rec.Favorites
		}
		users = append(users, u)
	}
	return users, nil
}

func decodeProducts(path string, data []byte) ([]*domain.Product, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, corrupt(path, -1, err.Error())
	}

	products := make([]*domain.Product, 0, len(raw))
	for i, r := range raw {
		var rec productRecord
		if err := decodeStrict(r, &rec); err != nil {
			return nil, corrupt(path, i, err.Error())
		}
		required := []fieldCheck{
			{"productId", rec.ID != nil},
			{"name", rec.Name != nil},
			{"category", rec.Category != nil},
			{"description", rec.Description != nil},
			{"price", rec.Price != nil},
			{"images", rec.Images != nil},
			{"sellerId", rec.SellerID != nil},
		}
		if field := firstMissing(required); field != "" {
			return nil, corrupt(path, i, fmt.Sprintf("missing field %q", field))
		}

		p := &domain.Product{
			ID:          *rec.ID,
			Name:        *rec.Name,
			Category:    *rec.Category,
			Description: *rec.Description,
			Price:       *rec.Price,
			Images:      []string{},
			SellerID:    *rec.SellerID,
			Comments:    []domain.Comment{},
		}
		if *rec.Images != nil {
			p.Images = *rec.Images
		}
		if rec.Comments != nil && *rec.Comments != nil {
			p.Comments = *rec.Comments
		}
		products = append(products, p)
	}
	return products, nil
}

// decodeStrict decodes a single record, rejecting keys the schema does not
// know about.
func decodeStrict(raw json.RawMessage, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

type fieldCheck struct {
	name    string
	present bool
}

// firstMissing returns the name of the first missing required field, or "".
func firstMissing(required []fieldCheck) string {
	for _, f := range required {
		if !f.present {
			return f.name
		}
	}
	return ""
}

func corrupt(path string, record int, detail string) error {
	if record < 0 {
		return fmt.Errorf("%w: %s: %s", repository.ErrCorruptDocument, filepath.Base(path), detail)
	}
	return fmt.Errorf("%w: %s: record %d: %s", repository.ErrCorruptDocument, filepath.Base(path), record, detail)
}
