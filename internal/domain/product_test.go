package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProduct_Edit(t *testing.T) {
	p := NewProduct(50, "旧名", "电子", "还能用", 10, []string{"images/old.png"}, 3)
	p.AddComment(Comment{UserID: 2, Nickname: "小李", Text: "还在吗"})

	p.Edit("新名", "图书", "全新", 20.5, []string{"images/new.png", "images/new_1.png"})

	require.Equal(t, "新名", p.Name)
	require.Equal(t, "图书", p.Category)
	require.Equal(t, "全新", p.Description)
	require.Equal(t, 20.5, p.Price)
	require.Equal(t, []string{"images/new.png", "images/new_1.png"}, p.Images)

	// Identity, seller and comments are untouched.
	require.Equal(t, 50, p.ID)
	require.Equal(t, 3, p.SellerID)
	require.Len(t, p.Comments, 1)
	require.Equal(t, "小李", p.Comments[0].Nickname)
}

func TestProduct_Edit_NilImages(t *testing.T) {
	p := NewProduct(1, "n", "c", "d", 1, []string{"images/a.png"}, 1)

	p.Edit("n", "c", "d", 1, nil)

	require.NotNil(t, p.Images)
	require.Empty(t, p.Images)
}

func TestNewProduct_Defaults(t *testing.T) {
	p := NewProduct(1, "n", "c", "d", 0, nil, 2)

	require.NotNil(t, p.Images)
	require.NotNil(t, p.Comments)
	require.Empty(t, p.Comments)
}

func TestProduct_AddComment(t *testing.T) {
	p := NewProduct(1, "n", "c", "d", 0, nil, 2)

	p.AddComment(Comment{UserID: 5, Nickname: "买家", Text: "可以便宜点吗"})
	p.AddComment(Comment{UserID: 6, Nickname: "路人", Text: "帮顶"})

	require.Len(t, p.Comments, 2)
	require.Equal(t, "可以便宜点吗", p.Comments[0].Text)
	require.Equal(t, 6, p.Comments[1].UserID)
}
