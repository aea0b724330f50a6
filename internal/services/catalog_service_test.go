package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"bazaar/internal/domain"
	"bazaar/internal/repos"
	"bazaar/internal/services"
)

func newCatalog(t *testing.T) (*services.CatalogService, *env) {
	t.Helper()
	e := newEnv(t)
	return services.NewCatalogService(e.products, e.reviews), e
}

func TestCatalogList_SearchAndSort(t *testing.T) {
	cat, _ := newCatalog(t)

	all, err := cat.List("", repos.SortNewest)
	require.NoError(t, err)
	require.Len(t, all, 2)

	hits, err := cat.List("kett", repos.SortNewest)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, "Kettle", hits[0].Name)

	asc, err := cat.List("", repos.SortPriceAsc)
	require.NoError(t, err)
	require.Equal(t, "Mug", asc[0].Name)

	desc, err := cat.List("", repos.SortPriceDesc)
	require.NoError(t, err)
	require.Equal(t, "Kettle", desc[0].Name)
}

func TestCatalogGet_SplitsDelimitedFields(t *testing.T) {
	cat, e := newCatalog(t)

	_, err := e.db.Exec(`UPDATE products
	  SET features = '2L' || char(10) || 'Whistles',
	      images   = '/media/a1.jpg' || char(10) || '/media/a2.jpg'
	  WHERE id = 'p-a'`)
	require.NoError(t, err)

	d, err := cat.Get("p-a")
	require.NoError(t, err)
	require.Equal(t, []string{"2L", "Whistles"}, d.Features)
	require.Equal(t, []string{"/media/a1.jpg", "/media/a2.jpg"}, d.Images)

	_, err = cat.Get("p-nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogAddProduct(t *testing.T) {
	cat, _ := newCatalog(t)

	id, err := cat.AddProduct("u-seller", services.NewListing{
		Name:        "Teapot",
		Price:       18.5,
		Description: "Glazed teapot",
		Features:    "600ml\nCeramic",
		ImagePaths:  []string{"/media/products/tp1.jpg", "/media/products/tp2.jpg"},
	})
	require.NoError(t, err)

	d, err := cat.Get(id)
	require.NoError(t, err)
	require.Equal(t, "Teapot", d.Product.Name)
	require.Equal(t, "u-seller", d.Product.SellerID)
	require.Len(t, d.Images, 2)

	mine, err := cat.ListBySeller("u-seller")
	require.NoError(t, err)
	require.Len(t, mine, 3)
}

func TestCatalogAddProduct_PlaceholderImage(t *testing.T) {
	cat, _ := newCatalog(t)

	id, err := cat.AddProduct("u-seller", services.NewListing{
		Name: "Plain", Price: 1, Description: "d", Features: "f",
	})
	require.NoError(t, err)

	d, err := cat.Get(id)
	require.NoError(t, err)
	require.Equal(t, []string{"/static/images/placeholder.jpg"}, d.Images)
}
