package service

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/vitrine-next/internal/backend"
	"github.com/vitrine-next/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalogClient struct {
	products  []models.Product
	err       error
	available map[int64]bool
	customers []models.Customer
	updated   map[int64]models.Customer
	created   []models.User
}

func (f *fakeCatalogClient) ListProducts(context.Context) ([]models.Product, error) {
	return f.products, f.err
}

func (f *fakeCatalogClient) ImageURL(id int64) string {
	return fmt.Sprintf("http://api/imagens/%d.jpg", id)
}

func (f *fakeCatalogClient) ImagePlaceholder() string { return "/placeholder.jpg" }

func (f *fakeCatalogClient) ImageAvailable(_ context.Context, id int64) bool {
	return f.available[id]
}

func (f *fakeCatalogClient) ListCategories(context.Context) ([]models.Category, error) {
	return []models.Category{{ID: 1, Name: "Bebidas"}}, f.err
}

func (f *fakeCatalogClient) CreateCategory(_ context.Context, name string) (*models.Category, error) {
	return &models.Category{ID: 2, Name: name}, f.err
}

func (f *fakeCatalogClient) DeleteCategory(context.Context, int64) error { return f.err }

func (f *fakeCatalogClient) ListCustomers(context.Context) ([]models.Customer, error) {
	return f.customers, f.err
}

func (f *fakeCatalogClient) CreateCustomer(_ context.Context, c models.Customer) (*models.Customer, error) {
	c.ID = 10
	return &c, f.err
}

func (f *fakeCatalogClient) UpdateCustomer(_ context.Context, id int64, c models.Customer) (*models.Customer, error) {
	if f.updated == nil {
		f.updated = map[int64]models.Customer{}
	}
	c.ID = id
	f.updated[id] = c
	return &c, f.err
}

func (f *fakeCatalogClient) ListUsers(context.Context) ([]models.User, error) { return nil, f.err }

func (f *fakeCatalogClient) CreateUser(_ context.Context, u models.User) (*models.User, error) {
	f.created = append(f.created, u)
	return &u, f.err
}

func (f *fakeCatalogClient) UpdateUser(_ context.Context, id int64, u models.User) (*models.User, error) {
	u.ID = id
	return &u, f.err
}

func (f *fakeCatalogClient) DeleteUser(context.Context, int64) error { return f.err }

func productsFixture(n int) []models.Product {
	out := make([]models.Product, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, fakeProduct(int64(i)))
	}
	return out
}

func TestCatalogPagination(t *testing.T) {
	client := &fakeCatalogClient{products: productsFixture(20)}
	svc := NewCatalogService(client, 8, 4)
	ctx := context.Background()

	page, err := svc.ListProducts(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, page.Items, 8)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 20, page.Total)
	assert.Equal(t, "http://api/imagens/1.jpg", page.Items[0].ImageURL)

	page, err = svc.ListProducts(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, page.Items, 4)
	assert.Equal(t, int64(17), page.Items[0].ID)

	page, err = svc.ListProducts(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Page)

	page, err = svc.ListProducts(ctx, -2)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
}

func TestCatalogPaginationEmpty(t *testing.T) {
	svc := NewCatalogService(&fakeCatalogClient{}, 0, 4)
	page, err := svc.ListProducts(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)
	assert.Equal(t, 8, page.PageSize)
}

func TestCatalogPaginationHugePage(t *testing.T) {
	ctx := context.Background()
	const huge = 1152921504606846977

	empty := NewCatalogService(&fakeCatalogClient{}, 8, 4)
	page, err := empty.ListProducts(ctx, huge)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)

	filled := NewCatalogService(&fakeCatalogClient{products: productsFixture(10)}, 8, 4)
	page, err = filled.ListProducts(ctx, huge)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Len(t, page.Items, 2)
}

func TestCatalogFeaturedTakesFirstN(t *testing.T) {
	svc := NewCatalogService(&fakeCatalogClient{products: productsFixture(6)}, 8, 4)
	featured, err := svc.Featured(context.Background())
	require.NoError(t, err)
	require.Len(t, featured, 4)
	assert.Equal(t, int64(4), featured[3].ID)
}

func TestCatalogFindProduct(t *testing.T) {
	svc := NewCatalogService(&fakeCatalogClient{products: productsFixture(3)}, 8, 4)
	product, err := svc.FindProduct(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), product.ID)

	_, err = svc.FindProduct(context.Background(), 50)
	assert.ErrorIs(t, err, ErrInvalidProduct)
	_, err = svc.FindProduct(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestCatalogResolveImageFallsBackToPlaceholder(t *testing.T) {
	svc := NewCatalogService(&fakeCatalogClient{available: map[int64]bool{1: true}}, 8, 4)
	assert.Equal(t, "http://api/imagens/1.jpg", svc.ResolveImage(context.Background(), 1))
	assert.Equal(t, "/placeholder.jpg", svc.ResolveImage(context.Background(), 2))
}

func TestCatalogErrorsKeepBackendMessage(t *testing.T) {
	client := &fakeCatalogClient{err: &backend.StatusError{StatusCode: http.StatusConflict, Message: "Categoria em uso"}}
	svc := NewCatalogService(client, 8, 4)

	err := svc.DeleteCategory(context.Background(), 3)
	require.ErrorIs(t, err, ErrCatalogUnavailable)
	assert.Equal(t, "Categoria em uso", BackendMessage(err))

	client.err = fmt.Errorf("%w: timeout", backend.ErrRequestFailed)
	_, err = svc.ListProducts(context.Background(), 1)
	require.ErrorIs(t, err, ErrCatalogUnavailable)
	assert.Empty(t, BackendMessage(err))
}

func TestCatalogValidation(t *testing.T) {
	client := &fakeCatalogClient{}
	svc := NewCatalogService(client, 8, 4)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, "  ")
	assert.ErrorIs(t, err, ErrCategoryNameRequired)
	_, err = svc.SaveCustomer(ctx, 0, models.Customer{})
	assert.ErrorIs(t, err, ErrCustomerNameRequired)
	_, err = svc.SaveUser(ctx, 0, models.User{Username: "bia"})
	assert.ErrorIs(t, err, ErrPasswordRequired)
	_, err = svc.SaveUser(ctx, 0, models.User{Password: "x"})
	assert.ErrorIs(t, err, ErrUsernameRequired)
	assert.ErrorIs(t, svc.DeleteUser(ctx, 0), ErrInvalidID)
	assert.Empty(t, client.created)

	updated, err := svc.SaveUser(ctx, 4, models.User{Username: "bia"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), updated.ID)
}

func TestCatalogSaveCustomerRoutesByID(t *testing.T) {
	client := &fakeCatalogClient{}
	svc := NewCatalogService(client, 8, 4)
	ctx := context.Background()

	created, err := svc.SaveCustomer(ctx, 0, models.Customer{Name: " Joana "})
	require.NoError(t, err)
	assert.Equal(t, int64(10), created.ID)
	assert.Equal(t, "Joana", created.Name)

	_, err = svc.SaveCustomer(ctx, 5, models.Customer{Name: "Joana", Email: " j@x.com "})
	require.NoError(t, err)
	assert.Equal(t, "j@x.com", client.updated[5].Email)
}
