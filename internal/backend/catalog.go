package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vitrine-next/internal/models"
)

// ListProducts 获取商品列表
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.doJSON(ctx, http.MethodGet, c.url("/produtos"), c.currentToken(), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ImageURL 商品图片地址
func (c *Client) ImageURL(productID int64) string {
	return fmt.Sprintf("%s/imagens/%d.jpg", c.baseURL, productID)
}

// ImagePlaceholder 图片加载失败时的占位图
func (c *Client) ImagePlaceholder() string {
	return c.placeholder
}

// ImageAvailable 探测商品图片是否可访问
func (c *Client) ImageAvailable(ctx context.Context, productID int64) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.ImageURL(productID), nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// ListCategories 获取分类列表
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.doJSON(ctx, http.MethodGet, c.url("/categorias"), c.currentToken(), nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory 创建分类
func (c *Client) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	var created models.Category
	body := models.Category{Name: name}
	if err := c.doJSON(ctx, http.MethodPost, c.url("/categorias"), c.currentToken(), body, &created); err != nil {
		return nil, err
	}
	if created.Name == "" {
		created.Name = name
	}
	return &created, nil
}

// DeleteCategory 删除分类
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, c.url(fmt.Sprintf("/categorias/%d", id)), c.currentToken(), nil, nil)
}

// ListCustomers 获取客户列表
func (c *Client) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := c.doJSON(ctx, http.MethodGet, c.url("/clientes"), c.currentToken(), nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// CreateCustomer 创建客户
func (c *Client) CreateCustomer(ctx context.Context, customer models.Customer) (*models.Customer, error) {
	customer.ID = 0
	var created models.Customer
	if err := c.doJSON(ctx, http.MethodPost, c.url("/clientes"), c.currentToken(), customer, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateCustomer 更新客户
func (c *Client) UpdateCustomer(ctx context.Context, id int64, customer models.Customer) (*models.Customer, error) {
	customer.ID = id
	var updated models.Customer
	if err := c.doJSON(ctx, http.MethodPut, c.url(fmt.Sprintf("/clientes/%d", id)), c.currentToken(), customer, &updated); err != nil {
		return nil, err
	}
	if updated.ID == 0 {
		updated = customer
	}
	return &updated, nil
}

// ListUsers 获取用户列表
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.doJSON(ctx, http.MethodGet, c.url("/usuarios"), c.currentToken(), nil, &users); err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

// CreateUser 创建用户
func (c *Client) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	user.ID = 0
	var created models.User
	if err := c.doJSON(ctx, http.MethodPost, c.url("/usuarios"), c.currentToken(), user, &created); err != nil {
		return nil, err
	}
	created.Password = ""
	return &created, nil
}

// UpdateUser 更新用户，密码为空时后端保持原密码
func (c *Client) UpdateUser(ctx context.Context, id int64, user models.User) (*models.User, error) {
	user.ID = id
	var updated models.User
	if err := c.doJSON(ctx, http.MethodPut, c.url(fmt.Sprintf("/usuarios/%d", id)), c.currentToken(), user, &updated); err != nil {
		return nil, err
	}
	if updated.ID == 0 {
		updated = user
	}
	updated.Password = ""
	return &updated, nil
}

// DeleteUser 删除用户
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, c.url(fmt.Sprintf("/usuarios/%d", id)), c.currentToken(), nil, nil)
}
