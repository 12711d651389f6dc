// Package views holds the client-side state of the two screens: the
// customer menu reached from a table's QR code and the staff order board.
// Both talk to the API through Client.
package views

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/shashiranjanraj/pubqr/app/models"
	"github.com/shashiranjanraj/pubqr/pkg/http"
)

// Client calls the pubqr HTTP API. Token is sent on every request once set.
// A zero Timeout keeps the http package default.
type Client struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

func NewClient(baseURL string) *Client {
	return &Client{BaseURL: strings.TrimRight(baseURL, "/")}
}

func (c *Client) url(path string) string { return c.BaseURL + path }

func (c *Client) call(ctx context.Context, req *http.Request, dest interface{}) error {
	if c.Timeout > 0 {
		req.Timeout(c.Timeout)
	}
	resp, err := req.Bearer(c.Token).WithContext(ctx).Send()
	if err != nil {
		return err
	}
	if err := resp.Throw(); err != nil {
		return err
	}
	if dest == nil {
		return nil
	}
	return resp.JSON(dest)
}

// Products fetches the menu, optionally filtered server-side.
func (c *Client) Products(ctx context.Context, category, query string) ([]models.Product, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if query != "" {
		q.Set("q", query)
	}
	path := "/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []models.Product
	err := c.call(ctx, http.Get(c.url(path)), &out)
	return out, err
}

func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	err := c.call(ctx, http.Get(c.url("/categories")), &out)
	return out, err
}

func (c *Client) PlaceOrder(ctx context.Context, tableCode string, items []models.CartItem) (models.Order, error) {
	var out models.Order
	body := map[string]interface{}{"tableCode": tableCode, "items": items}
	err := c.call(ctx, http.Post(c.url("/orders")).Body(body), &out)
	return out, err
}

func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	err := c.call(ctx, http.Get(c.url("/orders")), &out)
	return out, err
}

func (c *Client) Order(ctx context.Context, id string) (models.Order, error) {
	var out models.Order
	err := c.call(ctx, http.Get(c.url("/orders/"+url.PathEscape(id))), &out)
	return out, err
}

func (c *Client) UpdateStatus(ctx context.Context, id string, status models.Status) (models.Order, error) {
	var out models.Order
	body := map[string]string{"status": string(status)}
	err := c.call(ctx, http.Patch(c.url("/orders/"+url.PathEscape(id))).Body(body), &out)
	return out, err
}

// Login exchanges the staff PIN for a token and keeps it on the client.
func (c *Client) Login(ctx context.Context, pin string) error {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.call(ctx, http.Post(c.url("/auth")).Body(map[string]string{"pin": pin}), &out); err != nil {
		return err
	}
	c.Token = out.Token
	return nil
}
