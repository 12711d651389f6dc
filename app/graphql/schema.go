// Package graphql exposes the catalog and orders as a read-only GraphQL
// schema.
package graphql

import (
	"time"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/pubqr/app/models"
	"github.com/shashiranjanraj/pubqr/app/services"
	gql "github.com/shashiranjanraj/pubqr/pkg/graphql"
)

var categoryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Category",
	Fields: graphql.Fields{
		"id": &graphql.Field{
			Type: graphql.NewNonNull(graphql.ID),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(models.Category).ID.Hex(), nil
			},
		},
		"name": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(models.Category).Name, nil
			},
		},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":         productField(graphql.NewNonNull(graphql.ID), func(p models.Product) interface{} { return p.ID.Hex() }),
		"name":       productField(graphql.String, func(p models.Product) interface{} { return p.Name }),
		"price":      productField(graphql.Int, func(p models.Product) interface{} { return p.Price }),
		"categoryId": productField(graphql.String, func(p models.Product) interface{} { return p.CategoryID }),
		"img":        productField(graphql.String, func(p models.Product) interface{} { return p.ImageURL }),
		"createdAt":  productField(graphql.String, func(p models.Product) interface{} { return p.CreatedAt.Format(time.RFC3339) }),
	},
})

func productField(t graphql.Output, get func(models.Product) interface{}) *graphql.Field {
	return &graphql.Field{
		Type: t,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return get(p.Source.(models.Product)), nil
		},
	}
}

var cartItemType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CartItem",
	Fields: graphql.Fields{
		"productId": itemField(graphql.String, func(i models.CartItem) interface{} { return i.ProductID }),
		"name":      itemField(graphql.String, func(i models.CartItem) interface{} { return i.Name }),
		"price":     itemField(graphql.Int, func(i models.CartItem) interface{} { return i.Price }),
		"qty":       itemField(graphql.Int, func(i models.CartItem) interface{} { return i.Qty }),
	},
})

func itemField(t graphql.Output, get func(models.CartItem) interface{}) *graphql.Field {
	return &graphql.Field{
		Type: t,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return get(p.Source.(models.CartItem)), nil
		},
	}
}

var orderType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Order",
	Fields: graphql.Fields{
		"id":        orderField(graphql.NewNonNull(graphql.ID), func(o models.Order) interface{} { return o.ID.Hex() }),
		"tableCode": orderField(graphql.String, func(o models.Order) interface{} { return o.TableCode }),
		"items":     orderField(graphql.NewList(cartItemType), func(o models.Order) interface{} { return o.Items }),
		"total":     orderField(graphql.Int, func(o models.Order) interface{} { return o.Total }),
		"status":    orderField(graphql.String, func(o models.Order) interface{} { return string(o.Status) }),
		"createdAt": orderField(graphql.String, func(o models.Order) interface{} { return o.CreatedAt.Format(time.RFC3339) }),
	},
})

func orderField(t graphql.Output, get func(models.Order) interface{}) *graphql.Field {
	return &graphql.Field{
		Type: t,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return get(p.Source.(models.Order)), nil
		},
	}
}

// NewSchema builds the query root over the services.
func NewSchema(orders *services.OrderService, catalog *services.CatalogService) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"category": &graphql.ArgumentConfig{Type: graphql.String},
					"q":        &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					category, _ := p.Args["category"].(string)
					q, _ := p.Args["q"].(string)
					return catalog.Products(p.Context, category, q)
				},
			},
			"categories": &graphql.Field{
				Type: graphql.NewList(categoryType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return catalog.Categories(p.Context)
				},
			},
			"orders": &graphql.Field{
				Type: graphql.NewList(orderType),
				Args: graphql.FieldConfigArgument{
					"status": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					status, _ := p.Args["status"].(string)
					return orders.ListByStatus(p.Context, status)
				},
			},
			"order": &graphql.Field{
				Type: orderType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					return orders.Get(p.Context, id)
				},
			},
		},
	})
	return gql.NewSchema(query)
}
