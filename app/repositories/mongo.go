package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/pubqr/app/models"
)

const (
	productsCollection   = "products"
	categoriesCollection = "categories"
	ordersCollection     = "orders"
)

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

// MongoCatalog stores products and categories as documents.
type MongoCatalog struct {
	products   *mongo.Collection
	categories *mongo.Collection
}

// MongoOrders stores orders with their items embedded.
type MongoOrders struct {
	orders *mongo.Collection
}

// NewMongoStore wraps db. The client is disconnected by Store.Close.
func NewMongoStore(ctx context.Context, client *mongo.Client, db *mongo.Database) (*Store, error) {
	orders := db.Collection(ordersCollection)
	_, err := orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return nil, fmt.Errorf("repositories: orders index: %w", err)
	}

	return &Store{
		Driver: "mongo",
		Catalog: &MongoCatalog{
			products:   db.Collection(productsCollection),
			categories: db.Collection(categoriesCollection),
		},
		Orders: &MongoOrders{orders: orders},
		ping: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
		close: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	}, nil
}

func (r *MongoCatalog) ListProducts(ctx context.Context) ([]models.Product, error) {
	cur, err := r.products.Find(ctx, bson.D{}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("repositories: find products: %w", err)
	}
	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("repositories: decode products: %w", err)
	}
	return products, nil
}

func (r *MongoCatalog) FindProduct(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var p models.Product
	err := r.products.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return p, notFound(models.ErrProductNotFound, id)
	}
	return p, err
}

func (r *MongoCatalog) CreateProduct(ctx context.Context, p *models.Product) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if _, err := r.products.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("repositories: insert product: %w", err)
	}
	return nil
}

func (r *MongoCatalog) SetProductImage(ctx context.Context, id primitive.ObjectID, url string) (models.Product, error) {
	var p models.Product
	err := r.products.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"img": url}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return p, notFound(models.ErrProductNotFound, id)
	}
	return p, err
}

func (r *MongoCatalog) ListCategories(ctx context.Context) ([]models.Category, error) {
	cur, err := r.categories.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("repositories: find categories: %w", err)
	}
	categories := []models.Category{}
	if err := cur.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("repositories: decode categories: %w", err)
	}
	return categories, nil
}

func (r *MongoCatalog) FindCategory(ctx context.Context, id primitive.ObjectID) (models.Category, error) {
	var c models.Category
	err := r.categories.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return c, notFound(models.ErrCategoryNotFound, id)
	}
	return c, err
}

func (r *MongoCatalog) CreateCategory(ctx context.Context, c *models.Category) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if _, err := r.categories.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("repositories: insert category: %w", err)
	}
	return nil
}

func (r *MongoOrders) Create(ctx context.Context, o *models.Order) error {
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	if _, err := r.orders.InsertOne(ctx, o); err != nil {
		return fmt.Errorf("repositories: insert order: %w", err)
	}
	return nil
}

func (r *MongoOrders) List(ctx context.Context) ([]models.Order, error) {
	cur, err := r.orders.Find(ctx, bson.D{}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("repositories: find orders: %w", err)
	}
	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("repositories: decode orders: %w", err)
	}
	return orders, nil
}

func (r *MongoOrders) Find(ctx context.Context, id primitive.ObjectID) (models.Order, error) {
	var o models.Order
	err := r.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return o, notFound(models.ErrOrderNotFound, id)
	}
	return o, err
}

func (r *MongoOrders) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to models.Status) (models.Order, error) {
	filter := bson.M{"_id": id}
	if from != "" {
		filter["status"] = from
	}

	var o models.Order
	err := r.orders.FindOneAndUpdate(ctx,
		filter,
		bson.M{"$set": bson.M{"status": to}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&o)
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return o, err
	}
	if from == "" {
		return o, notFound(models.ErrOrderNotFound, id)
	}
	// the guard missed: tell a vanished order from a moved one
	if _, findErr := r.Find(ctx, id); findErr != nil {
		return models.Order{}, findErr
	}
	return models.Order{}, models.ErrInvalidTransition
}
