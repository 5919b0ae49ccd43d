package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	models "dms/internal/domain/models/docsystem"
	docsysRepo "dms/internal/domain/repositories/docsystem"
)

// Connect opens a client against uri and pings the primary
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client, nil
}

// AuditRepository stores document audits in a Mongo collection
type AuditRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

// NewAuditRepository creates an audit repository on database.collection
func NewAuditRepository(client *mongo.Client, database, collection string, logger *slog.Logger) docsysRepo.AuditRepository {
	return &AuditRepository{
		collection: client.Database(database).Collection(collection),
		logger:     logger,
	}
}

// Create appends an audit record and fills in its ObjectID
func (r *AuditRepository) Create(ctx context.Context, audit *models.DocumentAudit) error {
	if audit.Date.IsZero() {
		audit.Date = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, audit)
	if err != nil {
		return fmt.Errorf("insert audit: %w", err)
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		audit.ID = id
	}
	return nil
}

// ListByDocument returns a document's audits, newest first
func (r *AuditRepository) ListByDocument(ctx context.Context, documentID int) ([]models.DocumentAudit, error) {
	opts := options.Find().SetSort(bson.D{{Key: "Date", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"DocumentId": documentID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find audits: %w", err)
	}
	defer cursor.Close(ctx)

	audits := []models.DocumentAudit{}
	if err := cursor.All(ctx, &audits); err != nil {
		return nil, fmt.Errorf("decode audits: %w", err)
	}

	return audits, nil
}
