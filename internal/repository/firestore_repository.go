package repository

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/Lixing-Zhang/pantry-tracker/backend/internal/models"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// inventoryDocument is the stored shape of an inventory document; the name is the document ID
type inventoryDocument struct {
	Quantity int `firestore:"quantity"`
}

// FirestoreInventoryRepository stores items in a Firestore collection keyed by item name
type FirestoreInventoryRepository struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreInventoryRepository creates a repository over the named collection
func NewFirestoreInventoryRepository(client *firestore.Client, collection string) *FirestoreInventoryRepository {
	return &FirestoreInventoryRepository{
		client:     client,
		collection: collection,
	}
}

func (r *FirestoreInventoryRepository) doc(name string) *firestore.DocumentRef {
	return r.client.Collection(r.collection).Doc(name)
}

// Get reads a single document
func (r *FirestoreInventoryRepository) Get(ctx context.Context, name string) (*models.InventoryItem, error) {
	snap, err := r.doc(name).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get %q: %w", name, err)
	}

	var doc inventoryDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode %q: %w", name, err)
	}

	return &models.InventoryItem{Name: snap.Ref.ID, Quantity: doc.Quantity}, nil
}

// Save overwrites the document with the item's quantity
func (r *FirestoreInventoryRepository) Save(ctx context.Context, item models.InventoryItem) error {
	if _, err := r.doc(item.Name).Set(ctx, inventoryDocument{Quantity: item.Quantity}); err != nil {
		return fmt.Errorf("failed to set %q: %w", item.Name, err)
	}
	return nil
}

// Delete removes the document; Firestore treats deleting a missing document as success
func (r *FirestoreInventoryRepository) Delete(ctx context.Context, name string) error {
	if _, err := r.doc(name).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete %q: %w", name, err)
	}
	return nil
}

// List reads every document in the collection
func (r *FirestoreInventoryRepository) List(ctx context.Context) ([]models.InventoryItem, error) {
	iter := r.client.Collection(r.collection).Documents(ctx)
	defer iter.Stop()

	items := make([]models.InventoryItem, 0)
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", r.collection, err)
		}

		var doc inventoryDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode %q: %w", snap.Ref.ID, err)
		}
		items = append(items, models.InventoryItem{Name: snap.Ref.ID, Quantity: doc.Quantity})
	}

	return items, nil
}
