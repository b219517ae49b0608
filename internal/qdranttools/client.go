package qdranttools

import (
	"context"

	"github.com/qdrant/go-client/qdrant"
)

// Client is the slice of the Qdrant client surface these tools consume.
// *qdrant.Client satisfies it; tests substitute a mock.
type Client interface {
	CreateCollection(ctx context.Context, req *qdrant.CreateCollection) error
	Upsert(ctx context.Context, req *qdrant.UpsertPoints) (*qdrant.UpdateResult, error)
	Query(ctx context.Context, req *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error)
	GetCollectionInfo(ctx context.Context, collectionName string) (*qdrant.CollectionInfo, error)
	Delete(ctx context.Context, req *qdrant.DeletePoints) (*qdrant.UpdateResult, error)
}
