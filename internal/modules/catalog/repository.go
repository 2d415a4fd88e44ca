package catalog

import "context"

// Repository defines uploaded-file and product storage.
type Repository interface {
	// CreateFileWithProducts persists a file and all of its products in a
	// single transaction: either everything commits or nothing does.
	CreateFileWithProducts(ctx context.Context, f *UploadedFile, products []*Product) error
	// ListFiles returns summary projections only; products are never loaded.
	ListFiles(ctx context.Context) ([]*UploadedFile, error)
	// GetFile returns one file with its full product list.
	GetFile(ctx context.Context, id string) (*UploadedFile, error)
	// DeleteFile removes a file; its products go with it via cascade.
	// Returns the number of rows deleted.
	DeleteFile(ctx context.Context, id string) (int64, error)
	// DistinctLocations returns every location that has products.
	DistinctLocations(ctx context.Context) ([]string, error)
}
