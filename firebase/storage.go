package firebase

import "mime/multipart"

// StorageClient abstracts image storage operations for dependency injection and testing.
type StorageClient interface {
	UploadFruitImage(file multipart.File, filename, contentType string) (string, error)
	DeleteFile(objectPath string) error
	ImportFruitImage(imageURL, fruitID string) (string, error)
}

// FirebaseStorageClient is the real implementation that delegates to package-level functions.
type FirebaseStorageClient struct{}

func NewStorageClient() StorageClient {
	return &FirebaseStorageClient{}
}

func (f *FirebaseStorageClient) UploadFruitImage(file multipart.File, filename, contentType string) (string, error) {
	return UploadFruitImage(file, filename, contentType)
}

func (f *FirebaseStorageClient) DeleteFile(objectPath string) error {
	return DeleteFile(objectPath)
}

func (f *FirebaseStorageClient) ImportFruitImage(imageURL, fruitID string) (string, error) {
	return ImportFruitImage(imageURL, fruitID)
}
