package handlers

import "mime/multipart"

type mockStorage struct {
	UploadFruitImageFn   func(file multipart.File, filename, contentType string) (string, error)
	DeleteFileFn         func(objectPath string) error
	ImportFruitImageFn   func(imageURL, fruitID string) (string, error)
	DeleteFileCalls      []string
	ImportFruitImageCalls []struct {
		ImageURL string
		FruitID  string
	}
	UploadCallCount int
}

func newMockStorage() *mockStorage {
	return &mockStorage{
		DeleteFileCalls: []string{},
	}
}

func (m *mockStorage) UploadFruitImage(file multipart.File, filename, contentType string) (string, error) {
	m.UploadCallCount++
	if m.UploadFruitImageFn != nil {
		return m.UploadFruitImageFn(file, filename, contentType)
	}
	return "https://storage.googleapis.com/test-bucket/fruits/test_image.jpg", nil
}

func (m *mockStorage) DeleteFile(objectPath string) error {
	m.DeleteFileCalls = append(m.DeleteFileCalls, objectPath)
	if m.DeleteFileFn != nil {
		return m.DeleteFileFn(objectPath)
	}
	return nil
}

func (m *mockStorage) ImportFruitImage(imageURL, fruitID string) (string, error) {
	m.ImportFruitImageCalls = append(m.ImportFruitImageCalls, struct {
		ImageURL string
		FruitID  string
	}{imageURL, fruitID})
	if m.ImportFruitImageFn != nil {
		return m.ImportFruitImageFn(imageURL, fruitID)
	}
	return "https://storage.googleapis.com/test-bucket/fruits/" + fruitID + "_image.jpg", nil
}
