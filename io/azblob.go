package io

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blockblob"
	"github.com/hangxie/parquet-go/v2/source"
	pqazblob "github.com/hangxie/parquet-go/v2/source/azblob"
)

const azureAccessKeyEnv = "AZURE_STORAGE_ACCESS_KEY"

type azureBlobBackend struct {
	location   Location
	blobURL    string
	credential *azblob.SharedKeyCredential
}

func newAzureBlobBackend(_ context.Context, location Location, option ReadOption) (backend, error) {
	blobURL, err := azureBlobURL(location, option.ObjectVersion)
	if err != nil {
		return nil, err
	}
	b := azureBlobBackend{location: location, blobURL: blobURL}

	accessKey := os.Getenv(azureAccessKeyEnv)
	if option.Anonymous || accessKey == "" {
		return b, nil
	}
	account, _, _ := strings.Cut(location.Bucket(), ".")
	b.credential, err = azblob.NewSharedKeyCredential(account, accessKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}
	return b, nil
}

// azureBlobURL turns wasbs://container@account.blob.core.windows.net/blob
// into the HTTPS URL of the blob.
func azureBlobURL(location Location, versionID string) (string, error) {
	container := location.url.User.Username()
	if location.Bucket() == "" || container == "" || location.Key() == "" || strings.HasSuffix(location.Key(), "/") {
		return "", fmt.Errorf("azure blob URI format: wasbs://container@storageaccount.blob.core.windows.net/path/to/blob")
	}

	blobURL := url.URL{
		Scheme: "https",
		Host:   location.Bucket(),
		Path:   "/" + container + "/" + location.Key(),
	}
	if versionID != "" {
		blobURL.RawQuery = url.Values{"versionid": []string{versionID}}.Encode()
	}
	return blobURL.String(), nil
}

func (b azureBlobBackend) client() (*blockblob.Client, error) {
	if b.credential == nil {
		return blockblob.NewClientWithNoCredential(b.blobURL, nil)
	}
	return blockblob.NewClientWithSharedKeyCredential(b.blobURL, b.credential, nil)
}

func (b azureBlobBackend) Stat(ctx context.Context) (int64, error) {
	client, err := b.client()
	if err != nil {
		return 0, fmt.Errorf("failed to create Azure client: %w", err)
	}
	props, err := client.GetProperties(ctx, nil)
	if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound, bloberror.ResourceNotFound) {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, b.location.URI)
	}
	if err != nil {
		return 0, fmt.Errorf("unable to get attributes of [%s]: %w", b.location.URI, err)
	}
	if props.ContentLength == nil {
		return 0, fmt.Errorf("unable to get size of [%s]", b.location.URI)
	}
	return *props.ContentLength, nil
}

func (b azureBlobBackend) Open(ctx context.Context) (source.ParquetFileReader, error) {
	return pqazblob.NewAzBlobFileReader(ctx, b.blobURL, b.credential, blockblob.ClientOptions{})
}
