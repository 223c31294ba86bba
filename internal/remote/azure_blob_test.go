package remote

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blockblob"
	"github.com/google/go-cmp/cmp"
	"github.com/mazrean/json2jsonl/log"
)

func uploadBlob(t *testing.T, blobURL string, data []byte) {
	t.Helper()

	cred, err := azblob.NewSharedKeyCredential(testAccount, testKey)
	if err != nil {
		t.Fatalf("Failed to create shared key credential: %v", err)
	}
	client, err := blockblob.NewClientWithSharedKeyCredential(blobURL, cred, &blockblob.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			InsecureAllowCredentialWithHTTP: true,
		},
	})
	if err != nil {
		t.Fatalf("Failed to create blob client: %v", err)
	}

	if _, err := client.UploadBuffer(t.Context(), data, nil); err != nil {
		t.Fatalf("Failed to upload blob: %v", err)
	}
}

func TestAzureBlob_Open(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		blob        string
		data        []byte
		upload      bool
		wantErr     bool
		wantMissing bool
	}{
		{
			name:   "array document",
			blob:   "tests.json",
			data:   []byte(`[{"city":"Ponce","collectedDate":"02/29/2020"}]`),
			upload: true,
		},
		{
			name:        "missing blob",
			blob:        "missing.json",
			wantErr:     true,
			wantMissing: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			blobURL := fmt.Sprintf("%s/%s/%s", azureEndpoint, testContainer, tt.blob)
			if tt.upload {
				uploadBlob(t, blobURL, tt.data)
			}

			azureBlob, err := NewAzureBlob(log.DefaultLogger, blobURL, testAccount, testKey)
			if err != nil {
				t.Fatalf("Failed to create Azure blob client: %v", err)
			}

			obj, err := azureBlob.Open(t.Context())
			if tt.wantErr {
				if err == nil {
					obj.Body.Close()
					t.Fatal("expected error but got nil")
				}
				if tt.wantMissing && !errors.Is(err, ErrObjectNotFound) {
					t.Errorf("expected ErrObjectNotFound, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer obj.Body.Close()

			if obj.Size != int64(len(tt.data)) {
				t.Errorf("size = %d, want %d", obj.Size, len(tt.data))
			}

			got, err := io.ReadAll(obj.Body)
			if err != nil {
				t.Fatalf("Failed to read blob: %v", err)
			}
			if diff := cmp.Diff(tt.data, got); diff != "" {
				t.Errorf("blob mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
