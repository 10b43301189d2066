package archive

import (
	"bytes"
	"context"

	"github.com/hupe1980/pcstgo/blobstore"
)

// Publish saves the archive into the store under the given name.
func (a *Archive) Publish(ctx context.Context, store blobstore.Store, name string, optFns ...func(*SaveOptions)) error {
	var buf bytes.Buffer
	if err := a.Save(&buf, optFns...); err != nil {
		return err
	}
	return store.Put(ctx, name, &buf)
}

// Fetch loads a published archive from the store.
func Fetch(ctx context.Context, store blobstore.Store, name string) (*Archive, error) {
	rc, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return Load(rc)
}
