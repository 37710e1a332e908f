package contracts

import "context"

// MediaHost is the external image host: bytes in, public URL out. Uploads
// are all-or-nothing from the gateway's perspective; Delete is best-effort
// and its failures never fail the surrounding mutation.
type MediaHost interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
	Delete(ctx context.Context, url string) error
}

// ImageUpload is one image file received from the client, in the order it
// appeared in the request.
type ImageUpload struct {
	Filename string
	Data     []byte
}
