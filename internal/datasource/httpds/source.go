package httpds

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Remote is an HTTP data source. Each Open issues a fresh GET, so the parser
// can re-read the file from the start when it restarts a failed strict pass.
type Remote struct {
	client *Client
	url    string
}

// NewRemote returns a data source that downloads url through client. A nil
// client gets the default configuration.
func NewRemote(client *Client, url string) *Remote {
	if client == nil {
		client = NewClient(Config{})
	}
	return &Remote{client: client, url: url}
}

// Open downloads the file and returns the response body. Any status other
// than 200 is an error; SPED files are static documents, so partial content
// would mean a corrupt parse.
func (r *Remote) Open(ctx context.Context) (io.ReadCloser, error) {
	resp, err := r.client.Get(ctx, r.url)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", r.url, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("get %s: unexpected status %d", r.url, resp.StatusCode)
	}
	return resp.Body, nil
}
