package backend

import (
	"context"
	"net/url"
)

// CreateFolder registers an enrollee and creates their image folder on the
// service. The returned folder token must tag every subsequent frame upload.
func (c *Client) CreateFolder(ctx context.Context, name, enrollID string) (*FolderResponse, error) {
	form := url.Values{}
	form.Set("name", name)
	form.Set("enroll_id", enrollID)
	return doFormJSON[FolderResponse](ctx, c, "POST", "create_folder", form)
}

// UploadFrame uploads one captured JPEG frame into the enrollee's folder.
func (c *Client) UploadFrame(ctx context.Context, folder, fileName string, data []byte) (*StatusResponse, error) {
	fields := map[string]string{"folder": folder}
	return doMultipartJSON[StatusResponse](ctx, c, "capture_multiple", fields, "file", fileName, data)
}

// Train triggers model training over all enrolled folders. This is a single
// blocking call with no intermediate progress; it can take minutes.
func (c *Client) Train(ctx context.Context) (*StatusResponse, error) {
	return doGetJSON[StatusResponse](ctx, c, "train")
}
