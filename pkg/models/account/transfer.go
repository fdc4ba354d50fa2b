package account

import (
	"github.com/quillmail/ewsbox/pkg/base"
	"github.com/quillmail/ewsbox/pkg/models/folder"
)

// Export fetches the opaque exported payload for each requested item. The
// result preserves the order of ids.
func (a *Account) Export(ids []base.ItemID) ([]base.ExportedItem, error) {
	if len(ids) == 0 {
		return []base.ExportedItem{}, nil
	}
	return a.svc.ExportItems(a.ctx, ids)
}

// Upload sends previously exported payloads back to the server and returns
// the IDs of the created items.
func (a *Account) Upload(uploads []base.ItemUpload) ([]base.ItemID, error) {
	if len(uploads) == 0 {
		return []base.ItemID{}, nil
	}
	return a.svc.UploadItems(a.ctx, uploads)
}

// UploadTo broadcasts a single target folder across all payloads.
func (a *Account) UploadTo(f *folder.Folder, payloads [][]byte) ([]base.ItemID, error) {
	uploads := make([]base.ItemUpload, len(payloads))
	for i, data := range payloads {
		uploads[i] = base.ItemUpload{FolderID: f.ID, Data: data}
	}
	return a.Upload(uploads)
}
