// Package ewsclient implements the base.Service collaborator over the SOAP
// folder/item protocol. Retry and timeout policy live here and in the
// injected HTTP client, never in the account core.
package ewsclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/quillmail/ewsbox/pkg/base"
	"github.com/quillmail/ewsbox/pkg/models/folder"
)

const soapEnvelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"

// Client encapsulates an authenticated SOAP connection for folder and item
// operations.
type Client struct {
	Endpoint           string
	Username           string
	Password           string
	InsecureSkipVerify bool

	// HTTPClient may be injected for testing; Connect builds one otherwise.
	HTTPClient *http.Client
}

// Connect validates the connection parameters and prepares the HTTP client.
func (c *Client) Connect() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return errors.New("service endpoint is required")
	}
	if strings.TrimSpace(c.Username) == "" || strings.TrimSpace(c.Password) == "" {
		return errors.New("service credentials are required")
	}

	if c.HTTPClient == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if c.InsecureSkipVerify {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		}
		c.HTTPClient = &http.Client{Transport: transport}
	}
	return nil
}

type envelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		Inner []byte `xml:",innerxml"`
	} `xml:"Body"`
}

// call posts one SOAP operation and decodes the first response message into
// out.
func (c *Client) call(ctx context.Context, operation string, reqBody any, out any) error {
	if c.HTTPClient == nil {
		return errors.New("client is not connected")
	}

	payload, err := xml.Marshal(reqBody)
	if err != nil {
		return pkgerrors.Wrapf(err, "encoding %s request", operation)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	fmt.Fprintf(&buf, `<soap:Envelope xmlns:soap=%q><soap:Body>`, soapEnvelopeNS)
	buf.Write(payload)
	buf.WriteString(`</soap:Body></soap:Envelope>`)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", operation)
	req.SetBasicAuth(c.Username, c.Password)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return pkgerrors.Wrapf(base.ErrAccessDenied, "%s returned HTTP %d", operation, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return pkgerrors.Errorf("%s returned HTTP %d: %s", operation, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var env envelope
	if err := xml.NewDecoder(resp.Body).Decode(&env); err != nil {
		return pkgerrors.Wrapf(err, "decoding %s response", operation)
	}
	if err := xml.Unmarshal(env.Body.Inner, out); err != nil {
		return pkgerrors.Wrapf(err, "decoding %s response body", operation)
	}
	return nil
}

// responseStatus is embedded in every response message.
type responseStatus struct {
	ResponseClass string `xml:"ResponseClass,attr"`
	ResponseCode  string `xml:"ResponseCode"`
	MessageText   string `xml:"MessageText"`
}

// classify maps server response codes onto the error taxonomy the resolver
// branches on. Everything else stays opaque.
func (s responseStatus) classify(operation string) error {
	if s.ResponseClass == "" || s.ResponseClass == "Success" {
		return nil
	}
	switch s.ResponseCode {
	case "ErrorFolderNotFound", "ErrorItemNotFound":
		return pkgerrors.Wrapf(base.ErrFolderNotFound, "%s: %s", operation, s.MessageText)
	case "ErrorAccessDenied", "ErrorAccessModeSpecified":
		return pkgerrors.Wrapf(base.ErrAccessDenied, "%s: %s", operation, s.MessageText)
	}
	return pkgerrors.Errorf("%s failed: %s (%s)", operation, s.MessageText, s.ResponseCode)
}

type folderXML struct {
	FolderID struct {
		ID        string `xml:"Id,attr"`
		ChangeKey string `xml:"ChangeKey,attr"`
	} `xml:"FolderId"`
	ParentFolderID struct {
		ID string `xml:"Id,attr"`
	} `xml:"ParentFolderId"`
	DisplayName         string `xml:"DisplayName"`
	DistinguishedFolder bool   `xml:"IsDistinguishedFolder"`
	WellKnownName       string `xml:"WellKnownName"`
}

func (fx folderXML) toFolder() *folder.Folder {
	f := &folder.Folder{
		ID:            fx.FolderID.ID,
		ChangeKey:     fx.FolderID.ChangeKey,
		ParentID:      fx.ParentFolderID.ID,
		DisplayName:   fx.DisplayName,
		Distinguished: fx.DistinguishedFolder,
	}
	if t, ok := folder.ParseWellKnownType(fx.WellKnownName); ok {
		f.Type = t
	}
	f.Classify()
	return f
}

type getFolderRequest struct {
	XMLName             xml.Name `xml:"GetFolder"`
	DistinguishedFolder struct {
		ID string `xml:"Id,attr"`
	} `xml:"FolderIds>DistinguishedFolderId"`
}

type getFolderResponse struct {
	XMLName xml.Name `xml:"GetFolderResponse"`
	Message struct {
		responseStatus
		Folders []folderXML `xml:"Folders>Folder"`
	} `xml:"ResponseMessages>GetFolderResponseMessage"`
}

// GetFolderByDistinguishedID fetches the canonical distinguished folder for a
// well-known type.
func (c *Client) GetFolderByDistinguishedID(ctx context.Context, t folder.WellKnownType) (*folder.Folder, error) {
	var req getFolderRequest
	req.DistinguishedFolder.ID = string(t)

	var resp getFolderResponse
	if err := c.call(ctx, "GetFolder", req, &resp); err != nil {
		return nil, err
	}
	if err := resp.Message.classify("GetFolder"); err != nil {
		return nil, err
	}
	if len(resp.Message.Folders) == 0 {
		return nil, pkgerrors.Wrapf(base.ErrFolderNotFound, "GetFolder returned no folder for %s", t)
	}

	f := resp.Message.Folders[0].toFolder()
	if f.Type == folder.Other {
		f.Type = t
	}
	f.Distinguished = true
	return f, nil
}

type findFolderRequest struct {
	XMLName   xml.Name `xml:"FindFolder"`
	Traversal string   `xml:"Traversal,attr"`
	ParentID  struct {
		ID string `xml:"Id,attr"`
	} `xml:"ParentFolderIds>FolderId"`
}

type findFolderResponse struct {
	XMLName xml.Name `xml:"FindFolderResponse"`
	Message struct {
		responseStatus
		Folders []folderXML `xml:"RootFolder>Folders>Folder"`
	} `xml:"ResponseMessages>FindFolderResponseMessage"`
}

// ListChildFolders lists the folders below parent, shallow or deep.
func (c *Client) ListChildFolders(ctx context.Context, parent *folder.Folder, depth base.Depth) ([]*folder.Folder, error) {
	var req findFolderRequest
	req.Traversal = string(depth)
	req.ParentID.ID = parent.ID

	var resp findFolderResponse
	if err := c.call(ctx, "FindFolder", req, &resp); err != nil {
		return nil, err
	}
	if err := resp.Message.classify("FindFolder"); err != nil {
		return nil, err
	}

	folders := make([]*folder.Folder, 0, len(resp.Message.Folders))
	for _, fx := range resp.Message.Folders {
		folders = append(folders, fx.toFolder())
	}
	return folders, nil
}

type findItemRequest struct {
	XMLName   xml.Name `xml:"FindItem"`
	Traversal string   `xml:"Traversal,attr"`
	Restriction struct {
		Field string `xml:"FieldURI,attr"`
		Value string `xml:",chardata"`
	} `xml:"Restriction>IsEqualTo"`
	ParentDistinguished *struct {
		ID string `xml:"Id,attr"`
	} `xml:"ParentFolderIds>DistinguishedFolderId,omitempty"`
	ParentID *struct {
		ID string `xml:"Id,attr"`
	} `xml:"ParentFolderIds>FolderId,omitempty"`
}

type findItemResponse struct {
	XMLName xml.Name `xml:"FindItemResponse"`
	Message struct {
		responseStatus
	} `xml:"ResponseMessages>FindItemResponseMessage"`
}

// ProbeQuery issues a query guaranteed to match nothing, purely to validate
// that the folder handle is usable with the current permissions.
func (c *Client) ProbeQuery(ctx context.Context, f *folder.Folder) error {
	var req findItemRequest
	req.Traversal = string(base.Shallow)
	req.Restriction.Field = "item:Subject"
	req.Restriction.Value = "DUMMY"
	if f.ID != "" {
		req.ParentID = &struct {
			ID string `xml:"Id,attr"`
		}{ID: f.ID}
	} else {
		// A handle built from a well-known type has no server ID yet.
		req.ParentDistinguished = &struct {
			ID string `xml:"Id,attr"`
		}{ID: string(f.Type)}
	}

	var resp findItemResponse
	if err := c.call(ctx, "FindItem", req, &resp); err != nil {
		return err
	}
	return resp.Message.classify("FindItem")
}

type itemIDXML struct {
	ID        string `xml:"Id,attr"`
	ChangeKey string `xml:"ChangeKey,attr"`
}

type updateItemRequest struct {
	XMLName                               xml.Name           `xml:"UpdateItem"`
	ConflictResolution                    string             `xml:"ConflictResolution,attr"`
	MessageDisposition                    string             `xml:"MessageDisposition,attr"`
	SendMeetingInvitationsOrCancellations string             `xml:"SendMeetingInvitationsOrCancellations,attr"`
	SuppressReadReceipts                  bool               `xml:"SuppressReadReceipts,attr"`
	Changes                               []updateItemChange `xml:"ItemChanges>ItemChange"`
}

type updateItemChange struct {
	ItemID itemIDXML `xml:"ItemId"`
	Fields []string  `xml:"Updates>FieldURI"`
}

type updateItemResponse struct {
	XMLName  xml.Name `xml:"UpdateItemResponse"`
	Messages []struct {
		responseStatus
		Items []itemIDXML `xml:"Items>Item>ItemId"`
	} `xml:"ResponseMessages>UpdateItemResponseMessage"`
}

// BulkUpdate applies field updates to items and returns the new item IDs.
func (c *Client) BulkUpdate(ctx context.Context, changes []base.ItemChange, opts base.UpdateOptions) ([]base.ItemID, error) {
	req := updateItemRequest{
		ConflictResolution:                    string(opts.ConflictResolution),
		MessageDisposition:                    string(opts.MessageDisposition),
		SendMeetingInvitationsOrCancellations: string(opts.SendMeetingInvitationsOrCancellations),
		SuppressReadReceipts:                  opts.SuppressReadReceipts,
	}
	for _, change := range changes {
		req.Changes = append(req.Changes, updateItemChange{
			ItemID: itemIDXML{ID: change.Item.ID, ChangeKey: change.Item.ChangeKey},
			Fields: change.UpdatedFields,
		})
	}

	var resp updateItemResponse
	if err := c.call(ctx, "UpdateItem", req, &resp); err != nil {
		return nil, err
	}

	ids := make([]base.ItemID, 0, len(changes))
	for _, msg := range resp.Messages {
		if err := msg.classify("UpdateItem"); err != nil {
			return nil, err
		}
		for _, item := range msg.Items {
			ids = append(ids, base.ItemID{ID: item.ID, ChangeKey: item.ChangeKey})
		}
	}
	return ids, nil
}

type deleteItemRequest struct {
	XMLName                  xml.Name    `xml:"DeleteItem"`
	DeleteType               string      `xml:"DeleteType,attr"`
	SendMeetingCancellations string      `xml:"SendMeetingCancellations,attr"`
	AffectedTaskOccurrences  string      `xml:"AffectedTaskOccurrences,attr"`
	SuppressReadReceipts     bool        `xml:"SuppressReadReceipts,attr"`
	ItemIDs                  []itemIDXML `xml:"ItemIds>ItemId"`
}

type deleteItemResponse struct {
	XMLName  xml.Name `xml:"DeleteItemResponse"`
	Messages []struct {
		responseStatus
	} `xml:"ResponseMessages>DeleteItemResponseMessage"`
}

// BulkDelete deletes items by ID, reporting a per-item outcome.
func (c *Client) BulkDelete(ctx context.Context, ids []base.ItemID, opts base.DeleteOptions) ([]base.DeleteResult, error) {
	req := deleteItemRequest{
		DeleteType:               string(opts.DeleteType),
		SendMeetingCancellations: string(opts.SendMeetingCancellations),
		AffectedTaskOccurrences:  string(opts.AffectedTaskOccurrences),
		SuppressReadReceipts:     opts.SuppressReadReceipts,
	}
	for _, id := range ids {
		req.ItemIDs = append(req.ItemIDs, itemIDXML{ID: id.ID, ChangeKey: id.ChangeKey})
	}

	var resp deleteItemResponse
	if err := c.call(ctx, "DeleteItem", req, &resp); err != nil {
		return nil, err
	}

	results := make([]base.DeleteResult, 0, len(ids))
	for i, msg := range resp.Messages {
		result := base.DeleteResult{OK: msg.ResponseClass == "" || msg.ResponseClass == "Success"}
		if i < len(ids) {
			result.ID = ids[i]
		}
		if !result.OK {
			result.Message = msg.MessageText
		}
		results = append(results, result)
	}
	return results, nil
}

type exportItemsRequest struct {
	XMLName xml.Name    `xml:"ExportItems"`
	ItemIDs []itemIDXML `xml:"ItemIds>ItemId"`
}

type exportItemsResponse struct {
	XMLName  xml.Name `xml:"ExportItemsResponse"`
	Messages []struct {
		responseStatus
		ItemID itemIDXML `xml:"ItemId"`
		Data   string    `xml:"Data"`
	} `xml:"ResponseMessages>ExportItemsResponseMessage"`
}

// ExportItems fetches the opaque exported payload for each item.
func (c *Client) ExportItems(ctx context.Context, ids []base.ItemID) ([]base.ExportedItem, error) {
	var req exportItemsRequest
	for _, id := range ids {
		req.ItemIDs = append(req.ItemIDs, itemIDXML{ID: id.ID, ChangeKey: id.ChangeKey})
	}

	var resp exportItemsResponse
	if err := c.call(ctx, "ExportItems", req, &resp); err != nil {
		return nil, err
	}

	items := make([]base.ExportedItem, 0, len(resp.Messages))
	for _, msg := range resp.Messages {
		if err := msg.classify("ExportItems"); err != nil {
			return nil, err
		}
		// Payloads are base64 on the wire.
		data, err := base64.StdEncoding.DecodeString(msg.Data)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "decoding ExportItems payload")
		}
		items = append(items, base.ExportedItem{
			ID:   base.ItemID{ID: msg.ItemID.ID, ChangeKey: msg.ItemID.ChangeKey},
			Data: data,
		})
	}
	return items, nil
}

type uploadItemsRequest struct {
	XMLName xml.Name     `xml:"UploadItems"`
	Items   []uploadItem `xml:"Items>Item"`
}

type uploadItem struct {
	CreateAction string `xml:"CreateAction,attr"`
	FolderID     struct {
		ID string `xml:"Id,attr"`
	} `xml:"ParentFolderId"`
	Data string `xml:"Data"`
}

type uploadItemsResponse struct {
	XMLName  xml.Name `xml:"UploadItemsResponse"`
	Messages []struct {
		responseStatus
		ItemID itemIDXML `xml:"ItemId"`
	} `xml:"ResponseMessages>UploadItemsResponseMessage"`
}

// UploadItems sends exported payloads back to the server.
func (c *Client) UploadItems(ctx context.Context, uploads []base.ItemUpload) ([]base.ItemID, error) {
	var req uploadItemsRequest
	for _, upload := range uploads {
		item := uploadItem{
			CreateAction: "CreateNew",
			Data:         base64.StdEncoding.EncodeToString(upload.Data),
		}
		item.FolderID.ID = upload.FolderID
		req.Items = append(req.Items, item)
	}

	var resp uploadItemsResponse
	if err := c.call(ctx, "UploadItems", req, &resp); err != nil {
		return nil, err
	}

	ids := make([]base.ItemID, 0, len(resp.Messages))
	for _, msg := range resp.Messages {
		if err := msg.classify("UploadItems"); err != nil {
			return nil, err
		}
		ids = append(ids, base.ItemID{ID: msg.ItemID.ID, ChangeKey: msg.ItemID.ChangeKey})
	}
	return ids, nil
}

type subscribeRequest struct {
	XMLName xml.Name `xml:"Subscribe"`
	Pull    struct {
		FolderID struct {
			ID string `xml:"Id,attr"`
		} `xml:"FolderIds>FolderId"`
		EventTypes []string `xml:"EventTypes>EventType"`
		Timeout    int      `xml:"Timeout"`
	} `xml:"PullSubscriptionRequest"`
}

type subscribeResponse struct {
	XMLName xml.Name `xml:"SubscribeResponse"`
	Message struct {
		responseStatus
		SubscriptionID string `xml:"SubscriptionId"`
		Watermark      string `xml:"Watermark"`
	} `xml:"ResponseMessages>SubscribeResponseMessage"`
}

// Subscribe opens a pull subscription on a folder. Timeout is rounded to
// whole minutes, the server's unit.
func (c *Client) Subscribe(ctx context.Context, folderID string, events []base.EventType, timeout time.Duration) (base.SubscriptionInfo, error) {
	var req subscribeRequest
	req.Pull.FolderID.ID = folderID
	for _, e := range events {
		req.Pull.EventTypes = append(req.Pull.EventTypes, string(e))
	}
	minutes := int(timeout / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	req.Pull.Timeout = minutes

	var resp subscribeResponse
	if err := c.call(ctx, "Subscribe", req, &resp); err != nil {
		return base.SubscriptionInfo{}, err
	}
	if err := resp.Message.classify("Subscribe"); err != nil {
		return base.SubscriptionInfo{}, err
	}
	return base.SubscriptionInfo{ID: resp.Message.SubscriptionID, Watermark: resp.Message.Watermark}, nil
}

type unsubscribeRequest struct {
	XMLName        xml.Name `xml:"Unsubscribe"`
	SubscriptionID string   `xml:"SubscriptionId"`
}

type unsubscribeResponse struct {
	XMLName xml.Name `xml:"UnsubscribeResponse"`
	Message struct {
		responseStatus
	} `xml:"ResponseMessages>UnsubscribeResponseMessage"`
}

// Unsubscribe tears down a pull subscription.
func (c *Client) Unsubscribe(ctx context.Context, subscriptionID string) error {
	req := unsubscribeRequest{SubscriptionID: subscriptionID}

	var resp unsubscribeResponse
	if err := c.call(ctx, "Unsubscribe", req, &resp); err != nil {
		return err
	}
	return resp.Message.classify("Unsubscribe")
}

type getEventsRequest struct {
	XMLName        xml.Name `xml:"GetEvents"`
	SubscriptionID string   `xml:"SubscriptionId"`
	Watermark      string   `xml:"Watermark"`
}

type getEventsResponse struct {
	XMLName xml.Name `xml:"GetEventsResponse"`
	Message struct {
		responseStatus
		Events []struct {
			XMLName   xml.Name
			Watermark string    `xml:"Watermark"`
			Timestamp string    `xml:"TimeStamp"`
			ItemID    itemIDXML `xml:"ItemId"`
			FolderID  struct {
				ID string `xml:"Id,attr"`
			} `xml:"FolderId"`
		} `xml:",any"`
	} `xml:"ResponseMessages>GetEventsResponseMessage>Notification"`
}

// GetEvents fetches pending notifications and returns the advanced watermark.
func (c *Client) GetEvents(ctx context.Context, subscriptionID, watermark string) ([]base.Event, string, error) {
	req := getEventsRequest{SubscriptionID: subscriptionID, Watermark: watermark}

	var resp getEventsResponse
	if err := c.call(ctx, "GetEvents", req, &resp); err != nil {
		return nil, "", err
	}
	if err := resp.Message.classify("GetEvents"); err != nil {
		return nil, "", err
	}

	next := watermark
	events := make([]base.Event, 0, len(resp.Message.Events))
	for _, ev := range resp.Message.Events {
		if ev.Watermark != "" {
			next = ev.Watermark
		}
		// StatusEvent notifications carry only a watermark.
		if ev.XMLName.Local == "StatusEvent" {
			continue
		}
		event := base.Event{
			Type:      base.EventType(ev.XMLName.Local),
			Watermark: ev.Watermark,
			ItemID:    base.ItemID{ID: ev.ItemID.ID, ChangeKey: ev.ItemID.ChangeKey},
			FolderID:  ev.FolderID.ID,
		}
		if ev.Timestamp != "" {
			if ts, err := time.Parse(time.RFC3339, ev.Timestamp); err == nil {
				event.Timestamp = ts
			}
		}
		events = append(events, event)
	}
	return events, next, nil
}
