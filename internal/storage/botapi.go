package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// BotStore stores blobs by posting them to a chat through a bot HTTP API.
// The chat works purely as object storage: every upload becomes one message
// whose attachment id is the object id and whose message id is the deletion
// reference.
type BotStore struct {
	apiBase  string
	fileBase string
	token    string
	chatID   string
	client   *http.Client
}

// NewBotStore builds a bot-API backed Store.
func NewBotStore(apiBase, fileBase, token, chatID string, timeout time.Duration) *BotStore {
	return &BotStore{
		apiBase:  strings.TrimRight(apiBase, "/"),
		fileBase: strings.TrimRight(fileBase, "/"),
		token:    token,
		chatID:   chatID,
		client:   &http.Client{Timeout: timeout},
	}
}

type botEnvelope struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

type botAttachment struct {
	FileID string `json:"file_id"`
}

// botMessage is the response shape of a successful upload. Exactly one of
// the attachment fields is set, selected by the upload method; photos come
// as a size ladder where the last entry is the largest.
type botMessage struct {
	MessageID int64           `json:"message_id"`
	Photo     []botAttachment `json:"photo"`
	Video     *botAttachment  `json:"video"`
	Audio     *botAttachment  `json:"audio"`
	Document  *botAttachment  `json:"document"`
}

type botFileInfo struct {
	FilePath string `json:"file_path"`
}

func (s *BotStore) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", s.apiBase, s.token, method)
}

// Put uploads the payload with the method picked by the classifier and
// extracts the object handle from the method-specific response shape.
func (s *BotStore) Put(ctx context.Context, reader io.Reader, size int64, fileName string, class Classification) (Handle, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("chat_id", s.chatID); err != nil {
		return Handle{}, backendErr(KindUpstream, class.Method, err)
	}
	part, err := writer.CreateFormFile(class.Field, fileName)
	if err != nil {
		return Handle{}, backendErr(KindUpstream, class.Method, err)
	}
	if _, err := io.Copy(part, reader); err != nil {
		return Handle{}, backendErr(KindUpstream, class.Method, err)
	}
	if err := writer.Close(); err != nil {
		return Handle{}, backendErr(KindUpstream, class.Method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.methodURL(class.Method), &body)
	if err != nil {
		return Handle{}, backendErr(KindUpstream, class.Method, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	env, err := s.do(req, class.Method)
	if err != nil {
		return Handle{}, err
	}

	var msg botMessage
	if err := json.Unmarshal(env.Result, &msg); err != nil {
		return Handle{}, backendErr(KindUpstream, class.Method, err)
	}
	objectID, err := extractObjectID(class.Method, &msg)
	if err != nil {
		return Handle{}, err
	}
	if msg.MessageID == 0 {
		return Handle{}, backendErrf(KindMissingRef, class.Method, "no message reference in response")
	}
	return Handle{ObjectID: objectID, MessageRef: msg.MessageID}, nil
}

// extractObjectID decodes the per-method attachment explicitly instead of
// chaining optional lookups across the whole union.
func extractObjectID(method string, msg *botMessage) (string, error) {
	switch method {
	case MethodPhoto:
		if n := len(msg.Photo); n > 0 && msg.Photo[n-1].FileID != "" {
			return msg.Photo[n-1].FileID, nil
		}
	case MethodVideo:
		if msg.Video != nil && msg.Video.FileID != "" {
			return msg.Video.FileID, nil
		}
	case MethodAudio:
		if msg.Audio != nil && msg.Audio.FileID != "" {
			return msg.Audio.FileID, nil
		}
	default:
		if msg.Document != nil && msg.Document.FileID != "" {
			return msg.Document.FileID, nil
		}
	}
	return "", backendErrf(KindMissingID, method, "no object id in response")
}

// Resolve asks the backend for the transient path of an object and fetches
// its bytes from there.
func (s *BotStore) Resolve(ctx context.Context, objectID string) ([]byte, error) {
	getFileURL := fmt.Sprintf("%s?file_id=%s", s.methodURL("getFile"), url.QueryEscape(objectID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, getFileURL, nil)
	if err != nil {
		return nil, backendErr(KindNotFound, "getFile", err)
	}
	env, err := s.do(req, "getFile")
	if err != nil {
		return nil, err
	}
	var info botFileInfo
	if err := json.Unmarshal(env.Result, &info); err != nil {
		return nil, backendErr(KindNotFound, "getFile", err)
	}
	if info.FilePath == "" {
		return nil, backendErrf(KindNotFound, "getFile", "no transient path for object")
	}

	fetchURL := fmt.Sprintf("%s/file/bot%s/%s", s.fileBase, s.token, info.FilePath)
	fetchReq, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return nil, backendErr(KindFetchFailed, "fetch", err)
	}
	resp, err := s.client.Do(fetchReq)
	if err != nil {
		return nil, backendErr(KindFetchFailed, "fetch", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, backendErrf(KindFetchFailed, "fetch", "bad status: %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, backendErr(KindFetchFailed, "fetch", err)
	}
	return data, nil
}

// Remove deletes the backing message. An object already gone upstream is
// reported as KindAlreadyRemoved so callers can treat it as a no-op.
func (s *BotStore) Remove(ctx context.Context, h Handle) error {
	payload, err := json.Marshal(map[string]interface{}{
		"chat_id":    s.chatID,
		"message_id": h.MessageRef,
	})
	if err != nil {
		return backendErr(KindUpstream, "deleteMessage", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.methodURL("deleteMessage"), bytes.NewReader(payload))
	if err != nil {
		return backendErr(KindUpstream, "deleteMessage", err)
	}
	req.Header.Set("Content-Type", "application/json")

	_, err = s.do(req, "deleteMessage")
	return err
}

// do runs one API call and decodes the envelope. Failures are classified
// here, at the point the backend reports them.
func (s *BotStore) do(req *http.Request, op string) (*botEnvelope, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, backendErr(KindUnreachable, op, err)
	}
	defer resp.Body.Close()

	var env botEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, backendErrf(KindUpstream, op, "bad response (%s): %v", resp.Status, err)
	}
	if !env.OK {
		if op == "deleteMessage" && strings.Contains(env.Description, "message to delete not found") {
			return nil, backendErrf(KindAlreadyRemoved, op, "%s", env.Description)
		}
		return nil, backendErrf(KindUpstream, op, "%s", env.Description)
	}
	return &env, nil
}
