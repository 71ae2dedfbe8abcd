package nodes

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/yesoreyeram/agentweave/pkg/types"
	"github.com/yesoreyeram/agentweave/pkg/workflow"
)

// imageSource selects where an ImageInput node reads its bytes from.
type imageSource string

const (
	imageSourceUpload imageSource = "upload"
	imageSourceURL     imageSource = "url"
	imageSourceBase64  imageSource = "base64"
)

// imageInputNode loads an image from an upload path, a URL or an inline
// base64 payload and republishes it as a base64 string plus a small info
// blob (size, content type) on its two output sockets.
type imageInputNode struct {
	baseNode
	deps *Deps
	in   types.SocketID
}

func newImageInputNode(deps *Deps) workflow.Factory {
	return func(declared types.Node) (workflow.Node, error) {
		in, _ := soleInputSocket(declared)
		if in == "" {
			in = SocketImageSource
		}
		return &imageInputNode{baseNode: baseNode{declared: declared}, deps: deps, in: in}, nil
	}
}

func (n *imageInputNode) Process(ctx context.Context, in workflow.Inputs) (workflow.Outputs, error) {
	source := imageSource(n.configString("source", string(imageSourceBase64)))
	raw, _ := firstString(in, n.in)

	var (
		data        []byte
		contentType string
		err         error
	)

	switch source {
	case imageSourceUpload:
		path := raw
		if path == "" {
			path = n.configString("path", "")
		}
		if path == "" {
			return nil, types.ErrMissingRequiredField("path")
		}
		data, err = os.ReadFile(path)

	case imageSourceURL:
		url := raw
		if url == "" {
			url = n.configString("url", "")
		}
		if url == "" {
			return nil, types.ErrMissingRequiredField("url")
		}
		data, contentType, err = n.fetchImage(ctx, url)

	case imageSourceBase64:
		payload := raw
		if payload == "" {
			payload = n.configString("data", "")
		}
		if payload == "" {
			return nil, types.ErrMissingRequiredField("data")
		}
		data, err = base64.StdEncoding.DecodeString(payload)

	default:
		return fmt.Sprintf("Error: unsupported image source %q (use upload, url or base64)", source), nil
	}

	if err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}

	info, err := json.Marshal(map[string]interface{}{
		"sizeBytes":   len(data),
		"contentType": contentType,
	})
	if err != nil {
		info = []byte("{}")
	}

	return map[types.SocketID]interface{}{
		SocketImageData: base64.StdEncoding.EncodeToString(data),
		SocketImageInfo: string(info),
	}, nil
}

func (n *imageInputNode) fetchImage(ctx context.Context, url string) ([]byte, string, error) {
	clientName := n.configString("httpClient", "default")
	if n.deps.HTTPClients == nil {
		return nil, "", fmt.Errorf("image-input: no http client registry configured")
	}
	httpClient, maxBytes, err := n.deps.HTTPClients.GetHTTPClient(clientName)
	if err != nil {
		return nil, "", fmt.Errorf("image-input: %w", err)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("image-input: building request: %w", err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("image-input: fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, "", fmt.Errorf("image-input: %s returned status %d", url, resp.StatusCode)
	}

	data := make([]byte, 0, 64*1024)
	buf := make([]byte, 32*1024)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if int64(len(data)+n) > maxBytes {
				return nil, "", fmt.Errorf("image-input: response exceeds %d byte limit", maxBytes)
			}
			data = append(data, buf[:n]...)
		}
		if readErr != nil {
			break
		}
	}
	return data, resp.Header.Get("Content-Type"), nil
}
