package nodes

import (
	"context"
	"fmt"

	"github.com/yesoreyeram/agentweave/pkg/llm"
	"github.com/yesoreyeram/agentweave/pkg/types"
	"github.com/yesoreyeram/agentweave/pkg/workflow"
)

// mediaKind distinguishes the three multimedia node variants. They share one implementation: each
// renders its media reference and an instruction into a single text
// prompt and calls the same llm.Provider.GenerateText used by LLMChat.
//
// llm.Message carries a plain string Content, not a vendor-specific
// multimodal payload, so these nodes cannot hand a provider raw image or
// audio bytes; they pass the media as a URL or a data: URI inline in the
// prompt text instead. A provider whose backend does support native
// multimodal input (most current vision-capable chat APIs do accept an
// image referenced by URL or data URI inside the message content) still
// receives something it can act on, but a future Provider.GenerateText
// that wants typed multimodal parts will need a richer Message shape than
// this module's LLM abstraction currently offers.
type mediaKind string

const (
	mediaKindTranscription mediaKind = "transcription"
	mediaKindVision        mediaKind = "vision"
	mediaKindAudio         mediaKind = "audio"
)

var mediaInstruction = map[mediaKind]string{
	mediaKindTranscription: "Transcribe the following audio content verbatim.",
	mediaKindVision:        "Describe what is shown in the following image in detail.",
	mediaKindAudio:         "Analyze the following audio content and summarize what you hear.",
}

type mediaNode struct {
	baseNode
	deps *Deps
	kind mediaKind
}

func newMediaNode(deps *Deps, kind mediaKind) workflow.Factory {
	return func(declared types.Node) (workflow.Node, error) {
		return &mediaNode{baseNode: baseNode{declared: declared}, deps: deps, kind: kind}, nil
	}
}

func (n *mediaNode) Process(ctx context.Context, in workflow.Inputs) (workflow.Outputs, error) {
	ref, ok := firstString(in, SocketMediaURL)
	if !ok || ref == "" {
		ref, ok = firstString(in, SocketMediaData)
	}
	if !ok || ref == "" {
		return nil, types.ErrMissingRequiredField("media_url or media_data")
	}

	instruction := n.configString("instruction", mediaInstruction[n.kind])
	provider := n.configString("provider", n.deps.Config.DefaultLLMProvider)
	model := n.configString("model", n.deps.Config.DefaultLLMModel)

	// Provider failures surface as an error string on the primary output,
	// same policy as llm-chat.
	p, err := n.deps.LLM.Resolve(provider, model)
	if err != nil {
		return fmt.Sprintf("Error: %s: %v", n.kind, err), nil
	}

	prompt := fmt.Sprintf("%s\n\nMedia reference: %s", instruction, ref)
	resp, err := p.GenerateText(ctx, llm.GenerateRequest{
		Model:    model,
		Messages: []llm.Message{{Role: llm.RoleUser, Content: prompt}},
	})
	if err != nil {
		return fmt.Sprintf("Error: %s: %v", n.kind, err), nil
	}
	return resp.Text, nil
}
