package genai

import "strings"

// Blob is inline binary data. Data is base64-encoded on the wire.
type Blob struct {
	MIMEType string `json:"mimeType"`
	Data     []byte `json:"data"`
}

// Part is one element of a content turn: text or inline data.
type Part struct {
	Text       string `json:"text,omitempty"`
	InlineData *Blob  `json:"inlineData,omitempty"`
}

// Content is a single turn of a conversation.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// ImageConfig controls generated image output.
type ImageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
	ImageSize   string `json:"imageSize,omitempty"`
}

// GenerationConfig carries per-request generation options.
type GenerationConfig struct {
	ImageConfig *ImageConfig `json:"imageConfig,omitempty"`
}

// Request is the body of a generateContent call.
type Request struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

// Candidate is one generated alternative.
type Candidate struct {
	Content      *Content `json:"content,omitempty"`
	FinishReason string   `json:"finishReason,omitempty"`
}

// Response is the body of a successful generateContent call.
type Response struct {
	Candidates []Candidate `json:"candidates"`
}

// NewRequest builds a single user turn from parts.
func NewRequest(parts ...Part) *Request {
	return &Request{
		Contents: []Content{{Role: "user", Parts: parts}},
	}
}

// TextPart returns a text part.
func TextPart(text string) Part {
	return Part{Text: text}
}

// InlinePart returns an inline data part.
func InlinePart(mimeType string, data []byte) Part {
	return Part{InlineData: &Blob{MIMEType: mimeType, Data: data}}
}

func (r *Response) firstParts() []Part {
	if r == nil || len(r.Candidates) == 0 || r.Candidates[0].Content == nil {
		return nil
	}
	return r.Candidates[0].Content.Parts
}

// Text concatenates the text parts of the first candidate.
// Returns "" when the response carries no text.
func (r *Response) Text() string {
	var sb strings.Builder
	for _, p := range r.firstParts() {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String())
}

// FirstImage returns the first inline data part of the first candidate,
// or nil when the response contains no image.
func (r *Response) FirstImage() *Blob {
	for _, p := range r.firstParts() {
		if p.InlineData != nil && len(p.InlineData.Data) > 0 {
			return p.InlineData
		}
	}
	return nil
}
