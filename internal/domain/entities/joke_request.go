package entities

type JokeRequest struct {
	model string

	prompt string

	// base64 without a data-URI prefix
	encodedImage string
	mimeType     string
}

func NewJokeRequest(model, prompt, encodedImage, mimeType string) *JokeRequest {
	return &JokeRequest{
		model:        model,
		prompt:       prompt,
		encodedImage: encodedImage,
		mimeType:     mimeType,
	}
}

func (r *JokeRequest) Model() string {
	return r.model
}

func (r *JokeRequest) Prompt() string {
	return r.prompt
}

func (r *JokeRequest) EncodedImage() string {
	return r.encodedImage
}

func (r *JokeRequest) MimeType() string {
	return r.mimeType
}
