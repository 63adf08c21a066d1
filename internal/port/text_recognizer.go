package port

import "context"

// RecognizeInput carries a scanned image for text recognition.
type RecognizeInput struct {
	ImageBytes  []byte
	ContentType string
}

// TextRecognizer abstracts OCR over scanned document images.
type TextRecognizer interface {
	Recognize(ctx context.Context, input RecognizeInput) (string, error)
}
