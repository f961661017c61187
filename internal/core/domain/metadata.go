package domain

// DocumentMetadata is the structured bibliographic record derived from one
// document. Every field defaults to an empty string or empty slice rather
// than being absent, so downstream consumers never branch on missing keys.
type DocumentMetadata struct {
	// Title is the document title.
	Title string

	// Authors is the ordered author list.
	Authors []string

	// Keywords is the ordered keyword list.
	Keywords []string

	// Abstract is the document summary text.
	Abstract string

	// Conclusion is the document's concluding text.
	Conclusion string

	// FileName is the original file name in the remote store.
	FileName string

	// FileURL is a browser link to the relocated file, when available.
	FileURL string
}

// NewDocumentMetadata returns a metadata record with non-nil slices.
// Generators start from this so that consumers always see empty
// collections instead of nil.
func NewDocumentMetadata(fileName string) DocumentMetadata {
	return DocumentMetadata{
		Authors:  []string{},
		Keywords: []string{},
		FileName: fileName,
	}
}
