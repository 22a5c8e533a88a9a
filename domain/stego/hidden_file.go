package stego

// HiddenFile is a named file recovered from, or about to be written into, a carrier.
type HiddenFile struct {
	Name    string
	Content []byte
}

func NewHiddenFile(name string, content []byte) *HiddenFile {
	return &HiddenFile{
		Name:    name,
		Content: content,
	}
}

func (f *HiddenFile) Size() int {
	return len(f.Content)
}
